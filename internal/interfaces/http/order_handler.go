package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abarrotes-api/internal/application/dto"
	"github.com/jhoicas/Abarrotes-api/internal/application/ordering"
	"github.com/jhoicas/Abarrotes-api/internal/application/query"
	"github.com/jhoicas/Abarrotes-api/internal/application/usecase"
	"github.com/jhoicas/Abarrotes-api/pkg/logger"
)

// OrderHandler maneja las peticiones HTTP para pedidos.
// Las escrituras van al ledger; las lecturas al caso de uso y a la fachada de consultas.
type OrderHandler struct {
	ledger  ordering.OrderLedger
	uc      *usecase.OrderUseCase
	queries *query.Facade
	log     *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(ledger ordering.OrderLedger, uc *usecase.OrderUseCase, queries *query.Facade, log *logger.Logger) *OrderHandler {
	return &OrderHandler{ledger: ledger, uc: uc, queries: queries, log: log}
}

// Place POST /api/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.ledger.PlaceOrder(c.UserContext(), ordering.PlaceOrderInput{
		ClientID:  in.ClientID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderMutationResponse{
		Order:        *dto.NewOrderResponse(&res.Order),
		ProductStock: res.ProductStock,
	})
}

// Amend PUT /api/orders/:id
func (h *OrderHandler) Amend(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.AmendOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.ledger.AmendOrder(c.UserContext(), id, ordering.AmendOrderInput{
		Quantity:  in.Quantity,
		ClientID:  in.ClientID,
		ProductID: in.ProductID,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OrderMutationResponse{
		Order:        *dto.NewOrderResponse(&res.Order),
		ProductStock: res.ProductStock,
	})
}

// Cancel DELETE /api/orders/:id
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	res, err := h.ledger.CancelOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	restored := res.StockRestored
	return c.JSON(dto.OrderMutationResponse{
		Order:         *dto.NewOrderResponse(&res.Order),
		ProductStock:  res.ProductStock,
		StockRestored: &restored,
	})
}

// List GET /api/orders (con nombres de cliente y producto)
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.queries.ListOrdersWithNames(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

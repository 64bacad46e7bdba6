package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abarrotes-api/internal/application/dto"
	"github.com/jhoicas/Abarrotes-api/internal/application/ports"
	"github.com/jhoicas/Abarrotes-api/internal/application/query"
	"github.com/jhoicas/Abarrotes-api/pkg/logger"
)

// ReportHandler reportes de solo lectura.
type ReportHandler struct {
	queries  *query.Facade
	renderer ports.RestockReportRenderer
	log      *logger.Logger
}

// NewReportHandler construye el handler. renderer puede ser nil si no hay salida imprimible.
func NewReportHandler(queries *query.Facade, renderer ports.RestockReportRenderer, log *logger.Logger) *ReportHandler {
	return &ReportHandler{queries: queries, renderer: renderer, log: log}
}

// Categories GET /api/reports/categories
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	out, err := h.queries.CategorySummary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStock GET /api/reports/low-stock?threshold=5
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold, ok := thresholdParam(c)
	if !ok {
		return badThreshold(c)
	}
	out, err := h.queries.LowStock(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStockPDF GET /api/reports/low-stock.pdf?threshold=5
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	threshold, ok := thresholdParam(c)
	if !ok {
		return badThreshold(c)
	}
	report, err := h.queries.LowStock(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, h.log, err)
	}
	doc, err := h.renderer.RenderLowStock(c.UserContext(), report)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reposicion.pdf"`)
	return c.Send(doc)
}

func thresholdParam(c *fiber.Ctx) (int, bool) {
	raw := c.Query("threshold")
	if raw == "" {
		return query.DefaultLowStockThreshold, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func badThreshold(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold debe ser entero", Field: "threshold"})
}

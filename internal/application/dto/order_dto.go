package dto

import (
	"time"

	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
)

// PlaceOrderRequest body para POST /api/orders.
type PlaceOrderRequest struct {
	ClientID  int64 `json:"client_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// AmendOrderRequest body para PUT /api/orders/:id. ClientID y ProductID son opcionales.
type AmendOrderRequest struct {
	Quantity  int    `json:"quantity"`
	ClientID  *int64 `json:"client_id,omitempty"`
	ProductID *int64 `json:"product_id,omitempty"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderMutationResponse resultado de registrar, modificar o anular un pedido.
// ProductStock es el stock del producto tras la operación.
type OrderMutationResponse struct {
	Order         OrderResponse `json:"order"`
	ProductStock  int           `json:"product_stock"`
	StockRestored *bool         `json:"stock_restored,omitempty"`
}

// OrderLineResponse fila del listado de pedidos con nombres.
type OrderLineResponse struct {
	OrderID     int64     `json:"order_id"`
	ClientName  string    `json:"client_name"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderLineListResponse listado de pedidos.
type OrderLineListResponse struct {
	Items []OrderLineResponse `json:"items"`
	Total int                 `json:"total"`
}

// NewOrderResponse mapea la entidad a la salida HTTP.
func NewOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:        o.ID,
		ClientID:  o.ClientID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

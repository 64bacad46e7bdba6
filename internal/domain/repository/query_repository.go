package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
)

// OrderLine fila del listado de pedidos con nombres de cliente y producto.
// Los nombres quedan vacíos si la referencia ya no existe.
type OrderLine struct {
	OrderID     int64
	ClientID    int64
	ClientName  string
	ProductID   int64
	ProductName string
	Quantity    int
	CreatedAt   time.Time
}

// CategoryCount agregado de productos por categoría.
type CategoryCount struct {
	Category   entity.Category
	Products   int
	TotalStock int
}

// QueryRepository consultas de solo lectura para listados y reportes.
type QueryRepository interface {
	ListOrdersWithNames(ctx context.Context) ([]OrderLine, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}

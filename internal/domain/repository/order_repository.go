package repository

import (
	"context"

	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Create, Update y Delete solo se invocan desde el Stock Ledger dentro de su transacción.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id int64) error
}

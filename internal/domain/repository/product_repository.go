package repository

import (
	"context"

	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe;
// Update, Delete y AdjustStock devuelven domain.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category entity.Category) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	// Update aplica solo los campos presentes en patch y devuelve la fila resultante.
	Update(ctx context.Context, id int64, patch entity.ProductPatch) (*entity.Product, error)
	// AdjustStock suma delta al stock y devuelve el nuevo valor; nunca deja stock < 0.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
	Delete(ctx context.Context, id int64) error
}

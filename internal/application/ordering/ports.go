package ordering

import (
	"context"

	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error, ninguna escritura hecha con esos repositorios queda persistida.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// OrderLedger operaciones que crean, modifican o anulan pedidos manteniendo el stock consistente.
// Es la única vía legal para escribir en la tabla de pedidos.
type OrderLedger interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*OrderResult, error)
	AmendOrder(ctx context.Context, orderID int64, in AmendOrderInput) (*OrderResult, error)
	CancelOrder(ctx context.Context, orderID int64) (*CancelResult, error)
}

package ordering

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/inventory"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ OrderLedger = (*Ledger)(nil)

// PlaceOrderInput entrada para registrar un pedido.
type PlaceOrderInput struct {
	ClientID  int64
	ProductID int64
	Quantity  int
}

// AmendOrderInput nueva cantidad y, opcionalmente, nuevo cliente o producto.
type AmendOrderInput struct {
	Quantity  int
	ClientID  *int64
	ProductID *int64
}

// OrderResult pedido resultante y stock del producto referenciado tras la escritura.
type OrderResult struct {
	Order        entity.Order
	ProductStock int
}

// CancelResult pedido eliminado. StockRestored es false si el producto ya no existía.
type CancelResult struct {
	Order         entity.Order
	ProductStock  int
	StockRestored bool
}

// Ledger mantiene Product.stock consistente con las cantidades de los pedidos vigentes.
// Cada operación corre en una transacción con la fila del producto bloqueada (SELECT FOR UPDATE),
// de modo que dos pedidos concurrentes sobre el mismo producto no pasan ambos el chequeo de stock.
type Ledger struct {
	txRunner TxRunner
	checker  IntegrityChecker
	now      func() time.Time
}

// NewLedger construye el ledger.
func NewLedger(txRunner TxRunner) *Ledger {
	return &Ledger{txRunner: txRunner, now: time.Now}
}

// PlaceOrder valida cantidad y referencias, verifica stock y, en la misma transacción,
// descuenta el stock e inserta el pedido.
func (l *Ledger) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*OrderResult, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	var result *OrderResult
	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := l.checker.Verify(ctx, clientRepo, productRepo, in.ClientID, in.ProductID); err != nil {
			return err
		}
		product, err := lockProduct(ctx, productRepo, in.ProductID)
		if err != nil {
			return err
		}
		if err := inventory.CheckDebit(product.ID, product.Stock, in.Quantity); err != nil {
			return err
		}
		stock, err := productRepo.AdjustStock(ctx, product.ID, -in.Quantity)
		if err != nil {
			return err
		}
		now := l.now()
		order := &entity.Order{
			ClientID:  in.ClientID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		result = &OrderResult{Order: *order, ProductStock: stock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AmendOrder cambia la cantidad (y opcionalmente cliente o producto) de un pedido.
// Mismo producto: solo el delta se valida contra el stock actual, que ya refleja la salida original.
// Producto distinto: equivale a anular sobre el producto viejo y registrar sobre el nuevo.
func (l *Ledger) AmendOrder(ctx context.Context, orderID int64, in AmendOrderInput) (*OrderResult, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	var result *OrderResult
	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %d: %w", orderID, domain.ErrNotFound)
		}
		clientID, productID := order.ClientID, order.ProductID
		if in.ClientID != nil {
			clientID = *in.ClientID
		}
		if in.ProductID != nil {
			productID = *in.ProductID
		}
		if err := l.checker.Verify(ctx, clientRepo, productRepo, clientID, productID); err != nil {
			return err
		}

		var stock int
		if productID == order.ProductID {
			stock, err = l.amendSameProduct(ctx, productRepo, order, in.Quantity)
		} else {
			stock, err = l.moveToProduct(ctx, productRepo, order, productID, in.Quantity)
		}
		if err != nil {
			return err
		}

		order.ClientID = clientID
		order.ProductID = productID
		order.Quantity = in.Quantity
		order.UpdatedAt = l.now()
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		result = &OrderResult{Order: *order, ProductStock: stock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (l *Ledger) amendSameProduct(ctx context.Context, productRepo repository.ProductRepository, order *entity.Order, newQty int) (int, error) {
	product, err := lockProduct(ctx, productRepo, order.ProductID)
	if err != nil {
		return 0, err
	}
	delta := inventory.AmendDelta(order.Quantity, newQty)
	if delta == 0 {
		return product.Stock, nil
	}
	if err := inventory.CheckDebit(product.ID, product.Stock, delta); err != nil {
		return 0, err
	}
	return productRepo.AdjustStock(ctx, product.ID, -delta)
}

// moveToProduct devuelve la cantidad vieja al producto original (si sigue existiendo)
// y descuenta la cantidad completa del producto nuevo. Las filas se bloquean en orden de ID.
func (l *Ledger) moveToProduct(ctx context.Context, productRepo repository.ProductRepository, order *entity.Order, newProductID int64, newQty int) (int, error) {
	first, second := order.ProductID, newProductID
	if second < first {
		first, second = second, first
	}
	locked := make(map[int64]*entity.Product, 2)
	for _, id := range []int64{first, second} {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return 0, err
		}
		locked[id] = p
	}

	newProduct := locked[newProductID]
	if newProduct == nil {
		return 0, &domain.ReferenceError{Missing: domain.EntityProduct, ID: newProductID}
	}
	if err := inventory.CheckDebit(newProduct.ID, newProduct.Stock, newQty); err != nil {
		return 0, err
	}
	if old := locked[order.ProductID]; old != nil {
		if _, err := productRepo.AdjustStock(ctx, old.ID, order.Quantity); err != nil {
			return 0, err
		}
	}
	return productRepo.AdjustStock(ctx, newProduct.ID, -newQty)
}

// CancelOrder devuelve la cantidad del pedido al stock del producto y elimina el pedido, en una transacción.
func (l *Ledger) CancelOrder(ctx context.Context, orderID int64) (*CancelResult, error) {
	var result *CancelResult
	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.ClientRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %d: %w", orderID, domain.ErrNotFound)
		}
		res := &CancelResult{Order: *order}
		product, err := productRepo.GetForUpdate(ctx, order.ProductID)
		if err != nil {
			return err
		}
		// Producto borrado directamente: no hay stock que reponer
		if product != nil {
			stock, err := productRepo.AdjustStock(ctx, product.ID, order.Quantity)
			if err != nil {
				return err
			}
			res.ProductStock = stock
			res.StockRestored = true
		}
		if err := orderRepo.Delete(ctx, order.ID); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func lockProduct(ctx context.Context, productRepo repository.ProductRepository, id int64) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ReferenceError{Missing: domain.EntityProduct, ID: id}
	}
	return product, nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	return nil
}

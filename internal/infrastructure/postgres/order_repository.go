package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, client_id, product_id, quantity, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las escrituras solo deben llegar desde el ledger (repos atados a la tx de TxRunner).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO orders (client_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		order.ClientID, order.ProductID, order.Quantity, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		if isCheckViolation(err) {
			return checkViolationError(err, "orders")
		}
		return domain.WrapStorage("insert order", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id, "get order")
}

// GetForUpdate obtiene el pedido y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id, "get order for update")
}

func (r *OrderRepo) getOne(ctx context.Context, query string, id int64, op string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapStorage(op, err)
	}
	return o, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, domain.WrapStorage("list orders", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.WrapStorage("scan order", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapStorage("list orders", err)
	}
	return list, nil
}

// Update reescribe referencias y cantidad del pedido.
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET client_id = $2, product_id = $3, quantity = $4, updated_at = $5
		WHERE id = $1`,
		order.ID, order.ClientID, order.ProductID, order.Quantity, order.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return checkViolationError(err, "orders")
		}
		return domain.WrapStorage("update order", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pedido %d: %w", order.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return domain.WrapStorage("delete order", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pedido %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.ClientID, &o.ProductID, &o.Quantity, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

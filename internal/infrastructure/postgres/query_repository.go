package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ repository.QueryRepository = (*QueryRepo)(nil)

// QueryRepo consultas de lectura para listados y reportes. Corre sobre el pool, sin bloqueos.
type QueryRepo struct {
	pool *pgxpool.Pool
}

// NewQueryRepository construye el repositorio de consultas.
func NewQueryRepository(pool *pgxpool.Pool) *QueryRepo {
	return &QueryRepo{pool: pool}
}

// ListOrdersWithNames usa LEFT JOIN: un pedido cuyo cliente o producto fue borrado aparece con nombre vacío.
func (r *QueryRepo) ListOrdersWithNames(ctx context.Context) ([]repository.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.client_id, COALESCE(c.name, ''), o.product_id, COALESCE(p.name, ''), o.quantity, o.created_at
		FROM orders o
		LEFT JOIN clients c ON c.id = o.client_id
		LEFT JOIN products p ON p.id = o.product_id
		ORDER BY o.id`)
	if err != nil {
		return nil, domain.WrapStorage("list orders with names", err)
	}
	defer rows.Close()
	lines := make([]repository.OrderLine, 0)
	for rows.Next() {
		var l repository.OrderLine
		if err := rows.Scan(&l.OrderID, &l.ClientID, &l.ClientName, &l.ProductID, &l.ProductName, &l.Quantity, &l.CreatedAt); err != nil {
			return nil, domain.WrapStorage("scan order line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapStorage("list orders with names", err)
	}
	return lines, nil
}

// CountByCategory solo devuelve categorías con al menos un producto.
func (r *QueryRepo) CountByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, COUNT(*), COALESCE(SUM(stock), 0)
		FROM products
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, domain.WrapStorage("count by category", err)
	}
	defer rows.Close()
	out := make([]repository.CategoryCount, 0)
	for rows.Next() {
		var (
			category string
			cc       repository.CategoryCount
		)
		if err := rows.Scan(&category, &cc.Products, &cc.TotalStock); err != nil {
			return nil, domain.WrapStorage("scan category count", err)
		}
		cc.Category = entity.Category(category)
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapStorage("count by category", err)
	}
	return out, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ repository.QueryRepository = (*QueryRepo)(nil)

// QueryRepo consultas de solo lectura sobre el store en memoria.
type QueryRepo struct {
	s *Store
}

func (r *QueryRepo) ListOrdersWithNames(_ context.Context) ([]repository.OrderLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	lines := make([]repository.OrderLine, 0, len(r.s.data.orders))
	for _, o := range r.s.data.orders {
		line := repository.OrderLine{
			OrderID:   o.ID,
			ClientID:  o.ClientID,
			ProductID: o.ProductID,
			Quantity:  o.Quantity,
			CreatedAt: o.CreatedAt,
		}
		if c, ok := r.s.data.clients[o.ClientID]; ok {
			line.ClientName = c.Name
		}
		if p, ok := r.s.data.products[o.ProductID]; ok {
			line.ProductName = p.Name
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].OrderID < lines[j].OrderID })
	return lines, nil
}

func (r *QueryRepo) CountByCategory(_ context.Context) ([]repository.CategoryCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byCategory := make(map[entity.Category]*repository.CategoryCount)
	for _, p := range r.s.data.products {
		cc, ok := byCategory[p.Category]
		if !ok {
			cc = &repository.CategoryCount{Category: p.Category}
			byCategory[p.Category] = cc
		}
		cc.Products++
		cc.TotalStock += p.Stock
	}
	out := make([]repository.CategoryCount, 0, len(byCategory))
	for _, cc := range byCategory {
		out = append(out, *cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

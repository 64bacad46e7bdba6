package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	s    *Store
	inTx bool
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	defer r.s.lock(r.inTx)()
	r.s.data.nextOrderID++
	order.ID = r.s.data.nextOrderID
	r.s.data.orders[order.ID] = *order
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	defer r.s.rlock(r.inTx)()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	defer r.s.rlock(r.inTx)()
	list := make([]*entity.Order, 0, len(r.s.data.orders))
	for _, o := range r.s.data.orders {
		o := o
		list = append(list, &o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *OrderRepo) Update(_ context.Context, order *entity.Order) error {
	if order.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.data.orders[order.ID]; !ok {
		return fmt.Errorf("pedido %d: %w", order.ID, domain.ErrNotFound)
	}
	r.s.data.orders[order.ID] = *order
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.data.orders[id]; !ok {
		return fmt.Errorf("pedido %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.data.orders, id)
	return nil
}

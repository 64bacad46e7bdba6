package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/inventory"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.Stock < 0 {
		return domain.NewValidationError("stock", "no puede ser negativo")
	}
	defer r.s.lock(r.inTx)()
	r.s.data.nextProductID++
	product.ID = r.s.data.nextProductID
	product.Price = entity.RoundPrice(product.Price)
	r.s.data.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.s.rlock(r.inTx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate dentro de Run el mutex del store ya está tomado; fuera de Run equivale a GetByID.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Exists(_ context.Context, id int64) (bool, error) {
	defer r.s.rlock(r.inTx)()
	_, ok := r.s.data.products[id]
	return ok, nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	defer r.s.rlock(r.inTx)()
	return r.filter(func(entity.Product) bool { return true }), nil
}

func (r *ProductRepo) ListByCategory(_ context.Context, category entity.Category) ([]*entity.Product, error) {
	defer r.s.rlock(r.inTx)()
	return r.filter(func(p entity.Product) bool { return p.Category == category }), nil
}

// ListLowStock ordena por stock ascendente y luego por ID.
func (r *ProductRepo) ListLowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	defer r.s.rlock(r.inTx)()
	list := r.filter(func(p entity.Product) bool { return p.Stock <= threshold })
	sort.SliceStable(list, func(i, j int) bool { return list[i].Stock < list[j].Stock })
	return list, nil
}

// filter devuelve copias en orden de ID (orden de alta). Requiere el mutex tomado.
func (r *ProductRepo) filter(keep func(entity.Product) bool) []*entity.Product {
	list := make([]*entity.Product, 0, len(r.s.data.products))
	for _, p := range r.s.data.products {
		if keep(p) {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (r *ProductRepo) Update(_ context.Context, id int64, patch entity.ProductPatch) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = entity.RoundPrice(*patch.Price)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, domain.NewValidationError("stock", "no puede ser negativo")
		}
		p.Stock = *patch.Stock
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	p.UpdatedAt = time.Now()
	r.s.data.products[id] = p
	return &p, nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, id int64, delta int) (int, error) {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return 0, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	stock, err := inventory.Apply(id, p.Stock, delta)
	if err != nil {
		return p.Stock, err
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	r.s.data.products[id] = p
	return stock, nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.data.products[id]; !ok {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.data.products, id)
	return nil
}

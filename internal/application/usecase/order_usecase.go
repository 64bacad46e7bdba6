package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Abarrotes-api/internal/application/dto"
	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

// OrderUseCase lecturas directas de pedidos. Las escrituras pasan solo por ordering.Ledger.
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// GetByID obtiene un pedido por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("pedido %d: %w", id, domain.ErrNotFound)
	}
	return dto.NewOrderResponse(order), nil
}

// List lista los pedidos en orden de alta.
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *dto.NewOrderResponse(o))
	}
	return out, nil
}

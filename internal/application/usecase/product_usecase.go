package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Abarrotes-api/internal/application/dto"
	"github.com/jhoicas/Abarrotes-api/internal/application/validation"
	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
// El stock también cambia vía pedidos (ordering.Ledger); aquí se edita de forma directa.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El precio se redondea a 2 decimales antes de persistir.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "no puede ser negativo")
	}
	category, _ := validation.ParseCategory(in.Category)
	now := time.Now()
	product := &entity.Product{
		Name:        in.Name,
		Price:       entity.RoundPrice(*in.Price),
		Description: in.Description,
		Stock:       *in.Stock,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return dto.NewProductResponse(product), nil
}

// List lista todos los productos en orden de alta.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// Update aplica solo los campos presentes en in.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	patch := entity.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Stock:       in.Stock,
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("price", "no puede ser negativo")
		}
		price := entity.RoundPrice(*in.Price)
		patch.Price = &price
	}
	if in.Category != nil {
		category, _ := validation.ParseCategory(*in.Category)
		patch.Category = &category
	}
	if patch.IsEmpty() {
		return uc.GetByID(ctx, id)
	}
	product, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// Delete elimina un producto por ID. No revisa pedidos que lo referencien.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

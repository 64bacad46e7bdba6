// Package query agrupa las consultas de solo lectura usadas por listados y reportes.
// Ninguna operación toma bloqueos del ledger.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Abarrotes-api/internal/application/dto"
	"github.com/jhoicas/Abarrotes-api/internal/application/validation"
	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

// DefaultLowStockThreshold umbral usado cuando el reporte de reposición no indica uno.
const DefaultLowStockThreshold = 5

// Facade consultas de listados y reportes.
type Facade struct {
	products repository.ProductRepository
	clients  repository.ClientRepository
	queries  repository.QueryRepository
}

// NewFacade construye la fachada de consultas.
func NewFacade(products repository.ProductRepository, clients repository.ClientRepository, queries repository.QueryRepository) *Facade {
	return &Facade{products: products, clients: clients, queries: queries}
}

// ListProducts lista productos; con category vacía lista todos.
// La categoría se compara sin distinguir mayúsculas ni tildes.
func (f *Facade) ListProducts(ctx context.Context, category string) (*dto.ProductListResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if strings.TrimSpace(category) == "" {
		list, err = f.products.List(ctx)
	} else {
		c, ok := validation.ParseCategory(category)
		if !ok {
			return nil, domain.NewValidationError("category", "no es una categoría válida")
		}
		list, err = f.products.ListByCategory(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// ListClients lista clientes sin dirección.
func (f *Facade) ListClients(ctx context.Context) (*dto.ClientListResponse, error) {
	list, err := f.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientSummary, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	return &dto.ClientListResponse{Items: items, Total: len(items)}, nil
}

// GetClient devuelve el registro completo del cliente.
func (f *Facade) GetClient(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := f.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	return dto.NewClientResponse(c), nil
}

// ListOrdersWithNames pedidos con nombre de cliente y producto; referencias colgantes dan nombre vacío.
func (f *Facade) ListOrdersWithNames(ctx context.Context) (*dto.OrderLineListResponse, error) {
	lines, err := f.queries.ListOrdersWithNames(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.OrderLineResponse{
			OrderID:     l.OrderID,
			ClientName:  l.ClientName,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			CreatedAt:   l.CreatedAt,
		})
	}
	return &dto.OrderLineListResponse{Items: items, Total: len(items)}, nil
}

// CategorySummary cantidad de productos y stock total por categoría.
// Incluye todas las categorías, en orden de presentación, aunque no tengan productos.
func (f *Facade) CategorySummary(ctx context.Context) ([]dto.CategorySummaryResponse, error) {
	counts, err := f.queries.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[entity.Category]repository.CategoryCount, len(counts))
	for _, c := range counts {
		byCategory[c.Category] = c
	}
	out := make([]dto.CategorySummaryResponse, 0, len(entity.Categories()))
	for _, c := range entity.Categories() {
		cnt := byCategory[c]
		out = append(out, dto.CategorySummaryResponse{
			Category:   string(c),
			Products:   cnt.Products,
			TotalStock: cnt.TotalStock,
		})
	}
	return out, nil
}

// LowStock productos con stock menor o igual a threshold, de menor a mayor stock.
func (f *Facade) LowStock(ctx context.Context, threshold int) (*dto.LowStockResponse, error) {
	if threshold < 0 {
		return nil, domain.NewValidationError("threshold", "no puede ser negativo")
	}
	list, err := f.products.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return &dto.LowStockResponse{Threshold: threshold, Items: dto.NewProductListResponse(list).Items}, nil
}

package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

func newProduct(name string, stock int) *entity.Product {
	return &entity.Product{
		Name:     name,
		Price:    decimal.RequireFromString("2.499"),
		Stock:    stock,
		Category: entity.CategoryDairy,
	}
}

func TestProductRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()

	p1 := newProduct("Leche", 10)
	require.NoError(t, repo.Create(ctx, p1))
	p2 := newProduct("Queso", 3)
	require.NoError(t, repo.Create(ctx, p2))
	assert.Equal(t, int64(1), p1.ID)
	assert.Equal(t, int64(2), p2.ID)

	got, err := repo.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Leche", got.Name)
	assert.True(t, decimal.RequireFromString("2.50").Equal(got.Price), "precio redondeado al escribir")

	missing, err := repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []int64{1, 2}, []int64{list[0].ID, list[1].ID})

	name := "Leche entera"
	updated, err := repo.Update(ctx, p1.ID, entity.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Leche entera", updated.Name)
	assert.Equal(t, 10, updated.Stock, "campos omitidos no cambian")
	assert.Equal(t, entity.CategoryDairy, updated.Category)

	_, err = repo.Update(ctx, 99, entity.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, p1.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p1.ID), domain.ErrNotFound)
}

func TestProductRepo_AdjustStock(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()
	p := newProduct("Yogur", 5)
	require.NoError(t, repo.Create(ctx, p))

	stock, err := repo.AdjustStock(ctx, p.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	_, err = repo.AdjustStock(ctx, p.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, err = repo.AdjustStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)

	_, err = repo.AdjustStock(ctx, 42, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()
	bread := newProduct("Pan", 1)
	bread.Category = entity.CategoryBakery
	require.NoError(t, repo.Create(ctx, newProduct("Leche", 8)))
	require.NoError(t, repo.Create(ctx, bread))
	require.NoError(t, repo.Create(ctx, newProduct("Mantequilla", 0)))

	dairy, err := repo.ListByCategory(ctx, entity.CategoryDairy)
	require.NoError(t, err)
	assert.Len(t, dairy, 2)

	low, err := repo.ListLowStock(ctx, 1)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Mantequilla", low[0].Name)
	assert.Equal(t, "Pan", low[1].Name)
}

func TestClientRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Clients()
	a := &entity.Client{Name: "Ana", Email: "ana@tienda.co"}
	b := &entity.Client{Name: "Beto", Email: "beto@tienda.co"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	dup := &entity.Client{Name: "Otra Ana", Email: "ana@tienda.co"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicate)

	taken := "ana@tienda.co"
	_, err := repo.Update(ctx, b.ID, entity.ClientPatch{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// conservar el propio email no es duplicado
	same := "ana@tienda.co"
	addr := "Calle 1"
	updated, err := repo.Update(ctx, a.ID, entity.ClientPatch{Email: &same, Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", updated.Address)
	assert.Equal(t, "Ana", updated.Name)

	found, err := repo.GetByEmail(ctx, "beto@tienda.co")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, b.ID, found.ID)
}

func TestStore_RunRollback(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := newProduct("Leche", 10)
	require.NoError(t, store.Products().Create(ctx, p))

	boom := errors.New("boom")
	err := store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.ClientRepository, orderRepo repository.OrderRepository) error {
		if _, err := productRepo.AdjustStock(ctx, p.ID, -4); err != nil {
			return err
		}
		if err := orderRepo.Create(ctx, &entity.Order{ClientID: 1, ProductID: p.ID, Quantity: 4}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock, "el snapshot se restaura")
	orders, err := store.Orders().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestStore_RunCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := newProduct("Leche", 10)
	require.NoError(t, store.Products().Create(ctx, p))

	err := store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.ClientRepository, orderRepo repository.OrderRepository) error {
		if _, err := productRepo.AdjustStock(ctx, p.ID, -4); err != nil {
			return err
		}
		return orderRepo.Create(ctx, &entity.Order{ClientID: 1, ProductID: p.ID, Quantity: 4})
	})
	require.NoError(t, err)

	got, _ := store.Products().GetByID(ctx, p.ID)
	assert.Equal(t, 6, got.Stock)
	orders, _ := store.Orders().List(ctx)
	assert.Len(t, orders, 1)
}

func TestStore_RunContextCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewStore().Run(ctx, func(repository.ProductRepository, repository.ClientRepository, repository.OrderRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestQueryRepo(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	milk := newProduct("Leche", 10)
	require.NoError(t, store.Products().Create(ctx, milk))
	ana := &entity.Client{Name: "Ana", Email: "ana@tienda.co"}
	require.NoError(t, store.Clients().Create(ctx, ana))
	require.NoError(t, store.Orders().Create(ctx, &entity.Order{ClientID: ana.ID, ProductID: milk.ID, Quantity: 2}))
	require.NoError(t, store.Orders().Create(ctx, &entity.Order{ClientID: 77, ProductID: milk.ID, Quantity: 1}))

	lines, err := store.Queries().ListOrdersWithNames(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Ana", lines[0].ClientName)
	assert.Equal(t, "Leche", lines[0].ProductName)
	assert.Equal(t, "", lines[1].ClientName, "referencia colgante sin nombre")

	counts, err := store.Queries().CountByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, entity.CategoryDairy, counts[0].Category)
	assert.Equal(t, 1, counts[0].Products)
	assert.Equal(t, 10, counts[0].TotalStock)
}

package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Abarrotes-api/internal/application/ordering"
	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/pkg/config"
)

const runIntegrationTests = "ABARROTES_INTEGRATION"

// StoreSuite ejercita los repositorios y el TxRunner contra un PostgreSQL real en contenedor.
type StoreSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *tcpostgres.PostgresContainer
	pool        *pgxpool.Pool
	products    *ProductRepo
	clients     *ClientRepo
	orders      *OrderRepo
	queries     *QueryRepo
	ledger      *ordering.Ledger
}

func TestStoreIntegration(t *testing.T) {
	if os.Getenv(runIntegrationTests) != "1" {
		t.Skip("tests de integración desactivados; definir " + runIntegrationTests + "=1")
	}
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.pgContainer, err = tcpostgres.Run(s.ctx,
		"postgres:17.5-alpine",
		tcpostgres.WithDatabase("abarrotes"),
		tcpostgres.WithUsername("abarrotes"),
		tcpostgres.WithPassword("abarrotes"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	s.Require().NoError(err, "no se pudo iniciar el contenedor PostgreSQL")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(Migrate(connStr))
	// Segunda corrida sin cambios pendientes
	s.Require().NoError(Migrate(connStr))

	s.pool, err = NewPool(s.ctx, config.DBConfig{DatabaseURL: connStr, MaxConns: 8})
	s.Require().NoError(err)

	s.products = NewProductRepository(s.pool)
	s.clients = NewClientRepository(s.pool)
	s.orders = NewOrderRepository(s.pool)
	s.queries = NewQueryRepository(s.pool)
	s.ledger = ordering.NewLedger(NewTxRunner(s.pool))
}

func (s *StoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *StoreSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE TABLE orders, clients, products RESTART IDENTITY")
	s.Require().NoError(err)
}

func (s *StoreSuite) newProduct(name string, stock int) *entity.Product {
	p := &entity.Product{
		Name:     name,
		Price:    decimal.RequireFromString("2.345"),
		Stock:    stock,
		Category: entity.CategoryBeverages,
	}
	s.Require().NoError(s.products.Create(s.ctx, p))
	return p
}

func (s *StoreSuite) newClient(email string) *entity.Client {
	c := &entity.Client{Name: "Cliente", Email: email, Address: "Calle 1"}
	s.Require().NoError(s.clients.Create(s.ctx, c))
	return c
}

func (s *StoreSuite) stockOf(id int64) int {
	p, err := s.products.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(p)
	return p.Stock
}

func (s *StoreSuite) TestProduct_RoundTripYParcial() {
	p := s.newProduct("Agua", 10)
	s.NotZero(p.ID)

	got, err := s.products.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(got.Price.Equal(decimal.RequireFromString("2.35")), "precio %s", got.Price)
	s.Equal(entity.CategoryBeverages, got.Category)

	stock := 4
	updated, err := s.products.Update(s.ctx, p.ID, entity.ProductPatch{Stock: &stock})
	s.Require().NoError(err)
	s.Equal("Agua", updated.Name)
	s.Equal(4, updated.Stock)
	s.True(updated.Price.Equal(got.Price))

	negative := -1
	_, err = s.products.Update(s.ctx, p.ID, entity.ProductPatch{Stock: &negative})
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = s.products.Update(s.ctx, 999, entity.ProductPatch{Stock: &stock})
	s.ErrorIs(err, domain.ErrNotFound)

	missing, err := s.products.GetByID(s.ctx, 999)
	s.NoError(err)
	s.Nil(missing)

	s.Require().NoError(s.products.Delete(s.ctx, p.ID))
	s.ErrorIs(s.products.Delete(s.ctx, p.ID), domain.ErrNotFound)
}

func (s *StoreSuite) TestProduct_AdjustStock() {
	p := s.newProduct("Agua", 3)

	stock, err := s.products.AdjustStock(s.ctx, p.ID, -2)
	s.Require().NoError(err)
	s.Equal(1, stock)

	_, err = s.products.AdjustStock(s.ctx, p.ID, -5)
	var stockErr *domain.InsufficientStockError
	s.Require().True(errors.As(err, &stockErr))
	s.Equal(1, stockErr.Available)
	s.Equal(1, s.stockOf(p.ID))

	_, err = s.products.AdjustStock(s.ctx, 999, 1)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestClient_EmailUnico() {
	s.newClient("ana@x.co")
	err := s.clients.Create(s.ctx, &entity.Client{Name: "Otra", Email: "ana@x.co"})
	s.ErrorIs(err, domain.ErrDuplicate)

	beto := s.newClient("beto@x.co")
	email := "ana@x.co"
	_, err = s.clients.Update(s.ctx, beto.ID, entity.ClientPatch{Email: &email})
	s.ErrorIs(err, domain.ErrDuplicate)

	found, err := s.clients.GetByEmail(s.ctx, "beto@x.co")
	s.Require().NoError(err)
	s.Equal(beto.ID, found.ID)
}

func (s *StoreSuite) TestLedger_Escenario() {
	p := s.newProduct("Agua", 10)
	c := s.newClient("c@x.co")

	placed, err := s.ledger.PlaceOrder(s.ctx, ordering.PlaceOrderInput{ClientID: c.ID, ProductID: p.ID, Quantity: 4})
	s.Require().NoError(err)
	s.Equal(6, placed.ProductStock)

	_, err = s.ledger.PlaceOrder(s.ctx, ordering.PlaceOrderInput{ClientID: c.ID, ProductID: p.ID, Quantity: 7})
	s.ErrorIs(err, domain.ErrInsufficientStock)
	s.Equal(6, s.stockOf(p.ID))

	amended, err := s.ledger.AmendOrder(s.ctx, placed.Order.ID, ordering.AmendOrderInput{Quantity: 6})
	s.Require().NoError(err)
	s.Equal(4, amended.ProductStock)

	cancelled, err := s.ledger.CancelOrder(s.ctx, placed.Order.ID)
	s.Require().NoError(err)
	s.True(cancelled.StockRestored)
	s.Equal(10, s.stockOf(p.ID))

	_, err = s.ledger.CancelOrder(s.ctx, placed.Order.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestLedger_ConcurrenciaNoSobrevende() {
	p := s.newProduct("Agua", 10)
	c := s.newClient("c@x.co")

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ledger.PlaceOrder(s.ctx, ordering.PlaceOrderInput{ClientID: c.ID, ProductID: p.ID, Quantity: 1})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(10, ok)
	s.Equal(0, s.stockOf(p.ID))
	list, err := s.orders.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 10)
}

func (s *StoreSuite) TestQueries_ReferenciasColgantes() {
	p := s.newProduct("Agua", 10)
	c := s.newClient("c@x.co")
	_, err := s.ledger.PlaceOrder(s.ctx, ordering.PlaceOrderInput{ClientID: c.ID, ProductID: p.ID, Quantity: 2})
	s.Require().NoError(err)
	s.Require().NoError(s.clients.Delete(s.ctx, c.ID))

	lines, err := s.queries.ListOrdersWithNames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Empty(lines[0].ClientName)
	s.Equal("Agua", lines[0].ProductName)

	counts, err := s.queries.CountByCategory(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(counts, 1)
	s.Equal(1, counts[0].Products)
	s.Equal(8, counts[0].TotalStock)
}

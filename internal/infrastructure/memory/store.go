// Package memory implementa los puertos de persistencia en memoria, con transacciones
// por snapshot. Sirve para desarrollo (STORE_DRIVER=memory) y para tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Abarrotes-api/internal/application/ordering"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ ordering.TxRunner = (*Store)(nil)

type state struct {
	products      map[int64]entity.Product
	clients       map[int64]entity.Client
	orders        map[int64]entity.Order
	nextProductID int64
	nextClientID  int64
	nextOrderID   int64
}

func newState() state {
	return state{
		products: make(map[int64]entity.Product),
		clients:  make(map[int64]entity.Client),
		orders:   make(map[int64]entity.Order),
	}
}

func (s state) clone() state {
	c := s
	c.products = make(map[int64]entity.Product, len(s.products))
	for k, v := range s.products {
		c.products[k] = v
	}
	c.clients = make(map[int64]entity.Client, len(s.clients))
	for k, v := range s.clients {
		c.clients[k] = v
	}
	c.orders = make(map[int64]entity.Order, len(s.orders))
	for k, v := range s.orders {
		c.orders[k] = v
	}
	return c
}

// Store tablas en memoria protegidas por un único mutex.
// Una transacción (Run) retiene el mutex completo: el bloqueo es a nivel de todo el ledger.
type Store struct {
	mu   sync.RWMutex
	data state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Clients repositorio de clientes fuera de transacción.
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Queries consultas de solo lectura.
func (s *Store) Queries() *QueryRepo { return &QueryRepo{s: s} }

// Run ejecuta fn con repositorios atados a la transacción. Si fn falla, el estado vuelve al snapshot previo.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	err := fn(
		&ProductRepo{s: s, inTx: true},
		&ClientRepo{s: s, inTx: true},
		&OrderRepo{s: s, inTx: true},
	)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// lock toma el mutex salvo que el repositorio ya opere dentro de Run.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

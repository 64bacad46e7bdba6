package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación en memoria de ClientRepository. Email único, igual que el índice en PostgreSQL.
type ClientRepo struct {
	s    *Store
	inTx bool
}

func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	defer r.s.lock(r.inTx)()
	if r.emailTaken(client.Email, 0) {
		return fmt.Errorf("email %s: %w", client.Email, domain.ErrDuplicate)
	}
	r.s.data.nextClientID++
	client.ID = r.s.data.nextClientID
	r.s.data.clients[client.ID] = *client
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	defer r.s.rlock(r.inTx)()
	c, ok := r.s.data.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	defer r.s.rlock(r.inTx)()
	for _, c := range r.s.data.clients {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) Exists(_ context.Context, id int64) (bool, error) {
	defer r.s.rlock(r.inTx)()
	_, ok := r.s.data.clients[id]
	return ok, nil
}

func (r *ClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	defer r.s.rlock(r.inTx)()
	list := make([]*entity.Client, 0, len(r.s.data.clients))
	for _, c := range r.s.data.clients {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ClientRepo) Update(_ context.Context, id int64, patch entity.ClientPatch) (*entity.Client, error) {
	defer r.s.lock(r.inTx)()
	c, ok := r.s.data.clients[id]
	if !ok {
		return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, fmt.Errorf("email %s: %w", *patch.Email, domain.ErrDuplicate)
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	c.UpdatedAt = time.Now()
	r.s.data.clients[id] = c
	return &c, nil
}

func (r *ClientRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.data.clients[id]; !ok {
		return fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.data.clients, id)
	return nil
}

// emailTaken requiere el mutex tomado. exceptID permite que un cliente conserve su propio email.
func (r *ClientRepo) emailTaken(email string, exceptID int64) bool {
	for id, c := range r.s.data.clients {
		if id != exceptID && c.Email == email {
			return true
		}
	}
	return false
}

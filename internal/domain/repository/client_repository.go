package repository

import (
	"context"

	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*entity.Client, error)
	Update(ctx context.Context, id int64, patch entity.ClientPatch) (*entity.Client, error)
	Delete(ctx context.Context, id int64) error
}

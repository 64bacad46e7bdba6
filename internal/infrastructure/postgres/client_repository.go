package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, email, address, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente. El índice único sobre email devuelve ErrDuplicate.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = client.CreatedAt
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO clients (name, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		client.Name, client.Email, client.Address, client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", client.Email, domain.ErrDuplicate)
		}
		return domain.WrapStorage("insert client", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// GetByEmail busca por email exacto (se guarda normalizado en minúsculas).
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE email = $1`, email)
}

func (r *ClientRepo) getOne(ctx context.Context, query string, arg any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapStorage("get client", err)
	}
	return c, nil
}

func (r *ClientRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, domain.WrapStorage("client exists", err)
	}
	return ok, nil
}

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY id`)
	if err != nil {
		return nil, domain.WrapStorage("list clients", err)
	}
	defer rows.Close()
	list := make([]*entity.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, domain.WrapStorage("scan client", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapStorage("list clients", err)
	}
	return list, nil
}

// Update aplica solo los campos no nulos del patch en una única sentencia.
func (r *ClientRepo) Update(ctx context.Context, id int64, patch entity.ClientPatch) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `
		UPDATE clients SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			address = COALESCE($4, address),
			updated_at = now()
		WHERE id = $1
		RETURNING `+clientColumns,
		id, patch.Name, patch.Email, patch.Address,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
		case isUniqueViolation(err):
			return nil, fmt.Errorf("email: %w", domain.ErrDuplicate)
		}
		return nil, domain.WrapStorage("update client", err)
	}
	return c, nil
}

// Delete elimina un cliente. No revisa pedidos que lo referencien.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return domain.WrapStorage("delete client", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

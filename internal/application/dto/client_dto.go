package dto

import (
	"time"

	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=120"`
	Address string `json:"address" validate:"max=200"`
}

// UpdateClientRequest entrada para actualizar un cliente; solo se aplican los campos presentes.
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitnil,min=1,max=100"`
	Email   *string `json:"email" validate:"omitnil,email,max=120"`
	Address *string `json:"address" validate:"omitnil,max=200"`
}

// ClientResponse salida completa de un cliente (consulta individual).
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientSummary fila del listado de clientes (sin dirección).
type ClientSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ClientListResponse listado de clientes.
type ClientListResponse struct {
	Items []ClientSummary `json:"items"`
	Total int             `json:"total"`
}

// NewClientResponse mapea la entidad a la salida HTTP.
func NewClientResponse(c *entity.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

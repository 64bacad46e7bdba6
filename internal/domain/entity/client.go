package entity

import "time"

// Client representa un cliente de la tienda. Email es único entre clientes.
type Client struct {
	ID        int64
	Name      string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientPatch campos opcionales para actualización parcial; nil = sin cambio.
type ClientPatch struct {
	Name    *string
	Email   *string
	Address *string
}

// IsEmpty indica si el patch no trae ningún campo.
func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Address == nil
}

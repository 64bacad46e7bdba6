package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePlaces decimales con los que se persiste el precio.
const PricePlaces = 2

// Product representa un artículo de la tienda.
// Stock se modifica vía pedidos (Stock Ledger) o por edición directa del producto.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal // redondeado a 2 decimales al escribir
	Description string
	Stock       int
	Category    Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch campos opcionales para actualización parcial; nil = sin cambio.
type ProductPatch struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	Stock       *int
	Category    *Category
}

// IsEmpty indica si el patch no trae ningún campo.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil && p.Stock == nil && p.Category == nil
}

// RoundPrice aplica el redondeo de almacenamiento al precio.
func RoundPrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(PricePlaces)
}

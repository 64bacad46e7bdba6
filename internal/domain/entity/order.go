package entity

import "time"

// Order pedido de un cliente sobre un producto. Solo el Stock Ledger lo crea, modifica o elimina.
type Order struct {
	ID        int64
	ClientID  int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrReference         = errors.New("referencia inexistente")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStorage           = errors.New("error de almacenamiento")
)

// ValidationError describe un campo con valor faltante o fuera de rango.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Entity identifica la entidad referenciada por un pedido.
type Entity string

const (
	EntityClient  Entity = "client"
	EntityProduct Entity = "product"
)

// ReferenceError indica que un pedido apunta a un cliente o producto que no existe.
type ReferenceError struct {
	Missing Entity
	ID      int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %d", ErrReference, e.Missing, e.ID)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// InsufficientStockError indica que la cantidad pedida supera el stock disponible al momento del chequeo.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

// Shortfall devuelve las unidades que faltan para cubrir la solicitud.
func (e *InsufficientStockError) Shortfall() int {
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: producto %d, solicitado %d, disponible %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// StorageError envuelve una falla de la capa de persistencia (I/O, constraint, commit).
type StorageError struct {
	Op  string
	Err error
}

// WrapStorage envuelve err como StorageError; devuelve nil si err es nil.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

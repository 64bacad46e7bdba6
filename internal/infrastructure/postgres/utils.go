package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

func asPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == codeUniqueViolation
}

// isCheckViolation verifica si un error es una violación de un CHECK (23514), p. ej. stock >= 0.
func isCheckViolation(err error) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == codeCheckViolation
}

// checkViolationError traduce un CHECK violado a ValidationError.
// Postgres nombra los CHECK de columna como <tabla>_<columna>_check.
func checkViolationError(err error, table string) error {
	field := strings.TrimSuffix(strings.TrimPrefix(asPgError(err).ConstraintName, table+"_"), "_check")
	reason := "fuera de rango"
	switch field {
	case "stock", "price":
		reason = "no puede ser negativo"
	case "quantity":
		reason = "debe ser un entero positivo"
	case "name":
		reason = "es obligatorio"
	}
	return domain.NewValidationError(field, reason)
}

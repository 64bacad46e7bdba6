package ordering

import (
	"context"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
)

// existenceLookup subconjunto de un repositorio que permite verificar existencia por ID.
type existenceLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// IntegrityChecker verifica que cliente y producto referenciados por un pedido existan.
// No hay FK confiable en almacenamiento, así que se ejecuta en cada operación de escritura.
type IntegrityChecker struct{}

// Verify devuelve *domain.ReferenceError con la primera referencia faltante (cliente antes que producto).
func (IntegrityChecker) Verify(ctx context.Context, clients, products existenceLookup, clientID, productID int64) error {
	ok, err := clients.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ReferenceError{Missing: domain.EntityClient, ID: clientID}
	}
	ok, err = products.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ReferenceError{Missing: domain.EntityProduct, ID: productID}
	}
	return nil
}

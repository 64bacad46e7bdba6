package inventory

import "github.com/jhoicas/Abarrotes-api/internal/domain"

// CheckDebit verifica que quantity unidades puedan salir de un stock actual.
// quantity <= 0 no descuenta nada y siempre es válido.
func CheckDebit(productID int64, stock, quantity int) error {
	if quantity > stock {
		return &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: stock}
	}
	return nil
}

// Apply devuelve el stock resultante de sumar delta (negativo = salida).
// Falla si el resultado quedaría negativo; en ese caso el stock no cambia.
func Apply(productID int64, stock, delta int) (int, error) {
	if delta < 0 {
		if err := CheckDebit(productID, stock, -delta); err != nil {
			return stock, err
		}
	}
	return stock + delta, nil
}

// AmendDelta cambio de stock al pasar un pedido de oldQty a newQty sobre el mismo producto.
// Positivo = hay que descontar más; negativo = se devuelve stock.
func AmendDelta(oldQty, newQty int) int {
	return newQty - oldQty
}

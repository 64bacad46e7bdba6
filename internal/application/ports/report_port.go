package ports

import (
	"context"

	"github.com/jhoicas/Abarrotes-api/internal/application/dto"
)

// RestockReportRenderer puerto de salida para documentos imprimibles del reporte de reposición.
// La aplicación solo conoce este contrato; el adaptador concreto (PDF) vive en infrastructure.
type RestockReportRenderer interface {
	// RenderLowStock devuelve el documento con los productos del reporte, en el orden recibido.
	RenderLowStock(ctx context.Context, report *dto.LowStockResponse) ([]byte, error)
}

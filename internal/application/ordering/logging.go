package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Abarrotes-api/internal/domain"
	"github.com/jhoicas/Abarrotes-api/pkg/logger"
)

var _ OrderLedger = (*LoggingLedger)(nil)

// LoggingLedger decora un OrderLedger registrando cada operación (id de operación, duración, resultado).
// El Ledger en sí no registra nada.
type LoggingLedger struct {
	next OrderLedger
	log  *logger.Logger
}

// NewLoggingLedger envuelve next con registro estructurado.
func NewLoggingLedger(next OrderLedger, log *logger.Logger) *LoggingLedger {
	return &LoggingLedger{next: next, log: log}
}

func (l *LoggingLedger) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*OrderResult, error) {
	start := time.Now()
	res, err := l.next.PlaceOrder(ctx, in)
	ev := l.event("place_order", start, err).
		Int64("client_id", in.ClientID).
		Int64("product_id", in.ProductID).
		Int("quantity", in.Quantity)
	if res != nil {
		ev = ev.Int64("order_id", res.Order.ID).Int("product_stock", res.ProductStock)
	}
	ev.Msg(message(err, "pedido registrado"))
	return res, err
}

func (l *LoggingLedger) AmendOrder(ctx context.Context, orderID int64, in AmendOrderInput) (*OrderResult, error) {
	start := time.Now()
	res, err := l.next.AmendOrder(ctx, orderID, in)
	ev := l.event("amend_order", start, err).
		Int64("order_id", orderID).
		Int("quantity", in.Quantity)
	if in.ProductID != nil {
		ev = ev.Int64("new_product_id", *in.ProductID)
	}
	if in.ClientID != nil {
		ev = ev.Int64("new_client_id", *in.ClientID)
	}
	if res != nil {
		ev = ev.Int("product_stock", res.ProductStock)
	}
	ev.Msg(message(err, "pedido modificado"))
	return res, err
}

func (l *LoggingLedger) CancelOrder(ctx context.Context, orderID int64) (*CancelResult, error) {
	start := time.Now()
	res, err := l.next.CancelOrder(ctx, orderID)
	ev := l.event("cancel_order", start, err).Int64("order_id", orderID)
	if res != nil {
		ev = ev.Int64("product_id", res.Order.ProductID).
			Int("quantity", res.Order.Quantity).
			Bool("stock_restored", res.StockRestored)
		if !res.StockRestored {
			ev = ev.Str("warning", "producto inexistente, stock no repuesto")
		}
	}
	ev.Msg(message(err, "pedido anulado"))
	return res, err
}

// event elige el nivel: info si todo bien, warn para errores de negocio, error para fallas de almacenamiento.
func (l *LoggingLedger) event(op string, start time.Time, err error) *zerolog.Event {
	var ev *zerolog.Event
	switch {
	case err == nil:
		ev = l.log.Info()
	case errors.Is(err, domain.ErrStorage), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		ev = l.log.Error().Err(err)
	default:
		ev = l.log.Warn().Err(err)
	}
	return ev.Str("op", op).
		Str("op_id", uuid.NewString()).
		Dur("elapsed", time.Since(start))
}

func message(err error, ok string) string {
	if err != nil {
		return "operación de pedido rechazada"
	}
	return ok
}

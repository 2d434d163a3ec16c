package port

import (
	"context"

	"fundpool/internal/core/domain"
)

// EventSink receives exactly one notification per successful mutating
// ledger call. Delivery is fire-and-forget; the ledger never fails an
// operation because of the sink.
type EventSink interface {
	Emit(ctx context.Context, e domain.Event)
}

// EventLog is a sink whose notifications can be read back in emission
// order.
type EventLog interface {
	EventSink
	Events(ctx context.Context) []domain.Event
}

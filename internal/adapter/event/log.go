package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fundpool/internal/core/domain"
)

// Log is an append-only, in-process notification log. Each emitted event
// gets a uuid and a timestamp and is additionally written to the
// structured logger, so state changes are observable both over the API
// and in the service output.
type Log struct {
	mu     sync.RWMutex
	logger *slog.Logger
	events []domain.Event
}

// NewLog returns an empty log writing through the given logger.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Emit appends the event, stamping ID and OccurredAt.
func (l *Log) Emit(_ context.Context, e domain.Event) {
	e.ID = uuid.NewString()
	e.OccurredAt = time.Now().UTC()

	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()

	l.logger.Info("ledger event",
		slog.String("type", e.Type),
		slog.Int64("campaign_id", e.CampaignID),
		slog.String("account", string(e.Account)),
		slog.Int64("amount", e.Amount),
	)
}

// Events returns a copy of all notifications in emission order.
func (l *Log) Events(_ context.Context) []domain.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Event, len(l.events))
	copy(out, l.events)
	return out
}

package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundpool/internal/core/domain"
	"fundpool/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds a CampaignLedger to execute business logic, the event
// log for the notifications endpoint and a logger for structured logging.
// Routes are registered on a chi.Router for convenient method handling.
type Handler struct {
	svc    port.CampaignLedger
	events port.EventLog
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. The returned
// Handler registers handlers for each ledger operation on a new
// chi.Router.
func NewHandler(svc port.CampaignLedger, events port.EventLog, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, events: events, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Post("/campaigns/{id}/pledge", h.handlePledge)
		r.Post("/campaigns/{id}/unpledge", h.handleUnpledge)
		r.Post("/campaigns/{id}/withdraw", h.handleWithdraw)
		r.Post("/campaigns/{id}/refund", h.handleRefund)
		r.Get("/campaigns/{id}/contributions/{account}", h.handleContribution)
		r.Get("/events", h.handleEvents)
		r.Post("/transfer", h.handleTransfer)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// statusFor maps every ledger error kind to an HTTP status. Unknown
// errors are treated as internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidGoal),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrZeroValue),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrDirectTransferRejected):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrCampaignNotStarted),
		errors.Is(err, domain.ErrCampaignEnded),
		errors.Is(err, domain.ErrCampaignNotEnded),
		errors.Is(err, domain.ErrGoalNotReached),
		errors.Is(err, domain.ErrGoalReached),
		errors.Is(err, domain.ErrAlreadyClaimed),
		errors.Is(err, domain.ErrNoContribution):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReentrantCall):
		return http.StatusLocked
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error with its mapped status. Internal errors are
// logged and masked with a generic message.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("ledger error", slog.Any("error", err))
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

// writeJSON encodes v with the JSON content type set.
func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; log and move on
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// caller extracts the acting account from the X-Account header. There is
// no authentication beyond carrying an identity.
func caller(r *http.Request) (domain.Account, bool) {
	account := r.Header.Get("X-Account")
	return domain.Account(account), account != ""
}

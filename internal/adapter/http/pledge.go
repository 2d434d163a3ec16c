package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fundpool/internal/core/domain"
)

// amountRequest is the JSON body of pledge and unpledge calls. For a
// pledge the amount is the value attached to the call.
type amountRequest struct {
	Amount int64 `json:"amount"`
}

// handlePledge adds the attached amount to the caller's contribution.
func (h *Handler) handlePledge(w http.ResponseWriter, r *http.Request) {
	h.mutateWithAmount(w, r, h.svc.Pledge)
}

// handleUnpledge returns part or all of the caller's open pledge.
func (h *Handler) handleUnpledge(w http.ResponseWriter, r *http.Request) {
	h.mutateWithAmount(w, r, h.svc.Unpledge)
}

// mutateWithAmount decodes the common id/account/amount triple and runs
// the given ledger operation. Success is HTTP 204 No Content.
func (h *Handler) mutateWithAmount(w http.ResponseWriter, r *http.Request, op func(context.Context, domain.Account, int64, int64) error) {
	account, ok := caller(r)
	if !ok {
		http.Error(w, "missing X-Account header", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	var req amountRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err = op(r.Context(), account, id, req.Amount); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleWithdraw pays out the pooled funds to the creator.
func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.Withdraw)
}

// handleRefund returns the caller's full stake after a failed campaign.
func (h *Handler) handleRefund(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.Refund)
}

// mutate runs an amount-less ledger operation for the caller. Success is
// HTTP 204 No Content.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, domain.Account, int64) error) {
	account, ok := caller(r)
	if !ok {
		http.Error(w, "missing X-Account header", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	if err = op(r.Context(), account, id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

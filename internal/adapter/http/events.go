package httpadapter

import (
	"encoding/json"
	"net/http"
)

// handleEvents returns the append-only notification log in emission
// order, one entry per successful mutating call.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.events.Events(r.Context()))
}

// handleTransfer is the unsolicited value receipt path. Any direct
// transfer to the ledger outside of pledge is rejected unconditionally,
// forcing all value movement through the accounted pledge path.
func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	account, ok := caller(r)
	if !ok {
		http.Error(w, "missing X-Account header", http.StatusBadRequest)
		return
	}
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.Receive(r.Context(), account, req.Amount); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

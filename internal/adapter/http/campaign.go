package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fundpool/internal/core/domain"
	"fundpool/internal/core/port"
)

// createCampaignRequest is the JSON body of POST /campaigns. Duration is
// given in whole seconds.
type createCampaignRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Goal            int64  `json:"goal"`
	DurationSeconds int64  `json:"duration_seconds"`
}

// handleCreateCampaign registers a new campaign owned by the caller. On
// success it returns HTTP 201 with the allocated id. Parsing errors
// produce HTTP 400; validation failures are mapped by statusFor.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	account, ok := caller(r)
	if !ok {
		http.Error(w, "missing X-Account header", http.StatusBadRequest)
		return
	}
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	id, err := h.svc.CreateCampaign(r.Context(), account, port.CreateCampaignReq{
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		Duration:    time.Duration(req.DurationSeconds) * time.Second,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, map[string]int64{"id": id})
}

// handleGetCampaign returns a single campaign. Unknown ids result in
// HTTP 404.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.Campaign(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, c)
}

// handleListCampaigns returns all campaigns ordered by id.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.Campaigns(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, all)
}

// handleContribution reports the amount currently held for an account on
// a campaign. Unknown ids and accounts read as 0 rather than erroring.
func (h *Handler) handleContribution(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	account := chi.URLParam(r, "account")
	amount, err := h.svc.MyContribution(r.Context(), id, domain.Account(account))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, map[string]int64{"amount": amount})
}

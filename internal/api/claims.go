package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/store"
)

// ClaimsHandler handles claim submission and admin decisions.
type ClaimsHandler struct {
	DB *sql.DB
}

type submitClaimRequest struct {
	ItemID string `json:"itemId"`
	model.ClaimDetails
}

type decideRequest struct {
	Outcome model.Outcome `json:"outcome"`
}

type updateStatusRequest struct {
	Action model.Outcome `json:"action"`
}

type claimsOverview struct {
	Items   []model.Item `json:"items"`
	Pending int          `json:"pending"`
}

// validationError is the 400 body for a claim with missing fields.
type validationError struct {
	Error  string            `json:"error"`
	Fields model.FieldErrors `json:"fields"`
}

// Submit handles POST /api/items/claimsitem.
func (h *ClaimsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == "" {
		jsonError(w, http.StatusBadRequest, "itemId required")
		return
	}

	details := req.ClaimDetails.Trimmed()
	if err := details.Validate(); err != nil {
		var fields model.FieldErrors
		errors.As(err, &fields)
		jsonResponse(w, http.StatusBadRequest, validationError{Error: err.Error(), Fields: fields})
		return
	}

	claims := GetClaims(r.Context())
	claim, err := store.SubmitClaim(r.Context(), h.DB, req.ItemID, claims.UserID, details)
	if err != nil {
		storeError(w, err, "submit claim")
		return
	}

	slog.Info("claim submitted", "user", claims.Name, "item", req.ItemID, "claim", claim.ID)
	jsonResponse(w, http.StatusCreated, claim)
}

// Decide handles PATCH /api/items/{itemId}/claims/{claimId}.
func (h *ClaimsHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.decide(w, r, req.Outcome)
}

// UpdateStatus handles PUT /api/items/{itemId}/claims/{claimId}, the older
// form of Decide that names the outcome "action".
func (h *ClaimsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.decide(w, r, req.Action)
}

func (h *ClaimsHandler) decide(w http.ResponseWriter, r *http.Request, outcome model.Outcome) {
	if !outcome.Valid() {
		jsonError(w, http.StatusBadRequest, "outcome must be approve or reject")
		return
	}

	itemID, claimID := r.PathValue("itemId"), r.PathValue("claimId")
	claims := GetClaims(r.Context())

	claim, err := store.DecideClaim(r.Context(), h.DB, itemID, claimID, outcome, claims.UserID)
	if err != nil {
		storeError(w, err, "decide claim")
		return
	}

	slog.Info("claim decided", "user", claims.Name, "item", itemID, "claim", claimID, "outcome", outcome)
	jsonResponse(w, http.StatusOK, claim)
}

// ListForAdmin handles GET /api/admin/claimrequest. Items with pending claims
// are listed first.
func (h *ClaimsHandler) ListForAdmin(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListClaimedItems(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "list claims")
		return
	}

	pending, err := store.CountPendingClaims(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "list claims")
		return
	}

	jsonResponse(w, http.StatusOK, claimsOverview{Items: items, Pending: pending})
}

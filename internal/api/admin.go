package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/store"
)

// AdminHandler handles item moderation endpoints (admin only).
type AdminHandler struct {
	DB       *sql.DB
	PageSize int
}

func (h *AdminHandler) listWith(w http.ResponseWriter, r *http.Request, status string) {
	f, err := parseItemFilter(r.URL.Query(), h.PageSize)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if status != "" {
		f.Status = status
	}
	list(w, r, h.DB, f)
}

// ListPending handles GET /api/admin/pending.
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, model.ItemStatusPending)
}

// ListApproved handles GET /api/admin/approved.
func (h *AdminHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, model.ItemStatusApproved)
}

// ListAll handles GET /api/admin/items.
func (h *AdminHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, "")
}

// Approve handles PUT /api/admin/items/{id}/approve.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.ItemStatusApproved, "item approved")
}

// Reject handles PUT /api/admin/items/{id}/reject.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.ItemStatusRejected, "item rejected")
}

func (h *AdminHandler) transition(w http.ResponseWriter, r *http.Request, to, event string) {
	id := r.PathValue("id")

	item, err := store.TransitionItem(r.Context(), h.DB, id, to)
	if err != nil {
		storeError(w, err, "update item")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info(event, "user", claims.Name, "item", id, "title", item.Title)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/admin/items/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "delete item")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item deleted", "user", claims.Name, "item", id)
	jsonMessage(w, http.StatusOK, "item deleted")
}

package api

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/store"
)

// UsersHandler handles the user directory (admin only).
type UsersHandler struct {
	DB *sql.DB
}

// List handles GET /api/admin/users. The optional "search" parameter
// matches name or email.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB, strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		storeError(w, err, "list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

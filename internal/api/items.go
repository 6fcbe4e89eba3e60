package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/lostfound/internal/auth"
	"github.com/erazemk/lostfound/internal/imaging"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/store"
)

// ItemsHandler handles report and listing endpoints.
type ItemsHandler struct {
	DB       *sql.DB
	PageSize int
}

// publicStatuses are the item statuses non-admins may browse.
var publicStatuses = []string{model.ItemStatusApproved, model.ItemStatusClaimed}

// dateLayouts are the accepted forms of an item's event date.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseItemFilter reads listing filters from the query string. A status of
// lost or found is a type filter, as sent by the dashboard.
func parseItemFilter(q url.Values, pageSize int) (store.ItemFilter, error) {
	f := store.ItemFilter{
		Category: q.Get("category"),
		Type:     q.Get("type"),
		Search:   q.Get("search"),
		Location: q.Get("location"),
		Tag:      q.Get("tag"),
		PageSize: pageSize,
		Page:     1,
	}

	switch status := q.Get("status"); {
	case status == "":
	case model.ValidItemType(status):
		f.Type = status
	case model.ValidItemStatus(status):
		f.Status = status
	default:
		return f, errors.New("invalid status")
	}

	if f.Category != "" && !model.ValidCategory(f.Category) {
		return f, errors.New("invalid category")
	}
	if f.Type != "" && !model.ValidItemType(f.Type) {
		return f, errors.New("invalid type")
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return f, errors.New("invalid page")
		}
		f.Page = page
	}
	return f, nil
}

// list writes one page for f, or a 400 if the query was invalid.
func list(w http.ResponseWriter, r *http.Request, db *sql.DB, f store.ItemFilter) {
	page, err := store.ListItems(r.Context(), db, f)
	if err != nil {
		storeError(w, err, "list items")
		return
	}
	jsonResponse(w, http.StatusOK, page)
}

// List handles GET /api/items. Non-admins only see approved and claimed items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseItemFilter(r.URL.Query(), h.PageSize)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if claims := GetClaims(r.Context()); !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		if f.Status != "" && f.Status != model.ItemStatusApproved && f.Status != model.ItemStatusClaimed {
			jsonError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		f.Statuses = publicStatuses
	}
	list(w, r, h.DB, f)
}

// ListApproved handles GET /api/items/approved.
func (h *ItemsHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	f, err := parseItemFilter(r.URL.Query(), h.PageSize)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	f.Status = model.ItemStatusApproved
	list(w, r, h.DB, f)
}

// ListMine handles GET /api/items/myitems.
func (h *ItemsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	f, err := parseItemFilter(r.URL.Query(), h.PageSize)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	f.ReporterID = GetClaims(r.Context()).UserID
	list(w, r, h.DB, f)
}

// Create handles POST /api/items. The body is a multipart form with an
// optional "image" file.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	n := store.NewItem{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Category:    r.FormValue("category"),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Type:        r.FormValue("type"),
		ReporterID:  GetClaims(r.Context()).UserID,
	}
	for _, v := range r.MultipartForm.Value["tags"] {
		n.Tags = append(n.Tags, strings.Split(v, ",")...)
	}

	if n.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if !model.ValidCategory(n.Category) {
		jsonError(w, http.StatusBadRequest, "invalid category")
		return
	}
	if !model.ValidItemType(n.Type) {
		jsonError(w, http.StatusBadRequest, "type must be lost or found")
		return
	}

	date, err := parseDate(r.FormValue("date"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid date")
		return
	}
	n.Date = date

	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		photo, err := imaging.Process(file)
		if errors.Is(err, imaging.ErrTooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		n.Image, n.ImageMime = photo.Data, photo.MIME
	case !errors.Is(err, http.ErrMissingFile):
		jsonError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, n)
	if err != nil {
		storeError(w, err, "create item")
		return
	}

	slog.Info("item reported", "user", GetClaims(r.Context()).Name, "item", item.ID, "type", item.Type)
	jsonResponse(w, http.StatusCreated, item)
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Now().UTC(), nil
	}
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Get handles GET /api/items/{id}. Admins and the reporter also receive the
// item's claims. Others only see approved or claimed items.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	claims := GetClaims(r.Context())

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "get item")
		return
	}

	if item == nil || !canView(item, claims) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	if model.RoleAtLeast(claims.Role, model.RoleAdmin) || item.Reporter.ID == claims.UserID {
		item.ClaimRequests, err = store.ListItemClaims(r.Context(), h.DB, id)
		if err != nil {
			storeError(w, err, "get item claims")
			return
		}
	}

	jsonResponse(w, http.StatusOK, item)
}

// GetImage handles GET /api/items/{id}/image. Anonymous requests only see
// images of listed items; the reporter and admins see every status.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "get image")
		return
	}
	if item == nil || !canView(item, GetClaims(r.Context())) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if listed(item.Status) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	} else {
		w.Header().Set("Cache-Control", "private, no-store")
	}
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}

// listed reports whether items in status are visible to everyone.
func listed(status string) bool {
	return status == model.ItemStatusApproved || status == model.ItemStatusClaimed
}

// canView reports whether the caller may see item. claims is nil for
// anonymous requests.
func canView(item *model.Item, claims *auth.Claims) bool {
	if listed(item.Status) {
		return true
	}
	if claims == nil {
		return false
	}
	return model.RoleAtLeast(claims.Role, model.RoleAdmin) || item.Reporter.ID == claims.UserID
}

// Claim handles PUT /api/items/{id}/claim, the direct claim that skips
// ownership review.
func (h *ItemsHandler) Claim(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	item, err := store.ClaimItemDirect(r.Context(), h.DB, r.PathValue("id"), claims.UserID)
	if err != nil {
		storeError(w, err, "claim item")
		return
	}

	slog.Info("item claimed directly", "user", claims.Name, "item", item.ID)
	jsonResponse(w, http.StatusOK, item)
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/lostfound/internal/model"
)

// DefaultPageSize is used when a listing does not ask for a page size.
const DefaultPageSize = 12

// NewItem holds the fields of a user report.
type NewItem struct {
	Title       string
	Description string
	Category    string
	Location    string
	Date        time.Time
	Tags        []string
	Type        string
	ReporterID  string
	Image       []byte
	ImageMime   string
}

// ItemFilter selects and pages an item listing. Zero values match everything.
type ItemFilter struct {
	Category   string
	Status     string
	Statuses   []string
	Type       string
	Search     string
	Location   string
	Tag        string
	ReporterID string
	Page       int
	PageSize   int
}

const itemSelect = `SELECT i.id, i.title, i.description, i.category, i.location, i.event_date,
	       i.tags, i.type, i.status, i.image_mime, i.created_at, i.updated_at,
	       u.id, u.name, u.email, u.phone
	FROM items i
	JOIN users u ON u.id = i.reporter_id`

// CreateItem stores a new report. Reports always start pending moderation.
func CreateItem(ctx context.Context, db *sql.DB, n NewItem) (*model.Item, error) {
	id := uuid.NewString()

	var image any
	var mime sql.NullString
	if len(n.Image) > 0 {
		image = n.Image
		mime = sql.NullString{String: n.ImageMime, Valid: true}
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, title, description, category, location, event_date, tags, type, status, image, image_mime, reporter_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, n.Title, n.Description, n.Category, n.Location, n.Date.UTC(), joinTags(n.Tags), n.Type,
		model.ItemStatusPending, image, mime, n.ReporterID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns a non-deleted item by ID, or nil if there is none.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	return getItem(ctx, db, id)
}

func getItem(ctx context.Context, q querier, id string) (*model.Item, error) {
	rows, err := q.QueryContext(ctx, itemSelect+` WHERE i.id = ? AND i.deleted_at IS NULL`, id)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// ListItems returns one page of non-deleted items matching f, newest first.
func ListItems(ctx context.Context, db *sql.DB, f ItemFilter) (*model.ItemPage, error) {
	where, args := f.where()

	var total int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items i WHERE `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("counting items: %w", err)
	}

	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	rows, err := db.QueryContext(ctx,
		itemSelect+` WHERE `+where+` ORDER BY i.created_at DESC, i.rowid DESC LIMIT ? OFFSET ?`,
		append(args, size, (page-1)*size)...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}

	return &model.ItemPage{Items: items, Total: total, Pages: pages, Page: page}, nil
}

func (f ItemFilter) where() (string, []any) {
	conds := []string{"i.deleted_at IS NULL"}
	var args []any

	if f.Category != "" {
		conds = append(conds, "i.category = ?")
		args = append(args, f.Category)
	}
	if f.Status != "" {
		conds = append(conds, "i.status = ?")
		args = append(args, f.Status)
	}
	if len(f.Statuses) > 0 {
		conds = append(conds, "i.status IN (?"+strings.Repeat(", ?", len(f.Statuses)-1)+")")
		for _, s := range f.Statuses {
			args = append(args, s)
		}
	}
	if f.Type != "" {
		conds = append(conds, "i.type = ?")
		args = append(args, f.Type)
	}
	if f.ReporterID != "" {
		conds = append(conds, "i.reporter_id = ?")
		args = append(args, f.ReporterID)
	}
	if s := model.NormalizeSearch(f.Location); s != "" {
		conds = append(conds, `LOWER(i.location) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(s)+"%")
	}
	if t := model.NormalizeTag(f.Tag); t != "" {
		conds = append(conds, `i.tags LIKE ? ESCAPE '\'`)
		args = append(args, "%,"+escapeLike(t)+",%")
	}
	if s := model.NormalizeSearch(f.Search); s != "" {
		conds = append(conds, `(LOWER(i.title) LIKE ? ESCAPE '\' OR LOWER(i.description) LIKE ? ESCAPE '\' OR i.tags LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(s) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// TransitionItem moves an item to status to. The change is applied as a
// compare-and-set on the status read, so a concurrent moderator cannot make
// an item skip a state.
func TransitionItem(ctx context.Context, db *sql.DB, id, to string) (*model.Item, error) {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}

	if err := setItemStatus(ctx, db, id, item.Status, to); err != nil {
		return nil, err
	}
	return GetItem(ctx, db, id)
}

func setItemStatus(ctx context.Context, q querier, id, from, to string) error {
	if !model.CanTransition(from, to) {
		return fmt.Errorf("item %s %s -> %s: %w", id, from, to, ErrInvalidTransition)
	}

	result, err := q.ExecContext(ctx,
		`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ? AND deleted_at IS NULL`,
		to, id, from,
	)
	if err != nil {
		return fmt.Errorf("updating item status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("item %s changed concurrently: %w", id, ErrConflict)
	}
	return nil
}

// DeleteItem soft-deletes an item. Claimed items cannot be deleted.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	var status string
	err := db.QueryRowContext(ctx,
		`SELECT status FROM items WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if !model.Deletable(status) {
		return fmt.Errorf("item %s is claimed: %w", id, ErrConflict)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL AND status != ?`,
		id, model.ItemStatusClaimed,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("item %s changed concurrently: %w", id, ErrConflict)
	}
	return nil
}

// GetItemImage returns an item's image data and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var it model.Item
		var tags string
		var imageMime sql.NullString
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Category, &it.Location, &it.Date,
			&tags, &it.Type, &it.Status, &imageMime, &it.CreatedAt, &it.UpdatedAt,
			&it.Reporter.ID, &it.Reporter.Name, &it.Reporter.Email, &it.Reporter.Phone); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		it.Tags = splitTags(tags)
		if imageMime.Valid {
			it.Image = "/api/items/" + it.ID + "/image"
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// joinTags stores tags comma-wrapped (",a,b,") so a whole tag matches
// LIKE '%,tag,%'.
func joinTags(tags []string) string {
	tags = model.NormalizeTags(tags)
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(strings.Trim(s, ","), ",") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

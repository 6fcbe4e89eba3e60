package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/lostfound/internal/model"
)

// Query holds listing filters. Zero fields are omitted.
type Query struct {
	Category string
	Status   string
	Type     string
	Search   string
	Location string
	Tag      string
	Page     int
}

// Values encodes q as URL query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val = strings.TrimSpace(val); val != "" {
			v.Set(key, val)
		}
	}
	set("category", q.Category)
	set("status", q.Status)
	set("type", q.Type)
	set("search", q.Search)
	set("location", q.Location)
	set("tag", q.Tag)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

func withQuery(path string, q Query) string {
	if enc := q.Values().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// Report is the input to CreateItem. Image is optional.
type Report struct {
	Title       string
	Description string
	Category    string
	Location    string
	Date        time.Time
	Tags        []string
	Type        string
	Image       io.Reader
	ImageName   string
}

// Validate checks the fields the server requires.
func (r Report) Validate() error {
	fields := model.FieldErrors{}
	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = "Title is required"
	}
	if !model.ValidCategory(r.Category) {
		fields["category"] = "Choose a category"
	}
	if !model.ValidItemType(r.Type) {
		fields["type"] = "Type must be lost or found"
	}
	return fields.OrNil()
}

// CreateItem reports an item. The new item starts pending moderation.
func (c *Client) CreateItem(ctx context.Context, r Report) (*model.Item, error) {
	if err := r.Validate(); err != nil {
		fe, _ := err.(model.FieldErrors)
		return nil, validationError("Please fix the highlighted fields", fe)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":       r.Title,
		"description": r.Description,
		"category":    r.Category,
		"location":    r.Location,
		"type":        r.Type,
		"tags":        strings.Join(r.Tags, ","),
	}
	if !r.Date.IsZero() {
		fields["date"] = r.Date.Format(time.RFC3339)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, &Error{Kind: KindValidation, Message: "Failed to report item", Err: err}
		}
	}
	if r.Image != nil {
		name := r.ImageName
		if name == "" {
			name = "image"
		}
		fw, err := mw.CreateFormFile("image", filepath.Base(name))
		if err == nil {
			_, err = io.Copy(fw, r.Image)
		}
		if err != nil {
			return nil, &Error{Kind: KindValidation, Message: "Could not read image", Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: KindValidation, Message: "Failed to report item", Err: err}
	}

	var item model.Item
	err := c.call(ctx, http.MethodPost, "/api/items", &buf, mw.FormDataContentType(), &item, "Failed to report item")
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) listPage(ctx context.Context, path string, q Query, fallback string) (*model.ItemPage, error) {
	var page model.ItemPage
	if err := c.getJSON(ctx, withQuery(path, q), &page, fallback); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListItems lists items visible to the session: everything for admins,
// approved and claimed items for everyone else.
func (c *Client) ListItems(ctx context.Context, q Query) (*model.ItemPage, error) {
	return c.listPage(ctx, "/api/items", q, "Failed to load items")
}

// ListApproved lists approved items. No session is needed.
func (c *Client) ListApproved(ctx context.Context, q Query) (*model.ItemPage, error) {
	return c.listPage(ctx, "/api/items/approved", q, "Failed to load items")
}

// ListMyItems lists the items the session's user reported.
func (c *Client) ListMyItems(ctx context.Context, q Query) (*model.ItemPage, error) {
	return c.listPage(ctx, "/api/items/myitems", q, "Failed to load your items")
}

// GetItem returns one item. Claims are included for admins and the reporter.
func (c *Client) GetItem(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	if err := c.getJSON(ctx, "/api/items/"+url.PathEscape(id), &item, "Failed to load item"); err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemImage downloads an item's image and returns its bytes.
func (c *Client) ItemImage(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	if err := c.getJSON(ctx, fmt.Sprintf("/api/items/%s/image", url.PathEscape(id)), &data, "Failed to load image"); err != nil {
		return nil, err
	}
	return data, nil
}

// ClaimItem marks an approved item claimed without an ownership review.
func (c *Client) ClaimItem(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/items/%s/claim", url.PathEscape(id)), nil, &item, "Failed to claim item")
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SubmitClaim files an ownership claim. Details are checked before sending;
// the item's status does not change, so callers re-fetch it afterwards.
func (c *Client) SubmitClaim(ctx context.Context, itemID string, d model.ClaimDetails) (*model.ClaimRequest, error) {
	d = d.Trimmed()
	if err := d.Validate(); err != nil {
		fe, _ := err.(model.FieldErrors)
		return nil, validationError("Please fill in every required field", fe)
	}

	body := struct {
		ItemID string `json:"itemId"`
		model.ClaimDetails
	}{itemID, d}

	var claim model.ClaimRequest
	if err := c.sendJSON(ctx, http.MethodPost, "/api/items/claimsitem", body, &claim, "Failed to submit claim"); err != nil {
		return nil, err
	}
	return &claim, nil
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/erazemk/lostfound/internal/model"
)

// ClaimsOverview is the admin claims listing: every item with claims, items
// with pending claims first.
type ClaimsOverview struct {
	Items   []model.Item `json:"items"`
	Pending int          `json:"pending"`
}

// ListAdminPending lists items awaiting moderation.
func (c *Client) ListAdminPending(ctx context.Context, q Query) (*model.ItemPage, error) {
	return c.listPage(ctx, "/api/admin/pending", q, "Failed to load pending items")
}

// ListAdminApproved lists approved items.
func (c *Client) ListAdminApproved(ctx context.Context, q Query) (*model.ItemPage, error) {
	return c.listPage(ctx, "/api/admin/approved", q, "Failed to load approved items")
}

// ListAdminItems lists items in every status.
func (c *Client) ListAdminItems(ctx context.Context, q Query) (*model.ItemPage, error) {
	return c.listPage(ctx, "/api/admin/items", q, "Failed to load items")
}

func (c *Client) moderate(ctx context.Context, id, action, fallback string) (*model.Item, error) {
	var item model.Item
	path := fmt.Sprintf("/api/admin/items/%s/%s", url.PathEscape(id), action)
	if err := c.sendJSON(ctx, http.MethodPut, path, nil, &item, fallback); err != nil {
		return nil, err
	}
	return &item, nil
}

// ApproveItem publishes a pending item.
func (c *Client) ApproveItem(ctx context.Context, id string) (*model.Item, error) {
	return c.moderate(ctx, id, "approve", "Failed to approve item")
}

// RejectItem rejects a pending item.
func (c *Client) RejectItem(ctx context.Context, id string) (*model.Item, error) {
	return c.moderate(ctx, id, "reject", "Failed to reject item")
}

// DeleteItem removes an item. Claimed items cannot be deleted.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/api/admin/items/"+url.PathEscape(id), nil, nil, "Failed to delete item")
}

// ListUsers lists accounts, optionally filtered by name or email.
func (c *Client) ListUsers(ctx context.Context, search string) ([]model.User, error) {
	path := "/api/admin/users"
	if search != "" {
		path += "?" + url.Values{"search": {search}}.Encode()
	}

	var users []model.User
	if err := c.getJSON(ctx, path, &users, "Failed to load users"); err != nil {
		return nil, err
	}
	return users, nil
}

// ListAdminClaims returns every item with claims.
func (c *Client) ListAdminClaims(ctx context.Context) (*ClaimsOverview, error) {
	var o ClaimsOverview
	if err := c.getJSON(ctx, "/api/admin/claimrequest", &o, "Failed to load claim requests"); err != nil {
		return nil, err
	}
	return &o, nil
}

// DecideClaim approves or rejects a pending claim. Approving also claims the
// item and rejects the item's other pending claims.
func (c *Client) DecideClaim(ctx context.Context, itemID, claimID string, outcome model.Outcome) (*model.ClaimRequest, error) {
	if !outcome.Valid() {
		return nil, validationError(fmt.Sprintf("Unknown decision %q", outcome), nil)
	}

	var claim model.ClaimRequest
	path := fmt.Sprintf("/api/items/%s/claims/%s", url.PathEscape(itemID), url.PathEscape(claimID))
	err := c.sendJSON(ctx, http.MethodPatch, path, map[string]model.Outcome{"outcome": outcome}, &claim, "Failed to update claim")
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

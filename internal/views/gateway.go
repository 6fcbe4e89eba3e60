// Package views holds headless view-models for the lost-and-found client:
// listing state, claim decisions and the admin console. Views are safe for
// concurrent use and never render anything.
package views

import (
	"context"
	"errors"

	"github.com/erazemk/lostfound/internal/client"
	"github.com/erazemk/lostfound/internal/model"
)

// Gateway is the part of *client.Client the views call.
type Gateway interface {
	ListItems(ctx context.Context, q client.Query) (*model.ItemPage, error)
	ListApproved(ctx context.Context, q client.Query) (*model.ItemPage, error)
	ListMyItems(ctx context.Context, q client.Query) (*model.ItemPage, error)
	ListAdminPending(ctx context.Context, q client.Query) (*model.ItemPage, error)
	ListAdminApproved(ctx context.Context, q client.Query) (*model.ItemPage, error)
	ListAdminItems(ctx context.Context, q client.Query) (*model.ItemPage, error)
	GetItem(ctx context.Context, id string) (*model.Item, error)
	ApproveItem(ctx context.Context, id string) (*model.Item, error)
	RejectItem(ctx context.Context, id string) (*model.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ClaimItem(ctx context.Context, id string) (*model.Item, error)
	SubmitClaim(ctx context.Context, itemID string, d model.ClaimDetails) (*model.ClaimRequest, error)
	ListAdminClaims(ctx context.Context) (*client.ClaimsOverview, error)
	DecideClaim(ctx context.Context, itemID, claimID string, outcome model.Outcome) (*model.ClaimRequest, error)
	ListUsers(ctx context.Context, search string) ([]model.User, error)
}

var _ Gateway = (*client.Client)(nil)

var (
	// ErrBusy is returned when an action is triggered while the same
	// control is already waiting on the server. No request is sent.
	ErrBusy = errors.New("action already in progress")
	// ErrSuperseded is returned by a load whose response arrived after a
	// newer load was started. The response is discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
	// ErrOutOfRange is returned when paging past the first or last page.
	ErrOutOfRange = errors.New("page out of range")
)

// latest tracks the newest in-flight request of a view. Starting a request
// cancels the previous one; a response is applied only if it belongs to
// the newest request. Callers hold the view's mutex.
type latest struct {
	gen    uint64
	cancel context.CancelFunc
}

func (l *latest) begin(ctx context.Context) (context.Context, uint64) {
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, l.cancel = context.WithCancel(ctx)
	return ctx, l.gen
}

// end reports whether gen is still the newest request and, if so, releases
// its context.
func (l *latest) end(gen uint64) bool {
	if gen != l.gen {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/erazemk/lostfound/internal/client"
	"github.com/erazemk/lostfound/internal/model"
)

// Audience selects which listing a registry shows.
type Audience string

// Audiences.
const (
	AudiencePublic        Audience = "public"         // approved items, no session needed
	AudienceAll           Audience = "all"            // dashboard "All" tab
	AudienceMine          Audience = "mine"           // dashboard "My items" tab
	AudienceAdminPending  Audience = "admin-pending"  // moderation queue
	AudienceAdminApproved Audience = "admin-approved" // published items
	AudienceAdminAll      Audience = "admin-all"
)

// RegistryState is a snapshot of a registry.
type RegistryState struct {
	Query   client.Query
	Items   []model.Item
	Total   int
	Pages   int
	Loading bool
	Err     error
	// Loaded is false until the first successful fetch.
	Loaded bool
}

// Registry keeps one filtered, paginated item listing in sync with the
// server. Page counts always come from the server.
type Registry struct {
	gw       Gateway
	audience Audience

	mu      sync.Mutex
	query   client.Query
	page    *model.ItemPage
	loading bool
	err     error
	req     latest
	version uint64          // bumped each time a load replaces the page
	busy    map[string]bool // item IDs with an action in flight
}

// NewRegistry creates an empty registry for audience. Nothing is fetched
// until Load.
func NewRegistry(gw Gateway, audience Audience) *Registry {
	return &Registry{
		gw:       gw,
		audience: audience,
		query:    client.Query{Page: 1},
		busy:     map[string]bool{},
	}
}

// Audience returns the listing this registry shows.
func (r *Registry) Audience() Audience {
	return r.audience
}

// State returns a snapshot of the registry.
func (r *Registry) State() RegistryState {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := RegistryState{Query: r.query, Loading: r.loading, Err: r.err, Pages: 1}
	if r.page != nil {
		s.Items = append([]model.Item(nil), r.page.Items...)
		s.Total = r.page.Total
		s.Pages = r.page.Pages
		s.Loaded = true
	}
	return s
}

func (r *Registry) fetch(ctx context.Context, q client.Query) (*model.ItemPage, error) {
	switch r.audience {
	case AudiencePublic:
		return r.gw.ListApproved(ctx, q)
	case AudienceAll:
		return r.gw.ListItems(ctx, q)
	case AudienceMine:
		return r.gw.ListMyItems(ctx, q)
	case AudienceAdminPending:
		return r.gw.ListAdminPending(ctx, q)
	case AudienceAdminApproved:
		return r.gw.ListAdminApproved(ctx, q)
	case AudienceAdminAll:
		return r.gw.ListAdminItems(ctx, q)
	default:
		return nil, fmt.Errorf("unknown audience %q", r.audience)
	}
}

// Load fetches the current page. Any load already in flight is canceled and
// its response discarded. A superseded load returns ErrSuperseded. If the
// current page no longer exists, for example after deleting the last row
// on the last page, the last page is loaded instead.
func (r *Registry) Load(ctx context.Context) error {
	r.mu.Lock()
	fetchCtx, gen := r.req.begin(ctx)
	q := r.query
	r.loading = true
	r.mu.Unlock()

	page, err := r.fetch(fetchCtx, q)

	r.mu.Lock()
	if !r.req.end(gen) {
		r.mu.Unlock()
		return ErrSuperseded
	}
	r.loading = false
	if err != nil {
		r.err = err
		r.mu.Unlock()
		return err
	}
	r.err = nil
	r.page = page
	r.version++
	if page.Page > 0 {
		r.query.Page = page.Page
	}
	past := page.Pages >= 1 && r.query.Page > page.Pages
	if past {
		r.query.Page = page.Pages
	}
	r.mu.Unlock()

	if past {
		return r.Load(ctx)
	}
	return nil
}

// SetFilter replaces the filters, resets to the first page and loads it.
// q.Page is ignored.
func (r *Registry) SetFilter(ctx context.Context, q client.Query) error {
	r.mu.Lock()
	q.Page = 1
	r.query = q
	r.mu.Unlock()
	return r.Load(ctx)
}

// CanPrev reports whether there is a page before the current one.
func (r *Registry) CanPrev() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page != nil && r.query.Page > 1
}

// CanNext reports whether there is a page after the current one.
func (r *Registry) CanNext() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page != nil && r.query.Page < r.page.Pages
}

// Goto loads page n. Pages outside [1, pages] return ErrOutOfRange without
// a request, as does paging before the first load.
func (r *Registry) Goto(ctx context.Context, n int) error {
	r.mu.Lock()
	if r.page == nil || n < 1 || n > r.page.Pages {
		r.mu.Unlock()
		return ErrOutOfRange
	}
	r.query.Page = n
	r.mu.Unlock()
	return r.Load(ctx)
}

// Next loads the following page.
func (r *Registry) Next(ctx context.Context) error {
	r.mu.Lock()
	n := r.query.Page + 1
	r.mu.Unlock()
	return r.Goto(ctx, n)
}

// Prev loads the preceding page.
func (r *Registry) Prev(ctx context.Context) error {
	r.mu.Lock()
	n := r.query.Page - 1
	r.mu.Unlock()
	return r.Goto(ctx, n)
}

// Busy reports whether an action on item id is in flight.
func (r *Registry) Busy(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy[id]
}

func (r *Registry) acquire(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy[id] {
		return false
	}
	r.busy[id] = true
	return true
}

func (r *Registry) release(id string) {
	r.mu.Lock()
	delete(r.busy, id)
	r.mu.Unlock()
}

// mutate runs a server-side change on one row and then reloads the current
// page, whatever the outcome.
func (r *Registry) mutate(ctx context.Context, id string, change func(context.Context, string) error) error {
	if !r.acquire(id) {
		return ErrBusy
	}
	err := change(ctx, id)
	r.release(id)
	if err != nil {
		return err
	}
	if err := r.Load(ctx); err != nil && err != ErrSuperseded {
		return err
	}
	return nil
}

// Approve publishes a pending item and refreshes the page.
func (r *Registry) Approve(ctx context.Context, id string) error {
	return r.mutate(ctx, id, func(ctx context.Context, id string) error {
		_, err := r.gw.ApproveItem(ctx, id)
		return err
	})
}

// Reject rejects a pending item and refreshes the page.
func (r *Registry) Reject(ctx context.Context, id string) error {
	return r.mutate(ctx, id, func(ctx context.Context, id string) error {
		_, err := r.gw.RejectItem(ctx, id)
		return err
	})
}

// Delete removes an item and refreshes the page.
func (r *Registry) Delete(ctx context.Context, id string) error {
	return r.mutate(ctx, id, r.gw.DeleteItem)
}

// Claim marks an item claimed straight away. The row shows as claimed while
// the request runs; on failure the row is restored and the page reloaded.
func (r *Registry) Claim(ctx context.Context, id string) error {
	if !r.acquire(id) {
		return ErrBusy
	}
	defer r.release(id)

	var applied uint64
	cmd := Optimistic[string]{
		Apply: func() string {
			prior, version := r.setRowStatus(id, model.ItemStatusClaimed)
			applied = version
			return prior
		},
		Commit: func(ctx context.Context) error {
			_, err := r.gw.ClaimItem(ctx, id)
			return err
		},
		Restore: func(prior string) {
			if prior != "" {
				r.restoreRowStatus(id, prior, applied)
			}
		},
	}
	if err := cmd.Run(ctx); err != nil {
		// The row may be stale for reasons besides this request.
		r.Load(ctx)
		return err
	}
	return nil
}

// setRowStatus patches one loaded row and returns its previous status, or
// "" if the item is not on the current page, along with the page version.
func (r *Registry) setRowStatus(id, status string) (string, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.row(id)
	if i < 0 {
		return "", r.version
	}
	prior := r.page.Items[i].Status
	r.page.Items[i].Status = status
	return prior, r.version
}

// restoreRowStatus puts a row's status back unless a load has replaced the
// page since version.
func (r *Registry) restoreRowStatus(id, status string, version uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.version != version {
		return
	}
	if i := r.row(id); i >= 0 {
		r.page.Items[i].Status = status
	}
}

// row returns the index of item id on the current page, or -1. Callers hold
// r.mu.
func (r *Registry) row(id string) int {
	if r.page == nil {
		return -1
	}
	for i := range r.page.Items {
		if r.page.Items[i].ID == id {
			return i
		}
	}
	return -1
}

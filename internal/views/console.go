package views

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/lostfound/internal/client"
	"github.com/erazemk/lostfound/internal/session"
)

// Redirect names where a view sends a user it will not serve.
type Redirect string

// Redirects. RedirectNone means the view may be shown.
const (
	RedirectNone   Redirect = ""
	RedirectLogin  Redirect = "login"
	RedirectBrowse Redirect = "browse"
)

// RedirectError is returned by admin views opened without an admin session.
type RedirectError struct {
	To Redirect
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("admin session required, redirecting to %s", e.To)
}

// AdminGuard decides whether s may open an admin-only view.
func AdminGuard(s session.Session) Redirect {
	switch {
	case !s.Authenticated():
		return RedirectLogin
	case !s.IsAdmin():
		return RedirectBrowse
	default:
		return RedirectNone
	}
}

// RedirectFor maps a failed call to the redirect a view should follow, if
// any. An expired or revoked session goes back to login.
func RedirectFor(err error) Redirect {
	if err == nil {
		return RedirectNone
	}
	switch client.KindOf(err) {
	case client.KindAuth:
		return RedirectLogin
	case client.KindForbidden:
		return RedirectBrowse
	}
	var re *RedirectError
	if errors.As(err, &re) {
		return re.To
	}
	return RedirectNone
}

// Tab is one section of the moderation console.
type Tab string

// Console tabs.
const (
	TabPending  Tab = "pending"
	TabApproved Tab = "approved"
	TabAll      Tab = "all"
	TabUsers    Tab = "users"
	TabClaims   Tab = "claims"
)

// Tabs lists the console tabs in display order.
var Tabs = []Tab{TabPending, TabApproved, TabAll, TabUsers, TabClaims}

// Overview is the console's headline counts.
type Overview struct {
	PendingItems  int
	PendingClaims int
}

// Console is the admin moderation view. Every entry point checks the
// session first and refuses non-admins without contacting the server.
type Console struct {
	gw      Gateway
	session *session.Holder

	registries map[Tab]*Registry
	users      *UserDirectory
	board      *ClaimsBoard

	mu     sync.Mutex
	active Tab
}

// NewConsole creates a console backed by gw for the session in holder.
func NewConsole(gw Gateway, holder *session.Holder) *Console {
	return &Console{
		gw:      gw,
		session: holder,
		registries: map[Tab]*Registry{
			TabPending:  NewRegistry(gw, AudienceAdminPending),
			TabApproved: NewRegistry(gw, AudienceAdminApproved),
			TabAll:      NewRegistry(gw, AudienceAdminAll),
		},
		users:  NewUserDirectory(gw),
		board:  NewClaimsBoard(gw),
		active: TabPending,
	}
}

func (c *Console) guard() error {
	if to := AdminGuard(c.session.Snapshot()); to != RedirectNone {
		return &RedirectError{To: to}
	}
	return nil
}

// Registry returns the listing behind an item tab, or nil for the users and
// claims tabs.
func (c *Console) Registry(tab Tab) *Registry {
	return c.registries[tab]
}

// Users returns the users tab.
func (c *Console) Users() *UserDirectory {
	return c.users
}

// Board returns the claims tab.
func (c *Console) Board() *ClaimsBoard {
	return c.board
}

// Active returns the selected tab.
func (c *Console) Active() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Open selects tab and loads it. Without an admin session it returns the
// redirect to follow and sends nothing.
func (c *Console) Open(ctx context.Context, tab Tab) (Redirect, error) {
	if err := c.guard(); err != nil {
		return RedirectFor(err), err
	}
	if !validTab(tab) {
		return RedirectNone, fmt.Errorf("unknown tab %q", tab)
	}

	c.mu.Lock()
	c.active = tab
	c.mu.Unlock()

	err := c.Refresh(ctx)
	return RedirectFor(err), err
}

func validTab(tab Tab) bool {
	for _, t := range Tabs {
		if t == tab {
			return true
		}
	}
	return false
}

// Refresh reloads the active tab.
func (c *Console) Refresh(ctx context.Context) error {
	if err := c.guard(); err != nil {
		return err
	}
	switch tab := c.Active(); tab {
	case TabUsers:
		return c.users.Load(ctx)
	case TabClaims:
		return c.board.Load(ctx)
	default:
		return c.registries[tab].Load(ctx)
	}
}

// Filter applies q to the active tab and reloads it from the first page.
// The users tab only uses q.Search.
func (c *Console) Filter(ctx context.Context, q client.Query) error {
	if err := c.guard(); err != nil {
		return err
	}
	switch tab := c.Active(); tab {
	case TabUsers:
		return c.users.Search(ctx, q.Search)
	case TabClaims:
		return c.board.Load(ctx)
	default:
		return c.registries[tab].SetFilter(ctx, q)
	}
}

func (c *Console) activeRegistry() (*Registry, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	tab := c.Active()
	r := c.registries[tab]
	if r == nil {
		return nil, fmt.Errorf("tab %q has no item actions", tab)
	}
	return r, nil
}

// Approve approves an item on the active tab.
func (c *Console) Approve(ctx context.Context, id string) error {
	r, err := c.activeRegistry()
	if err != nil {
		return err
	}
	return r.Approve(ctx, id)
}

// Reject rejects an item on the active tab.
func (c *Console) Reject(ctx context.Context, id string) error {
	r, err := c.activeRegistry()
	if err != nil {
		return err
	}
	return r.Reject(ctx, id)
}

// Delete deletes an item on the active tab.
func (c *Console) Delete(ctx context.Context, id string) error {
	r, err := c.activeRegistry()
	if err != nil {
		return err
	}
	return r.Delete(ctx, id)
}

// Overview fetches the pending item and pending claim counts concurrently.
func (c *Console) Overview(ctx context.Context) (Overview, error) {
	if err := c.guard(); err != nil {
		return Overview{}, err
	}

	var o Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := c.gw.ListAdminPending(ctx, client.Query{Page: 1})
		if err != nil {
			return err
		}
		o.PendingItems = page.Total
		return nil
	})
	g.Go(func() error {
		claims, err := c.gw.ListAdminClaims(ctx)
		if err != nil {
			return err
		}
		o.PendingClaims = claims.Pending
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return o, nil
}

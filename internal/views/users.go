package views

import (
	"context"
	"sync"

	"github.com/erazemk/lostfound/internal/model"
)

// UsersState is a snapshot of a user directory.
type UsersState struct {
	Search  string
	Users   []model.User
	Loading bool
	Err     error
}

// UserDirectory lists accounts for admins, optionally filtered by name or
// email.
type UserDirectory struct {
	gw Gateway

	mu      sync.Mutex
	search  string
	users   []model.User
	loading bool
	err     error
	req     latest
}

// NewUserDirectory creates an empty directory.
func NewUserDirectory(gw Gateway) *UserDirectory {
	return &UserDirectory{gw: gw}
}

// State returns a snapshot of the directory.
func (d *UserDirectory) State() UsersState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return UsersState{
		Search:  d.search,
		Users:   append([]model.User(nil), d.users...),
		Loading: d.loading,
		Err:     d.err,
	}
}

// Search sets the filter and loads matching users.
func (d *UserDirectory) Search(ctx context.Context, search string) error {
	d.mu.Lock()
	d.search = search
	d.mu.Unlock()
	return d.Load(ctx)
}

// Load fetches users matching the current filter.
func (d *UserDirectory) Load(ctx context.Context) error {
	d.mu.Lock()
	ctx, gen := d.req.begin(ctx)
	search := d.search
	d.loading = true
	d.mu.Unlock()

	users, err := d.gw.ListUsers(ctx, search)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.req.end(gen) {
		return ErrSuperseded
	}
	d.loading = false
	if err != nil {
		d.err = err
		return err
	}
	d.err = nil
	d.users = users
	return nil
}

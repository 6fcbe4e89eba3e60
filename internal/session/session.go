// Package session holds the signed-in identity of a client: a bearer token
// and the minimal user record returned at login.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Roles recognised by the client.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the cached identity of the signed-in account.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Session is a bearer token and the user it was issued to. The zero value
// is the signed-out session.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.Authenticated() && s.User.Role == RoleAdmin
}

// Store persists a session between runs.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// Holder owns the current session. Readers take a snapshot, so a request
// already in flight keeps the token it started with when the session is
// replaced or cleared.
type Holder struct {
	current atomic.Pointer[Session]
	store   Store
	mu      sync.Mutex // serialises writes to store
}

// NewHolder loads the persisted session from store. A nil store keeps the
// session in memory only.
func NewHolder(store Store) (*Holder, error) {
	h := &Holder{store: store}
	s := Session{}
	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("loading session: %w", err)
		}
		s = loaded
	}
	h.current.Store(&s)
	return h, nil
}

// Snapshot returns the current session.
func (h *Holder) Snapshot() Session {
	return *h.current.Load()
}

// Token returns the current bearer token, or "" when signed out.
func (h *Holder) Token() string {
	return h.current.Load().Token
}

// Set replaces the session and persists it.
func (h *Holder) Set(s Session) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current.Store(&s)
	if h.store == nil {
		return nil
	}
	if err := h.store.Save(s); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear signs out locally.
func (h *Holder) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current.Store(&Session{})
	if h.store == nil {
		return nil
	}
	if err := h.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// FileStore keeps the session as JSON in a file readable only by its owner.
type FileStore struct {
	Path string
}

// DefaultPath returns ~/.lostfound/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".lostfound", "session.json"), nil
}

// Load reads the session file. A missing file is a signed-out session.
func (f FileStore) Load() (Session, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parsing session file %s: %w", f.Path, err)
	}
	return s, nil
}

// Save writes the session file with mode 0600.
func (f FileStore) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return os.Rename(tmp, f.Path)
}

// Clear removes the session file.
func (f FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

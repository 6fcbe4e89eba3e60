package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/session"
)

// Registration is the input to Register.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session and stores it in the holder.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Session{}, validationError("Email and password are required", nil)
	}

	var s session.Session
	err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &s, "Login failed")
	if err != nil {
		return session.Session{}, err
	}
	if err := c.session.Set(s); err != nil {
		return s, &Error{Kind: KindTransient, Message: "Could not save session", Err: err}
	}
	return s, nil
}

// Register creates a user account. It does not sign in.
func (c *Client) Register(ctx context.Context, r Registration) (*model.User, error) {
	fields := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = "Email is required"
	}
	if err := model.ValidatePassword(r.Password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, validationError("Please fix the highlighted fields", fields)
	}

	var u model.User
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/register", r, &u, "Registration failed"); err != nil {
		return nil, err
	}
	return &u, nil
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.getJSON(ctx, "/api/auth/me", &u, "Failed to load profile"); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout revokes the token on the server and clears the local session. The
// local session is cleared even when the server call fails; the returned
// error then reports the failed revocation.
func (c *Client) Logout(ctx context.Context) error {
	if !c.session.Snapshot().Authenticated() {
		return nil
	}

	err := c.sendJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil, "Logout failed")
	if clearErr := c.session.Clear(); clearErr != nil && err == nil {
		err = &Error{Kind: KindTransient, Message: "Could not clear session", Err: clearErr}
	}
	if IsKind(err, KindAuth) {
		// Already expired or revoked.
		return nil
	}
	return err
}

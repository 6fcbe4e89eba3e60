package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// User is a registered portal account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin: 2,
		RoleUser:  1,
	}
	return levels[role] >= levels[minimum] && levels[minimum] > 0
}

// ValidatePassword checks the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// ValidateEmail checks that email is well formed and belongs to domain or
// one of its subdomains. An empty domain accepts any address.
func ValidateEmail(email, domain string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address")
	}
	if domain == "" {
		return nil
	}

	at := strings.LastIndex(email, "@")
	host := strings.ToLower(email[at+1:])
	domain = strings.ToLower(strings.TrimPrefix(domain, "@"))
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return errors.New("email must belong to " + domain)
	}
	return nil
}

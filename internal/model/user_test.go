package model

import "testing"

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     string
		minimum  string
		expected bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleUser, RoleUser, true},
		// Unknown roles fail-closed.
		{"unknown", RoleUser, false},
		{RoleAdmin, "unknown", false},
		{"", "", false},
		{"", RoleUser, false},
	}

	for _, tt := range tests {
		got := RoleAtLeast(tt.role, tt.minimum)
		if got != tt.expected {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		domain  string
		wantErr bool
	}{
		{"ana@uni.edu", "uni.edu", false},
		{"ana@students.uni.edu", "uni.edu", false},
		{"ANA@Uni.Edu", "uni.edu", false},
		{"ana@gmail.com", "uni.edu", true},
		{"ana@notuni.edu", "uni.edu", true},
		{"not-an-email", "uni.edu", true},
		{"Ana <ana@uni.edu>", "uni.edu", true},
		{"ana@gmail.com", "", false},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email, tt.domain)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q, %q) error = %v, wantErr %v", tt.email, tt.domain, err, tt.wantErr)
		}
	}
}

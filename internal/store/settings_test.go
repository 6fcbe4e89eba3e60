package store

import (
	"context"
	"testing"

	"github.com/erazemk/lostfound/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestPutAndGetSetting(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	got, err := GetSetting(ctx, database, SettingEmailDomain)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("expected unset setting, got %q", got)
	}

	if err := PutSetting(ctx, database, SettingEmailDomain, "uni.edu"); err != nil {
		t.Fatal(err)
	}
	if err := PutSetting(ctx, database, SettingEmailDomain, "campus.edu"); err != nil {
		t.Fatal(err)
	}

	got, _ = GetSetting(ctx, database, SettingEmailDomain)
	if got != "campus.edu" {
		t.Errorf("expected overwritten value 'campus.edu', got %q", got)
	}
}

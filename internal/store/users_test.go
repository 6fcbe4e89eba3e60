package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "Ana Novak", "Ana@Uni.edu", "040123456", "hash123", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated id")
	}
	if user.Email != "ana@uni.edu" {
		t.Errorf("expected lower-cased email, got %q", user.Email)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected role 'user', got %q", user.Role)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Ana Novak" {
		t.Errorf("expected name 'Ana Novak', got %q", got.Name)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "Ana", "ana@uni.edu", "", "hash", model.RoleUser); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, err := CreateUser(ctx, database, "Other Ana", "ANA@uni.edu", "", "hash", model.RoleUser)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "Alice", "alice@uni.edu", "", "hash", model.RoleAdmin)

	user, err := GetUserByEmail(ctx, database, "ALICE@uni.edu")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}

	missing, err := GetUserByEmail(ctx, database, "bob@uni.edu")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestListUsersSearch(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "Alice Admin", "alice@uni.edu", "", "hash", model.RoleAdmin)
	CreateUser(ctx, database, "Bob", "bob@uni.edu", "", "hash", model.RoleUser)
	CreateUser(ctx, database, "Carol", "carol@uni.edu", "", "hash", model.RoleUser)

	all, err := ListUsers(ctx, database, "")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 users, got %d", len(all))
	}

	found, _ := ListUsers(ctx, database, "ALICE")
	if len(found) != 1 || found[0].Name != "Alice Admin" {
		t.Errorf("expected only Alice, got %v", found)
	}

	byEmail, _ := ListUsers(ctx, database, "bob@")
	if len(byEmail) != 1 {
		t.Errorf("expected 1 user matching email, got %d", len(byEmail))
	}

	admins, _ := CountAdmins(ctx, database)
	if admins != 1 {
		t.Errorf("expected 1 admin, got %d", admins)
	}
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/lostfound/internal/api"
	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/session"
	"github.com/erazemk/lostfound/internal/store"
)

func newHolder(t *testing.T, token string) *session.Holder {
	t.Helper()
	h, err := session.NewHolder(nil)
	require.NoError(t, err)
	if token != "" {
		require.NoError(t, h.Set(session.Session{Token: token}))
	}
	return h
}

func TestErrorExtraction(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    Kind
		wantMessage string
	}{
		{"error field", http.StatusConflict, `{"error":"item already claimed"}`, KindConflict, "item already claimed"},
		{"message field", http.StatusBadRequest, `{"message":"bad date"}`, KindValidation, "bad date"},
		{"no body", http.StatusInternalServerError, ``, KindTransient, "Failed to load item"},
		{"html body", http.StatusBadGateway, `<html>oops</html>`, KindTransient, "Failed to load item"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid token"}`, KindAuth, "invalid token"},
		{"forbidden", http.StatusForbidden, `{"error":"insufficient permissions"}`, KindForbidden, "insufficient permissions"},
		{"not found", http.StatusNotFound, `{}`, KindNotFound, "Failed to load item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, nil)
			_, err := c.GetItem(context.Background(), "x")
			require.Error(t, err)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			require.Equal(t, tt.wantKind, ce.Kind)
			require.Equal(t, tt.wantMessage, ce.Message)
			require.Equal(t, tt.status, ce.Status)
		})
	}
}

func TestTransportErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, nil)
	_, err := c.ListApproved(context.Background(), Query{})
	require.True(t, IsKind(err, KindTransient))
	require.Equal(t, KindTransient, KindOf(err))
}

func TestCanceledCall(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	c := New(srv.URL, nil)
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.ListApproved(ctx, Query{})
	require.Error(t, err)
	require.True(t, Canceled(err))
}

func TestBearerToken(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[],"total":0,"pages":1,"page":1}`))
	}))
	defer srv.Close()

	holder := newHolder(t, "")
	c := New(srv.URL, holder)

	_, err := c.ListItems(context.Background(), Query{})
	require.NoError(t, err)
	require.Equal(t, "", got.Load())

	require.NoError(t, holder.Set(session.Session{Token: "tok-1"}))
	_, err = c.ListItems(context.Background(), Query{})
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-1", got.Load())
}

// A logout while a call is in flight does not change the token that call
// already sent.
func TestTokenSnapshotPerCall(t *testing.T) {
	holder := newHolder(t, "tok-1")
	arrived := make(chan string, 1)
	proceed := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- r.Header.Get("Authorization")
		<-proceed
		w.Write([]byte(`{"id":"x","status":"approved"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, holder)
	done := make(chan error, 1)
	go func() {
		_, err := c.GetItem(context.Background(), "x")
		done <- err
	}()

	require.Equal(t, "Bearer tok-1", <-arrived)
	require.NoError(t, holder.Clear())
	close(proceed)
	require.NoError(t, <-done)
}

func TestQueryValues(t *testing.T) {
	q := Query{Category: "keys", Status: "lost", Search: "  ", Tag: "blue", Page: 3}
	require.Equal(t, "category=keys&page=3&status=lost&tag=blue", q.Values().Encode())
	require.Equal(t, "/api/items", withQuery("/api/items", Query{}))
}

func TestClientSideValidation(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New(srv.URL, newHolder(t, "tok"))
	ctx := context.Background()

	_, err := c.SubmitClaim(ctx, "item", model.ClaimDetails{StudentID: "S1"})
	require.True(t, IsKind(err, KindValidation))
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Contains(t, ce.Fields, "nationalId")

	_, err = c.CreateItem(ctx, Report{Title: " ", Category: "pets", Type: "found"})
	require.ErrorAs(t, err, &ce)
	require.Contains(t, ce.Fields, "title")
	require.Contains(t, ce.Fields, "category")

	_, err = c.DecideClaim(ctx, "i", "c", model.Outcome("maybe"))
	require.True(t, IsKind(err, KindValidation))

	_, err = c.Login(ctx, "", "")
	require.True(t, IsKind(err, KindValidation))

	require.Zero(t, calls.Load())
}

// liveServer runs the real API over an in-memory database.
func liveServer(t *testing.T) (*httptest.Server, *session.Holder) {
	t.Helper()
	database := db.NewTestDB(t)
	srv := httptest.NewServer(api.NewRouter(database, "client-test-secret", api.Options{}))
	t.Cleanup(srv.Close)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	_, err := store.CreateUser(context.Background(), database, "Ada", "ada@example.edu", "", string(hash), model.RoleAdmin)
	require.NoError(t, err)
	return srv, newHolder(t, "")
}

func TestLiveClaimFlow(t *testing.T) {
	srv, _ := liveServer(t)
	ctx := context.Background()

	admin := New(srv.URL, nil)
	s, err := admin.Login(ctx, "ada@example.edu", "password1")
	require.NoError(t, err)
	require.True(t, s.IsAdmin())

	users := make([]*Client, 2)
	for i, email := range []string{"a@example.edu", "b@example.edu"} {
		users[i] = New(srv.URL, nil)
		_, err := users[i].Register(ctx, Registration{Name: email, Email: email, Password: "password1"})
		require.NoError(t, err)
		_, err = users[i].Login(ctx, email, "password1")
		require.NoError(t, err)
	}

	item, err := users[0].CreateItem(ctx, Report{
		Title: "Blue Wallet", Category: model.CategoryOther, Type: model.ItemTypeFound,
		Location: "Library", Tags: []string{"Blue", "leather"}, Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, model.ItemStatusPending, item.Status)

	// Claiming before approval is a conflict.
	_, err = users[1].SubmitClaim(ctx, item.ID, details())
	require.True(t, IsKind(err, KindConflict))

	_, err = admin.ApproveItem(ctx, item.ID)
	require.NoError(t, err)

	page, err := New(srv.URL, nil).ListApproved(ctx, Query{Tag: "blue"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	claimA, err := users[0].SubmitClaim(ctx, item.ID, details())
	require.NoError(t, err)
	claimB, err := users[1].SubmitClaim(ctx, item.ID, details())
	require.NoError(t, err)

	overview, err := admin.ListAdminClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, overview.Pending)

	decided, err := admin.DecideClaim(ctx, item.ID, claimA.ID, model.OutcomeApprove)
	require.NoError(t, err)
	require.Equal(t, model.ClaimStatusApproved, decided.Status)

	_, err = admin.DecideClaim(ctx, item.ID, claimB.ID, model.OutcomeApprove)
	require.True(t, IsKind(err, KindConflict))

	got, err := admin.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, model.ItemStatusClaimed, got.Status)

	err = admin.DeleteItem(ctx, item.ID)
	require.True(t, IsKind(err, KindConflict))
}

func TestLiveForbiddenAndLogout(t *testing.T) {
	srv, _ := liveServer(t)
	ctx := context.Background()

	c := New(srv.URL, nil)
	_, err := c.Register(ctx, Registration{Name: "Bo", Email: "bo@example.edu", Password: "password1"})
	require.NoError(t, err)

	// No token: the call is still sent and the server refuses it.
	_, err = c.Me(ctx)
	require.True(t, IsKind(err, KindAuth))

	_, err = c.Login(ctx, "bo@example.edu", "password1")
	require.NoError(t, err)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "bo@example.edu", me.Email)

	_, err = c.ListAdminPending(ctx, Query{})
	require.True(t, IsKind(err, KindForbidden))

	token := c.Session().Token()
	require.NoError(t, c.Logout(ctx))
	require.False(t, c.Session().Snapshot().Authenticated())

	// The old token is revoked server-side.
	stale := New(srv.URL, newHolder(t, token))
	_, err = stale.Me(ctx)
	require.True(t, IsKind(err, KindAuth))
}

func TestLoginBadCredentials(t *testing.T) {
	srv, holder := liveServer(t)
	c := New(srv.URL, holder)

	_, err := c.Login(context.Background(), "ada@example.edu", "wrong-password")
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindAuth, ce.Kind)
	require.Equal(t, "invalid credentials", ce.Message)
	require.False(t, holder.Snapshot().Authenticated())
}

func details() model.ClaimDetails {
	return model.ClaimDetails{
		StudentID:       "S123",
		AdmissionNumber: "A456",
		NationalID:      "N789",
		ContactNumber:   "0700000000",
		Reason:          "It has my card inside",
	}
}

func TestClaimsOverviewDecode(t *testing.T) {
	var o ClaimsOverview
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":"i1","claim_requests":[{"id":"c1","status":"pending"}]}],"pending":1}`), &o))
	require.Len(t, o.Items, 1)
	require.Equal(t, "c1", o.Items[0].ClaimRequests[0].ID)
}

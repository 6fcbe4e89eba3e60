package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/store"
)

// Options tunes the API beyond its database and signing key.
type Options struct {
	// EmailDomain restricts registration to one institution. Empty accepts any address.
	EmailDomain string
	// PageSize is the number of items per listing page.
	PageSize int
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, opts Options) http.Handler {
	if opts.PageSize <= 0 {
		opts.PageSize = store.DefaultPageSize
	}

	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, EmailDomain: opts.EmailDomain}
	itemsHandler := &ItemsHandler{DB: db, PageSize: opts.PageSize}
	claimsHandler := &ClaimsHandler{DB: db}
	adminHandler := &AdminHandler{DB: db, PageSize: opts.PageSize}
	usersHandler := &UsersHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	optionalAuth := OptionalAuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	admin := func(h http.HandlerFunc) http.Handler { return authMW(requireAdmin(h)) }

	// Public.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("GET /api/items/approved", itemsHandler.ListApproved)
	mux.Handle("GET /api/items/{id}/image", optionalAuth(http.HandlerFunc(itemsHandler.GetImage)))

	// Authenticated.
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /api/items/myitems", authMW(http.HandlerFunc(itemsHandler.ListMine)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}/claim", authMW(http.HandlerFunc(itemsHandler.Claim)))

	mux.Handle("POST /api/items/claimsitem", authMW(http.HandlerFunc(claimsHandler.Submit)))
	mux.Handle("PATCH /api/items/{itemId}/claims/{claimId}", admin(claimsHandler.Decide))
	mux.Handle("PUT /api/items/{itemId}/claims/{claimId}", admin(claimsHandler.UpdateStatus))

	// Admin.
	mux.Handle("GET /api/admin/pending", admin(adminHandler.ListPending))
	mux.Handle("GET /api/admin/approved", admin(adminHandler.ListApproved))
	mux.Handle("GET /api/admin/items", admin(adminHandler.ListAll))
	mux.Handle("PUT /api/admin/items/{id}/approve", admin(adminHandler.Approve))
	mux.Handle("PUT /api/admin/items/{id}/reject", admin(adminHandler.Reject))
	mux.Handle("DELETE /api/admin/items/{id}", admin(adminHandler.Delete))
	mux.Handle("GET /api/admin/claimrequest", admin(claimsHandler.ListForAdmin))
	mux.Handle("GET /api/admin/users", admin(usersHandler.List))

	return mux
}

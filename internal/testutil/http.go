package testutil

import (
	"context"
	"net/http"

	"github.com/aulahub/aulahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that exercise a handler without a router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AdminUser returns a token user with the admin role.
func AdminUser() auth.TokenUser {
	return auth.TokenUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  "admin",
	}
}

// TeacherUser returns a token user with the teacher role.
func TeacherUser() auth.TokenUser {
	return auth.TokenUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Teacher",
		Email: "teacher@test.com",
		Role:  "teacher",
	}
}

// AsUser injects u into the request context the way the auth middleware
// would after verifying a bearer token.
func AsUser(r *http.Request, u auth.TokenUser) *http.Request {
	return auth.WithUser(r, &u)
}

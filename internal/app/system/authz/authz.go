// internal/app/system/authz/authz.go

// Package authz holds the role policy for the API: a single table from
// operation to required role, evaluated once per request by middleware,
// instead of role conditionals scattered through handlers.
package authz

import (
	"net/http"
	"strings"

	"github.com/aulahub/aulahub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operation names for the policy table. Operations not listed in policy
// require only authentication.
const (
	OpCreateNotification = "notifications.create"
	OpApproveUser        = "notifications.approve_user"
	OpApproveGroup       = "notifications.approve_group"
)

// policy maps an operation to the role it requires.
var policy = map[string]string{
	OpCreateNotification: "admin",
	OpApproveUser:        "admin",
	OpApproveGroup:       "admin",
}

// RequiredRole exposes the policy entry for an operation ("" means any
// authenticated user).
func RequiredRole(op string) string {
	return policy[op]
}

// UserCtx returns the caller's role (lowercased), name, ObjectID, and a
// found flag. ok=true guarantees a valid authenticated user with a
// well-formed ObjectID; malformed ids fail closed.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return "", "", primitive.NilObjectID, false
	}
	return strings.ToLower(u.Role), u.Name, userID, true
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// Require returns middleware enforcing the policy entry for op. It must
// run after auth.RequireAuth so the user is already in context.
func Require(op string) func(http.Handler) http.Handler {
	required := policy[op]
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _, _, ok := UserCtx(r)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"authentication required"}`))
				return
			}
			if required != "" && role != required {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"insufficient role for this operation"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

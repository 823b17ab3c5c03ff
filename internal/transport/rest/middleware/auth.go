package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mindwell/internal/model"
	"mindwell/internal/service"
)

type contextKey string

const (
	UserIDKey contextKey = "userId"
	RoleKey   contextKey = "role"
	ClaimsKey contextKey = "claims"
)

// TokenAuthenticator validates bearer tokens
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*model.UserClaims, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	auth TokenAuthenticator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth TokenAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth validates the JWT from the Authorization header
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		claims, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			writeJSONError(w, http.StatusServiceUnavailable, "could not verify session")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole lets the request through only for the given roles. Use after RequireAuth.
func RequireRole(allowed func(model.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed(GetRole(r.Context())) {
				writeJSONError(w, http.StatusForbidden, "not allowed for this role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff allows health professionals and admins
var RequireStaff = RequireRole(model.Role.IsStaff)

// RequireStudent allows students only
var RequireStudent = RequireRole(func(r model.Role) bool { return r == model.RoleStudent })

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserIDKey).(string); ok {
		return v
	}
	return ""
}

// GetRole extracts the role from context
func GetRole(ctx context.Context) model.Role {
	if v, ok := ctx.Value(RoleKey).(model.Role); ok {
		return v
	}
	return ""
}

// GetClaims extracts the full token claims from context
func GetClaims(ctx context.Context) *model.UserClaims {
	if v, ok := ctx.Value(ClaimsKey).(*model.UserClaims); ok {
		return v
	}
	return nil
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

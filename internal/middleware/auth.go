package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/domain"
)

// ctxKey is unexported so no other package can collide with our context keys.
type ctxKey int

const actorKey ctxKey = iota

// apiClaims are the JWT claims the API issues and expects back: the standard
// registered set plus the employee's email and role names.
type apiClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// NewAuthenticator returns a middleware that requires a valid HS256 bearer
// token on every request and stores the resulting domain.Actor in the
// request context. Requests without a valid token get 401 with a JSON body.
func NewAuthenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			var claims apiClaims
			token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}

			id, err := uuid.Parse(claims.Subject)
			if err != nil {
				unauthorized(w, "invalid subject claim")
				return
			}

			actor := domain.Actor{ID: id, Email: claims.Email, Roles: claims.Roles}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor returns a context carrying the authenticated actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext extracts the authenticated actor stored by the
// authenticator middleware. The second return is false when the request
// never passed through it.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"detail":%q}`, detail)
}

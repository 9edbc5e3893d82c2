package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fms/backend/internal/middleware"
)

var testSecret = []byte("test-secret")

// signToken builds an HS256 token the way the API issues them.
func signToken(t *testing.T, secret []byte, sub string, roles []string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": "dispatcher@example.com",
		"roles": roles,
		"exp":   time.Now().Add(expiresIn).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

// actorEchoHandler writes the authenticated actor's email, proving the
// middleware stored it in context.
var actorEchoHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write([]byte(actor.Email))
})

func TestAuthenticator_ValidToken(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret)(actorEchoHandler)

	token := signToken(t, testSecret, uuid.NewString(), []string{"Dispatcher"}, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dispatcher@example.com", rec.Body.String())
}

func TestAuthenticator_MissingHeader(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret)(actorEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"missing bearer token"}`, rec.Body.String())
}

func TestAuthenticator_WrongSecret(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret)(actorEchoHandler)

	token := signToken(t, []byte("other-secret"), uuid.NewString(), nil, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret)(actorEchoHandler)

	token := signToken(t, testSecret, uuid.NewString(), nil, -time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_NonUUIDSubject(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret)(actorEchoHandler)

	token := signToken(t, testSecret, "not-a-uuid", nil, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActorFromContext_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)

	_, ok := middleware.ActorFromContext(req.Context())

	assert.False(t, ok)
}

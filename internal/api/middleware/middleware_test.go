package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"leet_tracker/internal/common/security"
)

type recordingProvisioner struct {
	seen []security.Identity
	err  error
}

func (p *recordingProvisioner) EnsureUser(_ context.Context, identity security.Identity) error {
	p.seen = append(p.seen, identity)
	return p.err
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	w.Write([]byte(userID))
}

func newTestRouter(devUserID string, provisioner UserProvisioner) http.Handler {
	security.InitJWT([]byte("middleware-secret"))
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(security.TokenAuth))
	r.Use(Authenticator(devUserID))
	if provisioner != nil {
		r.Use(ProvisionUser(provisioner, zap.NewNop()))
	}
	r.Get("/me", echoUser)
	return r
}

func doGet(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator(t *testing.T) {
	strict := newTestRouter("", nil)
	rec := doGet(strict, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authorization token required"}`, rec.Body.String())

	rec = doGet(strict, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := security.GenerateToken(security.Identity{UserID: "alice"}, time.Hour)
	require.NoError(t, err)
	rec = doGet(strict, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())

	expired, err := security.GenerateToken(security.Identity{UserID: "alice"}, -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(strict, expired).Code)

	dev := newTestRouter("dev-user", nil)
	rec = doGet(dev, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev-user", rec.Body.String())

	// A token still wins over the development fallback.
	token, err = security.GenerateToken(security.Identity{UserID: "bob"}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "bob", doGet(dev, token).Body.String())
}

func TestProvisionUser(t *testing.T) {
	p := &recordingProvisioner{}
	h := newTestRouter("", p)

	token, err := security.GenerateToken(security.Identity{UserID: "carol", Email: "carol@example.com"}, time.Hour)
	require.NoError(t, err)
	rec := doGet(h, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, p.seen, 1)
	assert.Equal(t, "carol@example.com", p.seen[0].Email)

	p.err = errors.New("db down")
	rec = doGet(h, token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to load user"}`, rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := chi.NewRouter()
	r.Use(RequestLogger(zap.New(core)))
	r.Get("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/teapot", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}

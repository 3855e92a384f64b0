package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/matchday/backend/internal/auth"
)

type fakeRevoker struct {
	revoked map[string]struct{}
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	f.revoked[jti] = struct{}{}
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) bool {
	_, ok := f.revoked[jti]
	return ok
}

func newProtectedRouter(jwtService *auth.JWTService, revoker auth.Revoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWT(jwtService, revoker), func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet(ContextUserEmail).(string))
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	token, err := svc.Generate(uuid.New(), "casey@example.com")
	require.NoError(t, err)

	w := get(newProtectedRouter(svc, nil), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "casey@example.com", w.Body.String())
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	w := get(newProtectedRouter(svc, nil), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareRejectsMalformedHeader(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	w := get(newProtectedRouter(svc, nil), "Token abc")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareRejectsRevokedToken(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	token, err := svc.Generate(uuid.New(), "casey@example.com")
	require.NoError(t, err)
	claims, err := svc.Validate(token)
	require.NoError(t, err)

	revoker := &fakeRevoker{revoked: make(map[string]struct{})}
	r := newProtectedRouter(svc, revoker)

	require.Equal(t, http.StatusOK, get(r, "Bearer "+token).Code)
	require.NoError(t, revoker.Revoke(context.Background(), claims.ID, time.Hour))
	require.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}

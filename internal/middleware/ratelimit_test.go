package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(rps, burst), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func post(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	r := newLimitedRouter(1, 3)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, post(r, "10.0.0.1:1234"))
	}
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	r := newLimitedRouter(0.001, 2)
	require.Equal(t, http.StatusOK, post(r, "10.0.0.1:1234"))
	require.Equal(t, http.StatusOK, post(r, "10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1:1234"))
}

func TestRateLimitIsPerClient(t *testing.T) {
	r := newLimitedRouter(0.001, 1)
	require.Equal(t, http.StatusOK, post(r, "10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1:1234"))
	require.Equal(t, http.StatusOK, post(r, "10.0.0.2:1234"))
}

package events

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/matchday/backend/internal/middleware"
	"github.com/matchday/backend/pkg/response"
)

func newTestRouter(t *testing.T, f *fixture, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(f.svc)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserID, userID) })
	r.GET("/events", h.List)
	r.POST("/events", h.Create)
	r.GET("/events/:id", h.GetByID)
	r.PUT("/events/:id", h.Update)
	r.DELETE("/events/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, response.Body) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var envelope response.Body
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"name":       "City Cup",
		"sport_type": "soccer",
		"event_date": "2026-06-01T18:00:00Z",
		"venues":     []string{"Stadium A"},
	}
}

func TestCreateHandlerSucceeds(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f, f.userID)

	w, envelope := doJSON(t, r, http.MethodPost, "/events", validBody())
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, envelope.Success)
	require.NotNil(t, envelope.Data)
}

func TestCreateHandlerRejectsUnknownSport(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f, f.userID)

	body := validBody()
	body["sport_type"] = "chess"
	w, envelope := doJSON(t, r, http.MethodPost, "/events", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, envelope.Success)
	require.Contains(t, envelope.Error, "sport_type must be one of")
	require.Empty(t, f.store.events)
}

func TestCreateHandlerRequiresVenues(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f, f.userID)

	body := validBody()
	body["venues"] = []string{}
	w, envelope := doJSON(t, r, http.MethodPost, "/events", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, envelope.Error, "venues")
}

func TestCreateHandlerReportsAllInvalidFields(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f, f.userID)

	w, envelope := doJSON(t, r, http.MethodPost, "/events", map[string]interface{}{
		"sport_type": "chess",
		"event_date": "2026-06-01T18:00:00Z",
		"venues":     []string{"Stadium A"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, envelope.Error, "name is required")
	require.Contains(t, envelope.Error, "sport_type must be one of")
}

func TestCreateHandlerAcceptsDateOnly(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f, f.userID)

	body := validBody()
	body["event_date"] = "2026-06-01"
	w, _ := doJSON(t, r, http.MethodPost, "/events", body)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateHandlerRejectsBadDate(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f, f.userID)

	body := validBody()
	body["event_date"] = "next tuesday"
	w, envelope := doJSON(t, r, http.MethodPost, "/events", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, envelope.Error, "event_date")
}

func TestCreateHandlerNoOrganization(t *testing.T) {
	f := newFixture(t)
	stranger := uuid.New()
	r := newTestRouter(t, f, stranger)

	w, envelope := doJSON(t, r, http.MethodPost, "/events", validBody())
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "no organization found", envelope.Error)
}

func TestGetByIDHandlerAccessDenied(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	e, err := f.svc.Create(context.Background(), f.userID, input("Derby", "soccer", date, "A"))
	require.NoError(t, err)

	outsider := uuid.New()
	f.members.orgs[outsider] = []uuid.UUID{uuid.New()}
	r := newTestRouter(t, f, outsider)

	w, envelope := doJSON(t, r, http.MethodGet, "/events/"+e.ID.String(), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "access denied", envelope.Error)
}

func TestDeleteHandlerReturnsNoContent(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	e, err := f.svc.Create(context.Background(), f.userID, input("Derby", "soccer", date, "A"))
	require.NoError(t, err)
	r := newTestRouter(t, f, f.userID)

	w, _ := doJSON(t, r, http.MethodDelete, "/events/"+e.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, f.store.events)
}

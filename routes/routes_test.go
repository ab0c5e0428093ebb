package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-tracker/middleware"
	"hotel-tracker/services"
	"hotel-tracker/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	m, err := services.NewHotelManager(context.Background(), storage.NewMemoryStore(), services.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r, err := SetupRouter(m, opts)
	require.NoError(t, err)
	return r
}

func serve(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newRouter(t, Options{})
	w := serve(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestBookingFlowThroughRouter(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(t, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})

	w := serve(r, http.MethodGet, "/api/reservations/next-id", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"RES-1000"`)

	w = serve(r, http.MethodPost, "/api/reservations",
		`{"roomId":"R102","customerName":"Meera","phone":"555","checkIn":"2025-05-01","checkOut":"2025-05-03"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(r, http.MethodGet, "/api/rooms?available=true", "", nil)
	assert.NotContains(t, w.Body.String(), `"R102"`)

	w = serve(r, http.MethodDelete, "/api/reservations/RES-1000", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/stats", "", nil)
	assert.JSONEq(t, `{"success":true,"data":{"rooms":5,"availableRooms":5,"reservations":0,"nextReservationId":"RES-1001"}}`, w.Body.String())

	assert.Contains(t, logs.String(), "path=/api/reservations")
}

func TestErrorBodyCarriesRequestID(t *testing.T) {
	r := newRouter(t, Options{})
	w := serve(r, http.MethodGet, "/api/rooms/NOPE", "", http.Header{middleware.RequestIDHeader: {"req-42"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Room not found.","requestId":"req-42"}`, w.Body.String())
}

func TestBindErrorBodyCarriesRequestID(t *testing.T) {
	r := newRouter(t, Options{})
	w := serve(r, http.MethodPost, "/api/rooms", `{"roomId":"R9"}`, http.Header{"X-Request-Id": {"req-7"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "req-7", body["requestId"])
	assert.NotEmpty(t, body["details"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := newRouter(t, Options{})
	serve(r, http.MethodGet, "/api/rooms", "", nil)

	w := serve(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.Contains(t, w.Body.String(), "hotel_rooms")
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		r := newRouter(t, Options{AllowedOrigins: []string{"*"}})
		w := serve(r, http.MethodGet, "/api/rooms", "", http.Header{"Origin": {"http://desk.local"}})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
	t.Run("listed origin", func(t *testing.T) {
		r := newRouter(t, Options{AllowedOrigins: []string{"http://desk.local"}})
		w := serve(r, http.MethodGet, "/api/rooms", "", http.Header{"Origin": {"http://desk.local"}})
		assert.Equal(t, "http://desk.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

		w = serve(r, http.MethodGet, "/api/rooms", "", http.Header{"Origin": {"http://evil.local"}})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestTracingMiddlewareOptional(t *testing.T) {
	r := newRouter(t, Options{ServiceName: "hotel-tracker"})
	w := serve(r, http.MethodGet, "/api/rooms/R101", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

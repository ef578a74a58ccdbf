package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(e *echo.Echo, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		proto    string
		wantHSTS bool
	}{
		{"https domain", "drive.example.com", "https", true},
		{"plain http", "drive.example.com", "", false},
		{"localhost", "localhost:8080", "https", false},
		{"no domain", "", "https", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(SecurityHeaders(tt.domain))
			e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

			rec := serve(e, http.MethodGet, "/health", map[string]string{echo.HeaderXForwardedProto: tt.proto})
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
			assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
			assert.Equal(t, tt.wantHSTS, rec.Header().Get("Strict-Transport-Security") != "")
		})
	}
}

func TestMetrics(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.POST("/upload-file/submit", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/broken", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot) })

	okCounter := httpRequestsTotal.WithLabelValues(http.MethodPost, "/upload-file/submit", "200")
	errCounter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/broken", "418")
	okBefore := testutil.ToFloat64(okCounter)
	errBefore := testutil.ToFloat64(errCounter)

	serve(e, http.MethodPost, "/upload-file/submit", nil)
	rec := serve(e, http.MethodGet, "/broken", nil)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(okCounter))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(errCounter))
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.GET("/health", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("inside handler")
		return c.NoContent(http.StatusOK)
	})

	rec := serve(e, http.MethodGet, "/health", nil)
	requestID := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, requestID)

	dec := json.NewDecoder(&buf)
	var inside, done map[string]any
	require.NoError(t, dec.Decode(&inside))
	require.NoError(t, dec.Decode(&done))

	assert.Equal(t, "inside handler", inside["message"])
	assert.Equal(t, requestID, inside["request_id"])

	assert.Equal(t, "Request handled", done["message"])
	assert.Equal(t, "info", done["level"])
	assert.Equal(t, requestID, done["request_id"])
	assert.Equal(t, "/health", done["uri"])
	assert.Equal(t, float64(http.StatusOK), done["status"])
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer

	e := echo.New()
	e.Use(RequestID())
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, http.MethodGet, "/health", map[string]string{echo.HeaderXRequestID: "req-123"})
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newGateRouter(t *testing.T, gate TokenAuthorizer) (*gin.Engine, *bool) {
	t.Helper()
	called := false
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/me", Auth(gate), func(c *gin.Context) {
		called = true
		c.String(http.StatusOK, AccountID(c))
	})
	return r, &called
}

func TestAuth(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	jwtm, err := helpers.NewJWTManager("k", time.Hour, helpers.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	tok, _, err := jwtm.Issue("account-1")
	require.NoError(t, err)

	other, err := helpers.NewJWTManager("other", time.Hour, helpers.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	forged, _, err := other.Issue("account-1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{name: "bearer", headers: map[string]string{"Authorization": "Bearer " + tok}, wantCode: http.StatusOK, wantBody: "account-1"},
		{name: "legacy header", headers: map[string]string{LegacyTokenHeader: tok}, wantCode: http.StatusOK, wantBody: "account-1"},
		{name: "missing", wantCode: http.StatusUnauthorized, wantBody: `"message":"unauthorized"`},
		{name: "garbage", headers: map[string]string{"Authorization": "Bearer nope"}, wantCode: http.StatusUnauthorized, wantBody: `"message":"unauthorized"`},
		{name: "wrong secret", headers: map[string]string{"Authorization": "Bearer " + forged}, wantCode: http.StatusUnauthorized, wantBody: `"message":"unauthorized"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, called := newGateRouter(t, jwtm)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.Equal(t, tt.wantCode == http.StatusOK, *called)
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := helpers.NewJWTManager("k", time.Hour, helpers.WithClock(func() time.Time { return issued }))
	require.NoError(t, err)
	tok, _, err := issuer.Issue("account-1")
	require.NoError(t, err)

	later, err := helpers.NewJWTManager("k", time.Hour, helpers.WithClock(func() time.Time { return issued.Add(2 * time.Hour) }))
	require.NoError(t, err)

	r, called := newGateRouter(t, later)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *called)
	assert.NotContains(t, w.Body.String(), "expired")
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	const given = "5b0e4a36-4a3c-4b7e-9c1c-7d0b8f1b2a10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Body.String())
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.7", w.Body.String())
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/raffle-api/internal/metrics"
	"github.com/vietanh2810/raffle-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) error {
	if token == "good-token" {
		return nil
	}
	return service.ErrUnauthorized
}

func (fakeVerifier) VerifyPassword(password string) error {
	if password == "s3cret" {
		return nil
	}
	return service.ErrUnauthorized
}

func newAdminRouter() *gin.Engine {
	r := gin.New()
	admin := r.Group("/admin", NewAdminAuthenticator(fakeVerifier{}).RequireAdmin())
	admin.GET("/list", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"items": []int{}})
	})
	admin.POST("/confirm", func(ctx *gin.Context) {
		var body struct {
			Number int `json:"number"`
		}
		if err := ctx.ShouldBindBodyWith(&body, binding.JSON); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"number": body.Number})
	})

	return r
}

func TestAdminAuthenticator(t *testing.T) {
	router := newAdminRouter()

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		auth       string
		wantStatus int
		wantBody   string
	}{
		{name: "bearer token", method: http.MethodGet, target: "/admin/list", auth: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "bad bearer token ignores pass", method: http.MethodGet, target: "/admin/list?pass=s3cret", auth: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "query pass", method: http.MethodGet, target: "/admin/list?pass=s3cret", wantStatus: http.StatusOK},
		{name: "wrong query pass", method: http.MethodGet, target: "/admin/list?pass=nope", wantStatus: http.StatusUnauthorized},
		{name: "no credential", method: http.MethodGet, target: "/admin/list", wantStatus: http.StatusUnauthorized},
		{name: "body pass is re-readable", method: http.MethodPost, target: "/admin/confirm", body: `{"pass":"s3cret","number":12}`, wantStatus: http.StatusOK, wantBody: `{"number":12}`},
		{name: "wrong body pass", method: http.MethodPost, target: "/admin/confirm", body: `{"pass":"x","number":12}`, wantStatus: http.StatusUnauthorized},
		{name: "malformed body", method: http.MethodPost, target: "/admin/confirm", body: `{`, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"ok":false,"message":"Não autorizado","error":"Não autorizado"}`, rec.Body.String())
			}
		})
	}
}

func TestMemoryLimiter(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 10, 0, time.UTC)
	l := NewMemoryLimiter(StaticLimit(2), time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, retryAfter, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 50*time.Second, retryAfter)

	ok, _, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, _, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, l.windows, 1)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 0, errors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	newRouter := func(l Limiter) *gin.Engine {
		r := gin.New()
		r.POST("/claim", RateLimit(l), func(ctx *gin.Context) {
			ctx.Status(http.StatusNoContent)
		})
		return r
	}

	router := newRouter(NewMemoryLimiter(StaticLimit(1), time.Minute))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/claim", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/claim", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"ok":false`)

	rec = httptest.NewRecorder()
	newRouter(failingLimiter{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/claim", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetrics(t *testing.T) {
	recorder := metrics.New(prometheus.NewRegistry())
	r := gin.New()
	r.Use(Metrics(recorder))
	r.GET("/numbers", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/numbers", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(recorder.Requests.WithLabelValues("/numbers", "GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(recorder.Requests.WithLabelValues("unmatched", "GET", "404")))
}

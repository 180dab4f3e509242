package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/bpo-console/internal/backend"
)

type fakeParser map[string]string

func (f fakeParser) ParseUserID(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	var forwarded string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"status":200,"data":[]}`))
	}))
	defer upstream.Close()
	client := backend.NewClient(upstream.URL, time.Second)

	r := gin.New()
	r.Use(AuthMiddleware(fakeParser{"good": "u1"}))
	r.GET("/me", func(c *gin.Context) {
		if _, err := client.ListUsers(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": GetUserID(c)})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.status, w.Body.String())
			}
		})
	}

	if forwarded != "Bearer good" {
		t.Fatalf("token not forwarded to the backend: %q", forwarded)
	}
}

func TestRequireUserID(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		if _, ok := RequireUserID(c); !ok {
			return
		}
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", c.GetHeader("X-User"))
		c.Next()
	})
	r.Use(l.Middleware())
	r.POST("/submit", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if hit("u1") != http.StatusOK || hit("u1") != http.StatusOK {
		t.Fatal("burst should be allowed")
	}
	if code := hit("u1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the burst, got %d", code)
	}
	if code := hit("u2"); code != http.StatusOK {
		t.Fatalf("limits are per user, got %d", code)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	l := NewRateLimiter(1, 1)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.allow("old")
	now = now.Add(3 * time.Hour)
	l.allow("fresh")

	if n := l.Cleanup(2 * time.Hour); n != 1 {
		t.Fatalf("expected one idle limiter removed, got %d", n)
	}
	if _, ok := l.limiters["fresh"]; !ok {
		t.Fatal("active limiter must be kept")
	}
}

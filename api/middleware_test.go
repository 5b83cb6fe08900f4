package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pingRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	for _, m := range middleware {
		router.Use(m)
	}
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestAuthMiddlewareRejectsUnauthenticated(t *testing.T) {
	router := pingRouter(AuthMiddleware("secret-key", testLogger()))

	cases := map[string]string{
		"missing header":   "",
		"wrong scheme":     "Basic secret-key",
		"wrong key":        "Bearer wrong-key",
		"truncated key":    "Bearer secret",
		"empty bearer key": "Bearer ",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d", w.Code)
			}
		})
	}
}

func TestAuthMiddlewareAcceptsValidKey(t *testing.T) {
	router := pingRouter(AuthMiddleware("secret-key", testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("got status %d body %q", w.Code, w.Body.String())
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := pingRouter(SecurityHeadersMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options: got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options: got %q", got)
	}
	if got := w.Header().Get("Content-Security-Policy"); got == "" {
		t.Fatal("Content-Security-Policy missing")
	}
}

func TestRateLimitMiddlewareFailsClosedOnRedisError(t *testing.T) {
	// A client pointed at a dead address makes every pipeline exec fail; the
	// limiter must refuse the request rather than wave it through.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	router := pingRouter(RateLimitMiddleware(client, 10, time.Minute, testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d", w.Code)
	}
	if w.Body.String() == "pong" {
		t.Fatal("request passed through despite limiter failure")
	}
}

package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mlcinall/mentor-service/config"
	"github.com/mlcinall/mentor-service/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "mentor-service",
		AccessTokenTTL: 15 * time.Minute,
	})
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("role")})
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── JWTAuth ──

func TestJWTAuth(t *testing.T) {
	mgr := newJWT()
	uid := uuid.NewString()
	token, err := mgr.GenerateAccessToken(uid, RoleMentor)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	r := gin.New()
	r.GET("/me", JWTAuth(mgr), ok)

	cases := map[string]struct {
		header string
		status int
	}{
		"valid":      {"Bearer " + token, http.StatusOK},
		"lowercase":  {"bearer " + token, http.StatusOK},
		"missing":    {"", http.StatusUnauthorized},
		"no scheme":  {token, http.StatusUnauthorized},
		"bad token":  {"Bearer not.a.token", http.StatusUnauthorized},
		"wrong kind": {"Basic " + token, http.StatusUnauthorized},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := serve(r, req)
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status == http.StatusOK && !strings.Contains(w.Body.String(), uid) {
				t.Errorf("expected user id in context, body %s", w.Body.String())
			}
		})
	}
}

// ── RoleAuth / SelfOrAdmin ──

func withIdentity(uid, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", uid)
		c.Set("role", role)
		c.Next()
	}
}

func TestRoleAuth(t *testing.T) {
	cases := map[string]struct {
		role   string
		status int
	}{
		"mentor allowed":  {RoleMentor, http.StatusOK},
		"admin allowed":   {RoleAdmin, http.StatusOK},
		"student blocked": {RoleStudent, http.StatusForbidden},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", withIdentity("u1", tc.role), RoleAuth(RoleMentor, RoleAdmin), ok)
			w := serve(r, httptest.NewRequest("GET", "/x", nil))
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestRoleAuth_Unauthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/x", RoleAuth(RoleMentor), ok)
	w := serve(r, httptest.NewRequest("GET", "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSelfOrAdmin(t *testing.T) {
	cases := map[string]struct {
		uid, role, path string
		status          int
	}{
		"own mentor":   {"m1", RoleMentor, "/mentors/m1", http.StatusOK},
		"other mentor": {"m2", RoleMentor, "/mentors/m1", http.StatusForbidden},
		"admin":        {"a1", RoleAdmin, "/mentors/m1", http.StatusOK},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.GET("/mentors/:id", withIdentity(tc.uid, tc.role), SelfOrAdmin("id"), ok)
			w := serve(r, httptest.NewRequest("GET", tc.path, nil))
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

// ── RateLimit ──

type stubWindow struct {
	allow bool
	err   error
	calls int
}

func (s *stubWindow) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	s.calls++
	return s.allow, s.err
}

func TestRateLimit_Shared(t *testing.T) {
	shared := &stubWindow{allow: false}
	r := gin.New()
	r.POST("/requests", RateLimit(shared, 5, time.Minute, zap.NewNop()), ok)

	w := serve(r, httptest.NewRequest("POST", "/requests", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if shared.calls != 1 {
		t.Errorf("expected shared limiter consulted once, got %d", shared.calls)
	}
}

func TestRateLimit_LocalFallback(t *testing.T) {
	for name, shared := range map[string]SlidingWindow{
		"nil backend":   nil,
		"failing redis": &stubWindow{err: errors.New("connection refused")},
	} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.POST("/requests", withIdentity("u1", RoleStudent), RateLimit(shared, 2, time.Hour, zap.NewNop()), ok)

			for i := 0; i < 2; i++ {
				if w := serve(r, httptest.NewRequest("POST", "/requests", nil)); w.Code != http.StatusOK {
					t.Fatalf("request %d: expected 200, got %d", i, w.Code)
				}
			}
			if w := serve(r, httptest.NewRequest("POST", "/requests", nil)); w.Code != http.StatusTooManyRequests {
				t.Errorf("expected 429 after burst, got %d", w.Code)
			}
		})
	}
}

func TestRateLimit_PerCaller(t *testing.T) {
	r := gin.New()
	r.POST("/requests", func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		c.Next()
	}, RateLimit(nil, 1, time.Hour, zap.NewNop()), ok)

	post := func(user string) int {
		req := httptest.NewRequest("POST", "/requests", nil)
		req.Header.Set("X-Test-User", user)
		return serve(r, req).Code
	}

	if code := post("u1"); code != http.StatusOK {
		t.Fatalf("u1: expected 200, got %d", code)
	}
	if code := post("u2"); code != http.StatusOK {
		t.Errorf("u2 must not share u1's bucket, got %d", code)
	}
	if code := post("u1"); code != http.StatusTooManyRequests {
		t.Errorf("u1: expected 429, got %d", code)
	}
}

// ── RequestID / BodyLimit / CORS / SecurityHeaders ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := serve(r, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("expected inbound id propagated, got %q", w.Header().Get("X-Request-ID"))
	}

	w = serve(r, httptest.NewRequest("GET", "/x", nil))
	if _, err := uuid.Parse(w.Header().Get("X-Request-ID")); err != nil {
		t.Errorf("expected generated uuid, got %q", w.Header().Get("X-Request-ID"))
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", requestIDMaxLen+1))
	w = serve(r, req)
	if len(w.Header().Get("X-Request-ID")) > requestIDMaxLen {
		t.Error("expected oversized id replaced")
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/x", BodyLimit(8), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	if w := serve(r, httptest.NewRequest("POST", "/x", strings.NewReader("small"))); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := serve(r, httptest.NewRequest("POST", "/x", strings.NewReader("far too large a body"))); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/x", ok)

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := serve(r, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("expected allowed origin echoed, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unexpected CORS header for unknown origin")
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/x", SecurityHeaders(), ok)
	w := serve(r, httptest.NewRequest("GET", "/x", nil))
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected nosniff")
	}
}

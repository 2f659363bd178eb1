package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mlcinall/mentor-service/config"
	"github.com/mlcinall/mentor-service/internal/api/handler"
	"github.com/mlcinall/mentor-service/internal/service"
	"github.com/mlcinall/mentor-service/pkg/jwt"
)

func newEngine(t *testing.T) (http.Handler, *jwt.Manager) {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 8000, MaxBodyBytes: 1 << 20},
		Auth:      config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing-2026", Issuer: "mentor-service", AccessTokenTTL: time.Minute},
		RateLimit: config.RateLimitConfig{Requests: 5, Window: time.Minute},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// handlers are never reached by these requests
	h := handler.NewHandler(&service.Service{})
	return Setup(cfg, h, jwtMgr, nil, zap.NewNop()), jwtMgr
}

func TestSetup_Health(t *testing.T) {
	engine, _ := newEngine(t)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestSetup_Guards(t *testing.T) {
	engine, jwtMgr := newEngine(t)
	mentorA := uuid.NewString()
	mentorB := uuid.NewString()

	tokenA, _ := jwtMgr.GenerateAccessToken(mentorA, "mentor")
	student, _ := jwtMgr.GenerateAccessToken(uuid.NewString(), "student")

	cases := []struct {
		name, method, path, token string
		status                    int
	}{
		{"anonymous publish", "POST", "/api/v1/mentors/" + mentorA + "/windows", "", http.StatusUnauthorized},
		{"other mentor publish", "POST", "/api/v1/mentors/" + mentorB + "/windows", tokenA, http.StatusForbidden},
		{"student respond", "POST", "/api/v1/mentors/" + mentorA + "/requests/x/respond", student, http.StatusForbidden},
		{"mentor submits", "POST", "/api/v1/requests", tokenA, http.StatusForbidden},
		{"anonymous favorites", "GET", "/api/v1/favorites", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

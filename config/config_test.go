package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "unit-test-secret-0123456789"
booking:
  carve_on_reject: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if !cfg.Booking.CarveOnReject {
		t.Error("expected carve_on_reject from file")
	}
	if cfg.Booking.LockTTL != 10*time.Second {
		t.Errorf("expected lock_ttl 10s, got %v", cfg.Booking.LockTTL)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("expected rate_limit.window 1m, got %v", cfg.RateLimit.Window)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
auth:
  jwt_secret: "unit-test-secret-0123456789"
`)
	t.Setenv("MENTOR_SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", cfg.Server.Port)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8000\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for empty jwt secret")
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 8000},
		Auth:    AuthConfig{JWTSecret: "short"},
		Booking: BookingConfig{LockTTL: time.Second},
		Profile: ProfileConfig{BaseURL: "http://profile"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestValidate_LockTTL(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 8000},
		Auth:    AuthConfig{JWTSecret: "unit-test-secret-0123456789"},
		Profile: ProfileConfig{BaseURL: "http://profile"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero lock ttl")
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"JWT_SECRET", "JWT_EXPIRES_IN", "ADMIN_API_KEY",
		"PER_SEAT_PRICE", "LOCK_WAIT", "SERVER_PORT",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want localhost", cfg.DBHost)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.PerSeatPrice != 100 {
		t.Errorf("PerSeatPrice = %v, want 100", cfg.PerSeatPrice)
	}
	if cfg.JWTExpiresIn != 24*time.Hour {
		t.Errorf("JWTExpiresIn = %v, want 24h", cfg.JWTExpiresIn)
	}
	if cfg.LockWait != 5*time.Second {
		t.Errorf("LockWait = %v, want 5s", cfg.LockWait)
	}
	if cfg.RateLimitBurst != 20 {
		t.Errorf("RateLimitBurst = %d, want 20", cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PER_SEAT_PRICE", "250.5")
	t.Setenv("LOCK_WAIT", "750ms")
	t.Setenv("JWT_EXPIRES_IN", "1h")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg := Load()

	if cfg.PerSeatPrice != 250.5 {
		t.Errorf("PerSeatPrice = %v, want 250.5", cfg.PerSeatPrice)
	}
	if cfg.LockWait != 750*time.Millisecond {
		t.Errorf("LockWait = %v, want 750ms", cfg.LockWait)
	}
	if cfg.JWTExpiresIn != time.Hour {
		t.Errorf("JWTExpiresIn = %v, want 1h", cfg.JWTExpiresIn)
	}
	if cfg.RateLimitBurst != 5 {
		t.Errorf("RateLimitBurst = %d, want 5", cfg.RateLimitBurst)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PER_SEAT_PRICE", "not-a-number")
	t.Setenv("LOCK_WAIT", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg := Load()

	if cfg.PerSeatPrice != 100 {
		t.Errorf("PerSeatPrice = %v, want default 100", cfg.PerSeatPrice)
	}
	if cfg.LockWait != 5*time.Second {
		t.Errorf("LockWait = %v, want default 5s", cfg.LockWait)
	}
	if cfg.RateLimitBurst != 20 {
		t.Errorf("RateLimitBurst = %d, want default 20", cfg.RateLimitBurst)
	}
}

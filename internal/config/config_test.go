package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "RPC_URL", "MONGO_URI", "MONGO_DB", "ADMIN_TOKEN", "TOKEN_API_URL", "RATE_LIMIT_RPM", "KEY_CACHE_TTL", "SIMULATE_TIMEOUT", "META_TIMEOUT", "FETCH_CONCURRENCY", "SOL_COMMITMENT"} {
		os.Unsetenv(k)
	}

	c := Load()
	if c.Port != "8080" {
		t.Fatalf("port=%s", c.Port)
	}
	if c.MongoURI == "" || c.MongoDB == "" {
		t.Fatalf("mongo not set")
	}
	if c.RateLimitRPM <= 0 || c.KeyCacheTTL <= 0 || c.SimulateTimeout <= 0 || c.MetaTimeout <= 0 || c.FetchConcurrency <= 0 {
		t.Fatalf("invalid defaults: %+v", c)
	}
	if c.SolCommitment != "confirmed" {
		t.Fatalf("commitment=%s", c.SolCommitment)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("RATE_LIMIT_RPM", "123")
	os.Setenv("SIMULATE_TIMEOUT", "5s")
	os.Setenv("META_TIMEOUT", "150ms")
	os.Setenv("FETCH_CONCURRENCY", "7")
	os.Setenv("SOL_COMMITMENT", "processed")
	defer func() {
		for _, k := range []string{"PORT", "RATE_LIMIT_RPM", "SIMULATE_TIMEOUT", "META_TIMEOUT", "FETCH_CONCURRENCY", "SOL_COMMITMENT"} {
			os.Unsetenv(k)
		}
	}()

	c := Load()
	if c.Port != "9090" || c.RateLimitRPM != 123 || c.FetchConcurrency != 7 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.SimulateTimeout != 5*time.Second || c.MetaTimeout != 150*time.Millisecond {
		t.Fatalf("durations not applied: %+v", c)
	}
	if c.SolCommitment != "processed" {
		t.Fatalf("commitment=%s", c.SolCommitment)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	os.Setenv("RATE_LIMIT_RPM", "not-a-number")
	os.Setenv("SIMULATE_TIMEOUT", "not-a-duration")
	defer func() {
		os.Unsetenv("RATE_LIMIT_RPM")
		os.Unsetenv("SIMULATE_TIMEOUT")
	}()
	c := Load()
	if c.RateLimitRPM != 10 || c.SimulateTimeout != 20*time.Second {
		t.Fatalf("fallbacks not applied: %+v", c)
	}
}

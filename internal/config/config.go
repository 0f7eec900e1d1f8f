package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Port             string
	RPCURL           string
	MongoURI         string
	MongoDB          string
	AdminToken       string
	TokenAPIURL      string
	RateLimitRPM     int
	KeyCacheTTL      time.Duration
	SimulateTimeout  time.Duration
	MetaTimeout      time.Duration
	FetchConcurrency int
	SolCommitment    string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load loads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port:             getenv("PORT", "8080"),
		RPCURL:           getenv("RPC_URL", ""),
		MongoURI:         getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getenv("MONGO_DB", "txsim"),
		AdminToken:       getenv("ADMIN_TOKEN", ""),
		TokenAPIURL:      getenv("TOKEN_API_URL", ""),
		RateLimitRPM:     getint("RATE_LIMIT_RPM", 10),
		KeyCacheTTL:      getdur("KEY_CACHE_TTL", 60*time.Second),
		SimulateTimeout:  getdur("SIMULATE_TIMEOUT", 20*time.Second),
		MetaTimeout:      getdur("META_TIMEOUT", 5*time.Second),
		FetchConcurrency: getint("FETCH_CONCURRENCY", 8),
		SolCommitment:    getenv("SOL_COMMITMENT", "confirmed"),
	}
}

// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Upstream  UpstreamConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
}

type ServerConfig struct {
	ListenAddr  string
	CORSOrigins []string
	TrustProxy  bool
}

type AuthConfig struct {
	Username      string
	Password      string
	APIKey        string
	SessionSecret string
}

type UpstreamConfig struct {
	BaseURL       string
	FetchTimeout  time.Duration
	BrowserClient bool
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type RedisConfig struct {
	URL string
}

// Load reads configuration from the environment. Credentials have no
// defaults: startup fails when any of them is unset.
func Load() (Config, error) {
	_ = godotenv.Load()

	auth, err := buildAuthConfig()
	if err != nil {
		return Config{}, err
	}

	rl, err := buildRateLimitConfig()
	if err != nil {
		return Config{}, err
	}

	timeoutSeconds, err := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT_SECONDS: %w", err)
	}

	return Config{
		Server: ServerConfig{
			ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
			TrustProxy:  getEnv("TRUST_PROXY", "false") == "true",
		},
		Auth: auth,
		Upstream: UpstreamConfig{
			BaseURL:       strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "https://www.xvideos.com"), "/"),
			FetchTimeout:  time.Duration(timeoutSeconds) * time.Second,
			BrowserClient: getEnv("BROWSER_CLIENT", "false") == "true",
		},
		RateLimit: rl,
		Redis:     RedisConfig{URL: os.Getenv("REDIS_URL")},
	}, nil
}

func buildAuthConfig() (AuthConfig, error) {
	auth := AuthConfig{
		Username:      os.Getenv("APP_USERNAME"),
		Password:      os.Getenv("APP_PASSWORD"),
		APIKey:        os.Getenv("APP_API_KEY"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
	}

	missing := []string{}
	if auth.Username == "" {
		missing = append(missing, "APP_USERNAME")
	}
	if auth.Password == "" {
		missing = append(missing, "APP_PASSWORD")
	}
	if auth.APIKey == "" {
		missing = append(missing, "APP_API_KEY")
	}
	if auth.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return AuthConfig{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return auth, nil
}

func buildRateLimitConfig() (RateLimitConfig, error) {
	requests, err := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "10"))
	if err != nil {
		return RateLimitConfig{}, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}
	windowSeconds, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	if err != nil {
		return RateLimitConfig{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW_SECONDS: %w", err)
	}
	return RateLimitConfig{
		Requests: requests,
		Window:   time.Duration(windowSeconds) * time.Second,
	}, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	BaseURL      string        // upstream site root, no trailing slash
	FetchTimeout time.Duration
	MaxBodyBytes int64          // cap on fetched document size
	HTTPClient   *http.Client   // plain transport
	Browser      *BrowserClient // nil = plain transport only
}

var cfg Config

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 4 * 1024 * 1024
	}
	if c.HTTPClient == nil {
		c.HTTPClient = newFetchClient(c.FetchTimeout)
	}
	cfg = c
}

package service

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"finfx_sdk/internal/modules/config"
)

const (
	// The backend signs JWTs with a 7 day lifetime and the login response
	// carries no expiry, so the client stamps it locally.
	tokenTTL = 7 * 24 * time.Hour

	// A token this close to expiry is re-issued instead of used.
	expiryMargin = 5 * time.Minute
)

// Client talks to the FinFX backend on behalf of an admin bot account.
// Authentication rewrites the in-memory token and the token file, so a Client
// is not safe for concurrent use without external locking.
type Client struct {
	cfg *config.Config
	log *zap.Logger

	http      *http.Client
	baseURL   string
	tokenFile string

	token          string
	tokenExpiresAt time.Time
}

// NewClient builds a client and restores a previously cached token if one is
// still usable. No network I/O happens here; authentication is deferred to
// the first request.
func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	c := &Client{
		cfg:       cfg,
		log:       log,
		http:      &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:   cfg.BaseURL,
		tokenFile: cfg.TokenFile,
	}
	c.loadToken()
	return c
}

// HasValidToken reports whether the in-memory token is usable, i.e. more than
// the expiry margin away from expiring.
func (c *Client) HasValidToken() bool {
	return c.token != "" && time.Until(c.tokenExpiresAt) > expiryMargin
}

package service

import (
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// tokenFile is the on-disk token cache: {"token": ..., "expires_at": RFC3339}.
type tokenFile struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// loadToken restores a cached token from disk. Anything unreadable, partial
// (a concurrent writer may have been interrupted mid-write) or already inside
// the expiry margin reads as "no cached token".
func (c *Client) loadToken() {
	raw, err := os.ReadFile(c.tokenFile)
	if err != nil {
		return
	}

	var tf tokenFile
	if err := sonic.Unmarshal(raw, &tf); err != nil {
		c.log.Warn("failed to load token from file", zap.Error(err))
		return
	}
	if tf.Token == "" || tf.ExpiresAt == "" {
		return
	}
	exp, err := time.Parse(time.RFC3339Nano, tf.ExpiresAt)
	if err != nil {
		c.log.Warn("failed to parse token expiry", zap.Error(err))
		return
	}
	if time.Until(exp) <= expiryMargin {
		c.log.Info("stored token has expired or will expire soon")
		return
	}

	c.token = tf.Token
	c.tokenExpiresAt = exp
	c.log.Info("loaded valid token from file")
}

func (c *Client) saveToken() error {
	raw, err := sonic.Marshal(tokenFile{
		Token:     c.token,
		ExpiresAt: c.tokenExpiresAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return errors.Wrap(err, "marshal token")
	}
	if err := os.WriteFile(c.tokenFile, raw, 0o600); err != nil {
		return errors.Wrap(err, "write token file")
	}
	return nil
}

func (c *Client) clearToken() {
	c.token = ""
	c.tokenExpiresAt = time.Time{}
}

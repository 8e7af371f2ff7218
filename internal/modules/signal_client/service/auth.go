package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Authenticate logs in with the admin credentials and persists the new token
// to the token file. A failed login is an error result: a persist failure is
// logged but does not fail the authentication.
func (c *Client) Authenticate(ctx context.Context) error {
	payload, err := sonic.Marshal(loginRequest{
		Email:    c.cfg.AdminEmail,
		Password: c.cfg.AdminPassword,
	})
	if err != nil {
		return errors.Wrap(err, "marshal login payload")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/auth/login",
		bytes.NewReader(payload),
	)
	if err != nil {
		return errors.Wrap(err, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Info("attempting to authenticate with backend")
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "login request")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var lr loginResponse
	if err := sonic.Unmarshal(body, &lr); err != nil {
		return errors.Wrap(err, "decode login response")
	}
	if lr.Token == "" {
		return &AuthError{Status: resp.StatusCode, Reason: "no token received from authentication"}
	}

	c.token = lr.Token
	c.tokenExpiresAt = time.Now().Add(tokenTTL)
	if err := c.saveToken(); err != nil {
		c.log.Error("failed to save token to file", zap.Error(err))
	} else {
		c.log.Info("token saved to file")
	}
	c.log.Info("authentication successful")
	return nil
}

// ensureAuthenticated is the sole gate before any authenticated call: a token
// beyond the expiry margin is reused, anything else forces a fresh login.
func (c *Client) ensureAuthenticated(ctx context.Context) error {
	if c.HasValidToken() {
		return nil
	}
	return c.Authenticate(ctx)
}

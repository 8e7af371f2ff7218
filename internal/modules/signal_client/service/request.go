package service

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// doRequest issues one authenticated call. A 401 clears the in-memory token
// and retries exactly once after a forced re-login; every other failure is
// final. There is no retry loop beyond the second attempt.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) (*Response, error) {
	var body []byte
	if payload != nil {
		raw, err := sonic.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "marshal payload")
		}
		body = raw
	}

	for attempt := 0; attempt < 2; attempt++ {
		if err := c.ensureAuthenticated(ctx); err != nil {
			return nil, err
		}

		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return nil, errors.Wrap(err, "build request")
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "%s %s", method, path)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, errors.Wrap(err, "read response")
		}

		switch {
		case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
			var out Response
			if err := sonic.Unmarshal(data, &out); err != nil {
				return nil, errors.Wrapf(err, "decode response: %s", string(data))
			}
			return &out, nil
		case resp.StatusCode == http.StatusUnauthorized && attempt == 0:
			c.log.Warn("token rejected, re-authenticating",
				zap.String("method", method),
				zap.String("path", path),
			)
			c.clearToken()
		default:
			return nil, &RequestError{Status: resp.StatusCode, Body: string(data)}
		}
	}

	// Not reached: the second pass always returns above.
	return nil, &RequestError{Status: http.StatusUnauthorized}
}

package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"finfx_sdk/internal/modules/config"
)

func writeTokenFile(t *testing.T, path, token string, expiresAt time.Time) {
	t.Helper()
	raw := fmt.Sprintf(`{"token":%q,"expires_at":%q}`, token, expiresAt.Format(time.RFC3339Nano))
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
}

func tokenTestClient(t *testing.T, tokenPath string) *Client {
	t.Helper()
	cfg := &config.Config{
		BaseURL:        "http://localhost:0",
		AdminEmail:     "admin@example.com",
		AdminPassword:  "secret",
		TokenFile:      tokenPath,
		RequestTimeout: 5 * time.Second,
	}
	return NewClient(cfg, zap.NewNop())
}

func TestLoadToken_ValidFileRestored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	exp := time.Now().Add(48 * time.Hour)
	writeTokenFile(t, path, "cached", exp)

	c := tokenTestClient(t, path)
	assert.True(t, c.HasValidToken())
	assert.Equal(t, "cached", c.token)
	assert.WithinDuration(t, exp, c.tokenExpiresAt, time.Second)
}

func TestLoadToken_InsideMarginDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	writeTokenFile(t, path, "cached", time.Now().Add(4*time.Minute))

	c := tokenTestClient(t, path)
	assert.False(t, c.HasValidToken())
	assert.Empty(t, c.token)
}

func TestLoadToken_ExpiredDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	writeTokenFile(t, path, "cached", time.Now().Add(-time.Hour))

	c := tokenTestClient(t, path)
	assert.False(t, c.HasValidToken())
}

func TestLoadToken_MissingFile(t *testing.T) {
	c := tokenTestClient(t, filepath.Join(t.TempDir(), "token.txt"))
	assert.False(t, c.HasValidToken())
}

func TestLoadToken_TruncatedFile(t *testing.T) {
	// A reader may catch another instance mid-write: partial JSON must read
	// as "no cached token", not an error.
	path := filepath.Join(t.TempDir(), "token.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"cach`), 0o600))

	c := tokenTestClient(t, path)
	assert.False(t, c.HasValidToken())
}

func TestLoadToken_EmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"","expires_at":""}`), 0o600))

	c := tokenTestClient(t, path)
	assert.False(t, c.HasValidToken())
}

func TestLoadToken_BadExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"cached","expires_at":"yesterday"}`), 0o600))

	c := tokenTestClient(t, path)
	assert.False(t, c.HasValidToken())
}

func TestSaveToken_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")

	c := tokenTestClient(t, path)
	c.token = "fresh"
	c.tokenExpiresAt = time.Now().Add(tokenTTL)
	require.NoError(t, c.saveToken())

	c2 := tokenTestClient(t, path)
	assert.Equal(t, "fresh", c2.token)
	assert.True(t, c2.tokenExpiresAt.Equal(c.tokenExpiresAt))
}

func TestSaveToken_UnwritablePath(t *testing.T) {
	c := tokenTestClient(t, filepath.Join(t.TempDir(), "missing", "token.txt"))
	c.token = "fresh"
	c.tokenExpiresAt = time.Now().Add(tokenTTL)
	assert.Error(t, c.saveToken())
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"finfx_sdk/internal/modules/config"
	"finfx_sdk/internal/modules/signal_client/service"
)

var failed bool

func check(ok bool, format string, args ...any) {
	mark := "✅"
	if !ok {
		mark = "❌"
		failed = true
	}
	fmt.Printf("%s %s\n", mark, fmt.Sprintf(format, args...))
}

// stubBackend is an in-memory FinFX backend so the whole client can be
// exercised without a running server.
type stubBackend struct {
	loginCalls  int
	signalCalls int
	rejectOnce  bool

	token   string
	signals map[string]string
	nextID  int
}

func (b *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.loginCalls++
		b.token = "stub-token-" + strconv.Itoa(b.loginCalls)
		fmt.Fprintf(w, `{"token":%q}`, b.token)
	})

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			b.signalCalls++
			if b.rejectOnce {
				b.rejectOnce = false
				http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
				return
			}
			if r.Header.Get("Authorization") != "Bearer "+b.token {
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /api/signals", authed(func(w http.ResponseWriter, r *http.Request) {
		b.nextID++
		id := strconv.Itoa(b.nextID)
		var body map[string]any
		_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body)
		raw, _ := sonic.MarshalString(body)
		b.signals[id] = raw
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"status":"success","data":{"id":%q}}`, id)
	}))

	mux.HandleFunc("GET /api/signals/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := b.signals[r.PathValue("id")]
		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"status":"success","data":%s}`, raw)
	}))

	mux.HandleFunc("PUT /api/signals/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := b.signals[id]; !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		var body map[string]any
		_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body)
		raw, _ := sonic.MarshalString(body)
		b.signals[id] = raw
		fmt.Fprintf(w, `{"status":"success","data":{"id":%q}}`, id)
	}))

	mux.HandleFunc("GET /api/signals", authed(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status":"success","data":{"count":%d}}`, len(b.signals))
	}))

	mux.HandleFunc("POST /api/signals/bulk", authed(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			BotID   string           `json:"botId"`
			Signals []map[string]any `json:"signals"`
		}
		_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"status":"success","data":{"created":%d}}`, len(body.Signals))
	}))

	return mux
}

func main() {
	fmt.Println("FinFX Go SDK offline verification")
	fmt.Println(strings.Repeat("=", 40))

	dir, err := os.MkdirTemp("", "finfx-verify")
	if err != nil {
		fmt.Println("temp dir:", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)
	tokenPath := filepath.Join(dir, "token.txt")

	backend := &stubBackend{signals: map[string]string{}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	// Environment handling
	fmt.Println("\n-- environment handling")
	os.Setenv("FINFX_BACKEND_URL", srv.URL)
	os.Setenv("FINFX_ADMIN_EMAIL", "admin@example.com")
	os.Setenv("FINFX_ADMIN_PASSWORD", "test_password")
	os.Setenv("FINFX_TOKEN_FILE", tokenPath)

	cfg, err := config.NewConfig()
	check(err == nil, "config loaded, backend %s", srv.URL)

	os.Unsetenv("FINFX_ADMIN_EMAIL")
	_, err = config.NewConfig()
	var missing *config.MissingEnvError
	check(errors.As(err, &missing), "missing FINFX_ADMIN_EMAIL rejected: %v", err)
	os.Setenv("FINFX_ADMIN_EMAIL", "admin@example.com")
	cfg, _ = config.NewConfig()

	// Token management
	fmt.Println("\n-- token management")
	log := zap.NewNop()

	stored := fmt.Sprintf(`{"token":"cached","expires_at":%q}`,
		time.Now().Add(7*24*time.Hour).Format(time.RFC3339Nano))
	_ = os.WriteFile(tokenPath, []byte(stored), 0o600)
	check(service.NewClient(cfg, log).HasValidToken(), "valid stored token is reused")

	stale := fmt.Sprintf(`{"token":"cached","expires_at":%q}`,
		time.Now().Add(time.Minute).Format(time.RFC3339Nano))
	_ = os.WriteFile(tokenPath, []byte(stale), 0o600)
	check(!service.NewClient(cfg, log).HasValidToken(), "token inside expiry margin is discarded")

	_ = os.WriteFile(tokenPath, []byte(`{"token":"cach`), 0o600)
	check(!service.NewClient(cfg, log).HasValidToken(), "truncated token file reads as no token")
	_ = os.Remove(tokenPath)

	// Local validation, no backend traffic
	fmt.Println("\n-- validation")
	client := service.NewClient(cfg, log)
	ctx := context.Background()

	var verr *service.ValidationError
	_, err = client.AddSignal(ctx, service.Signal{
		EntryTime: "2024-01-15T10:30:00Z", EntryPrice: 50000, Direction: "buy",
		UserID: "u1", LotSize: 1, PairName: "BTC/USDT",
	})
	check(errors.As(err, &verr), "direction buy rejected: %v", err)

	_, err = client.AddSignal(ctx, service.Signal{
		EntryTime: "2024-01-15T10:30:00Z", EntryPrice: 50000, Direction: "long",
		UserID: "u1", LotSize: 0.05, PairName: "BTC/USDT",
	})
	check(errors.As(err, &verr), "lot size 0.05 rejected: %v", err)

	_, err = client.UpdateSignal(ctx, "", service.SignalUpdate{})
	check(errors.As(err, &verr), "update without id rejected: %v", err)

	_, err = client.AddBulkSignals(ctx, "bot1", nil)
	check(errors.As(err, &verr), "empty bulk batch rejected: %v", err)
	check(backend.signalCalls == 0, "no network traffic for rejected requests (calls=%d)", backend.signalCalls)

	// Full round trip against the stub backend
	fmt.Println("\n-- round trip")
	res, err := client.AddSignal(ctx, service.Signal{
		EntryTime: "2024-01-15T10:30:00Z", EntryPrice: 50000, Direction: "long",
		UserID: "507f1f77bcf86cd799439011", LotSize: 1, PairName: "BTC/USDT",
	})
	check(err == nil, "signal created")
	id := ""
	if err == nil {
		id, err = res.SignalID()
		check(err == nil, "created signal has id %s", id)
	}
	check(backend.loginCalls == 1, "exactly one login so far (got %d)", backend.loginCalls)

	if id != "" {
		got, err := client.GetSignal(ctx, id)
		check(err == nil && strings.Contains(string(got.Data), `"LONG"`),
			"signal fetched back with uppercase direction")

		d := "Short"
		_, err = client.UpdateSignal(ctx, id, service.SignalUpdate{Direction: &d})
		check(err == nil, "signal updated")

		got, err = client.GetSignal(ctx, id)
		check(err == nil && strings.Contains(string(got.Data), `"SHORT"`),
			"update normalized direction to SHORT")
	}

	_, err = client.AddBulkSignals(ctx, "686d3f381d179df0fd5e5480", []service.Signal{
		{EntryTime: "2024-01-15T10:30:00Z", EntryPrice: 50000, Direction: "long", PairName: "BTC/USDT"},
		{EntryTime: "2024-01-15T10:31:00Z", EntryPrice: 3000, Direction: "short", PairName: "ETH/USDT"},
	})
	check(err == nil, "bulk batch accepted")

	// Forced 401: exactly one re-login and one retry
	fmt.Println("\n-- retry on 401")
	logins := backend.loginCalls
	calls := backend.signalCalls
	backend.rejectOnce = true
	_, err = client.GetAllSignals(ctx)
	check(err == nil, "call recovered after token rejection")
	check(backend.loginCalls == logins+1, "exactly one re-login (got %d)", backend.loginCalls-logins)
	check(backend.signalCalls == calls+2, "exactly one retried call (got %d)", backend.signalCalls-calls)

	fmt.Println()
	if failed {
		fmt.Println("verification FAILED")
		os.Exit(1)
	}
	fmt.Println("verification complete")
}

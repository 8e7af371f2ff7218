package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"finfx_sdk/internal/modules/config"
	signalclient "finfx_sdk/internal/modules/signal_client"
	"finfx_sdk/internal/modules/signal_client/service"
	"finfx_sdk/internal/notify"
	"finfx_sdk/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newNotifier(cfg *config.Config) notify.Notifier {
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		t, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err == nil {
			return t
		}
		logger.Error("telegram notifier unavailable: %v", err)
	}
	return notify.NewStdout()
}

// run walks a signal through its lifecycle: create, fetch back, close out
// with a partial update.
func run(ctx context.Context, c *service.Client, n notify.Notifier) error {
	stopLoss := 48000.0
	target := 52000.0

	res, err := c.AddSignal(ctx, service.Signal{
		EntryTime:     time.Now().UTC().Format(time.RFC3339),
		EntryPrice:    50000.0,
		Direction:     "long",
		UserID:        "507f1f77bcf86cd799439011",
		LotSize:       1.0,
		PairName:      "BTC/USDT",
		StopLossPrice: &stopLoss,
		TargetPrice:   &target,
	})
	if err != nil {
		return fmt.Errorf("add signal: %w", err)
	}
	id, err := res.SignalID()
	if err != nil {
		return fmt.Errorf("add signal: %w", err)
	}
	n.Sendf("new signal created with id %s", id)

	got, err := c.GetSignal(ctx, id)
	if err != nil {
		return fmt.Errorf("get signal %s: %w", id, err)
	}
	fmt.Printf("signal fetched: %s\n", string(got.Data))

	direction := "short"
	exitTime := time.Now().UTC().Format(time.RFC3339)
	exitPrice := 51000.0
	if _, err := c.UpdateSignal(ctx, id, service.SignalUpdate{
		Direction: &direction,
		ExitTime:  &exitTime,
		ExitPrice: &exitPrice,
	}); err != nil {
		return fmt.Errorf("update signal %s: %w", id, err)
	}
	n.Sendf("signal %s updated", id)

	return nil
}

func main() {
	zl, err := logger.Init()
	if err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("finfx-demo")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
			func() *zap.Logger { return zl },
			newNotifier,
		),
		config.Module(),
		signalclient.Module(),
		fx.Invoke(run),
	)
	if err := app.Start(context.Background()); err != nil {
		logger.Fatal("demo failed: %v", err)
	}
	_ = app.Stop(context.Background())
}

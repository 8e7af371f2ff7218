package service

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// AddSignal validates and creates a signal. The direction is transmitted
// uppercase whatever the input casing; a validation failure performs no
// network I/O.
func (c *Client) AddSignal(ctx context.Context, signal Signal) (*Response, error) {
	if err := validateSignal(signal); err != nil {
		c.log.Error("signal rejected", zap.Error(err))
		return nil, err
	}
	signal.Direction, _ = normalizeDirection(signal.Direction)

	c.log.Info("adding signal",
		zap.String("direction", signal.Direction),
		zap.String("pair", signal.PairName),
	)
	return c.doRequest(ctx, http.MethodPost, "/api/signals", signal)
}

// UpdateSignal applies a partial update. Direction and lot size are validated
// only when present, with the same rules as AddSignal.
func (c *Client) UpdateSignal(ctx context.Context, id string, update SignalUpdate) (*Response, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Reason: "signal id is required for update"}
	}
	if err := validateUpdate(update); err != nil {
		c.log.Error("signal update rejected", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if update.Direction != nil {
		d, _ := normalizeDirection(*update.Direction)
		update.Direction = &d
	}

	c.log.Info("updating signal", zap.String("id", id))
	return c.doRequest(ctx, http.MethodPut, "/api/signals/"+id, update)
}

// GetSignal fetches one signal by id.
func (c *Client) GetSignal(ctx context.Context, id string) (*Response, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Reason: "signal id is required"}
	}
	c.log.Info("getting signal", zap.String("id", id))
	return c.doRequest(ctx, http.MethodGet, "/api/signals/"+id, nil)
}

// GetAllSignals lists every signal visible to the admin account.
func (c *Client) GetAllSignals(ctx context.Context) (*Response, error) {
	c.log.Info("getting all signals")
	return c.doRequest(ctx, http.MethodGet, "/api/signals", nil)
}

// AddBulkSignals submits a batch of signals under one bot id. The whole batch
// is rejected if any entry fails validation; the caller's slice is not
// mutated, directions are uppercased on a copy.
func (c *Client) AddBulkSignals(ctx context.Context, botID string, signals []Signal) (*Response, error) {
	if botID == "" {
		return nil, &ValidationError{Field: "botId", Reason: "bot id is required for bulk signals"}
	}
	if len(signals) == 0 {
		return nil, &ValidationError{Field: "signals", Reason: "signals must be a non-empty list"}
	}

	out := make([]Signal, len(signals))
	copy(out, signals)
	for i := range out {
		if err := validateBulkEntry(i, out[i]); err != nil {
			c.log.Error("bulk batch rejected", zap.Error(err))
			return nil, err
		}
		out[i].Direction, _ = normalizeDirection(out[i].Direction)
	}

	c.log.Info("adding signals in bulk",
		zap.Int("count", len(out)),
		zap.String("botId", botID),
	)
	return c.doRequest(ctx, http.MethodPost, "/api/signals/bulk", bulkRequest{BotID: botID, Signals: out})
}

package service

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// Trade directions as the backend expects them on the wire.
const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"
)

// Signal is a trading-intent record owned by the backend. Optional numeric
// fields are pointers so zero values are not transmitted.
type Signal struct {
	EntryTime  string  `json:"entryTime"`
	EntryPrice float64 `json:"entryPrice"`
	Direction  string  `json:"direction"`
	UserID     string  `json:"userId,omitempty"`
	LotSize    float64 `json:"lotSize,omitempty"`
	PairName   string  `json:"pairName"`

	BotID         string   `json:"botId,omitempty"`
	StopLossPrice *float64 `json:"stopLossPrice,omitempty"`
	TargetPrice   *float64 `json:"targetPrice,omitempty"`
	TradeID       string   `json:"tradeId,omitempty"`
	SignalTime    string   `json:"signalTime,omitempty"`
	Stoploss      *float64 `json:"stoploss,omitempty"`
	Target1R      *float64 `json:"target1r,omitempty"`
	Target2R      *float64 `json:"target2r,omitempty"`
	ExitTime      string   `json:"exitTime,omitempty"`
	ExitPrice     *float64 `json:"exitPrice,omitempty"`
}

// SignalUpdate is a partial update; nil fields are left untouched by the
// backend.
type SignalUpdate struct {
	EntryTime  *string  `json:"entryTime,omitempty"`
	EntryPrice *float64 `json:"entryPrice,omitempty"`
	Direction  *string  `json:"direction,omitempty"`
	UserID     *string  `json:"userId,omitempty"`
	LotSize    *float64 `json:"lotSize,omitempty"`
	PairName   *string  `json:"pairName,omitempty"`

	BotID         *string  `json:"botId,omitempty"`
	StopLossPrice *float64 `json:"stopLossPrice,omitempty"`
	TargetPrice   *float64 `json:"targetPrice,omitempty"`
	TradeID       *string  `json:"tradeId,omitempty"`
	SignalTime    *string  `json:"signalTime,omitempty"`
	Stoploss      *float64 `json:"stoploss,omitempty"`
	Target1R      *float64 `json:"target1r,omitempty"`
	Target2R      *float64 `json:"target2r,omitempty"`
	ExitTime      *string  `json:"exitTime,omitempty"`
	ExitPrice     *float64 `json:"exitPrice,omitempty"`
}

// Response is the backend envelope. Data stays raw: the backend owns the
// signal schema, the client does not reinterpret it.
type Response struct {
	Status  string          `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SignalID extracts data.id from a create/get response.
func (r *Response) SignalID() (string, error) {
	if len(r.Data) == 0 {
		return "", fmt.Errorf("response has no data")
	}
	var d struct {
		ID string `json:"id"`
	}
	if err := sonic.Unmarshal(r.Data, &d); err != nil {
		return "", fmt.Errorf("decode response data: %w", err)
	}
	if d.ID == "" {
		return "", fmt.Errorf("response data has no id")
	}
	return d.ID, nil
}

type bulkRequest struct {
	BotID   string   `json:"botId"`
	Signals []Signal `json:"signals"`
}

package service

import (
	"fmt"
	"strings"
)

// Backend minimum lot size for a single signal.
const minLotSize = 0.1

// normalizeDirection maps any casing of long/short to the wire form.
func normalizeDirection(d string) (string, bool) {
	switch strings.ToLower(d) {
	case "long":
		return DirectionLong, true
	case "short":
		return DirectionShort, true
	default:
		return "", false
	}
}

func validateSignal(s Signal) error {
	switch {
	case s.EntryTime == "":
		return &ValidationError{Field: "entryTime", Reason: "missing required field"}
	case s.EntryPrice == 0:
		return &ValidationError{Field: "entryPrice", Reason: "missing required field"}
	case s.Direction == "":
		return &ValidationError{Field: "direction", Reason: "missing required field"}
	case s.UserID == "":
		return &ValidationError{Field: "userId", Reason: "missing required field"}
	case s.LotSize == 0:
		return &ValidationError{Field: "lotSize", Reason: "missing required field"}
	case s.PairName == "":
		return &ValidationError{Field: "pairName", Reason: "missing required field"}
	}

	if _, ok := normalizeDirection(s.Direction); !ok {
		return &ValidationError{
			Field:  "direction",
			Reason: fmt.Sprintf("invalid direction %q, must be long or short", s.Direction),
		}
	}
	if s.LotSize < minLotSize {
		return &ValidationError{
			Field:  "lotSize",
			Reason: fmt.Sprintf("must be at least %g, got %g", minLotSize, s.LotSize),
		}
	}
	return nil
}

func validateUpdate(u SignalUpdate) error {
	if u.Direction != nil {
		if _, ok := normalizeDirection(*u.Direction); !ok {
			return &ValidationError{
				Field:  "direction",
				Reason: fmt.Sprintf("invalid direction %q, must be long or short", *u.Direction),
			}
		}
	}
	if u.LotSize != nil && *u.LotSize < minLotSize {
		return &ValidationError{
			Field:  "lotSize",
			Reason: fmt.Sprintf("must be at least %g, got %g", minLotSize, *u.LotSize),
		}
	}
	return nil
}

// validateBulkEntry checks a single batch entry. userId and lotSize are left
// to the backend for bulk submissions.
func validateBulkEntry(i int, s Signal) error {
	field := func(name string) string { return fmt.Sprintf("signals[%d].%s", i, name) }

	switch {
	case s.EntryTime == "":
		return &ValidationError{Field: field("entryTime"), Reason: "missing required field"}
	case s.EntryPrice == 0:
		return &ValidationError{Field: field("entryPrice"), Reason: "missing required field"}
	case s.Direction == "":
		return &ValidationError{Field: field("direction"), Reason: "missing required field"}
	case s.PairName == "":
		return &ValidationError{Field: field("pairName"), Reason: "missing required field"}
	}

	if _, ok := normalizeDirection(s.Direction); !ok {
		return &ValidationError{
			Field:  field("direction"),
			Reason: fmt.Sprintf("invalid direction %q, must be long or short", s.Direction),
		}
	}
	return nil
}

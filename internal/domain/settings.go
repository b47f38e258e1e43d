package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinHistory     = 10
	MaxHistory     = 500
	DefaultHistory = 50
)

// Settings holds the user-adjustable knobs of the history log.
type Settings struct {
	MaxHistory int `json:"maxHistory"`
}

// DefaultSettings returns the settings used when nothing valid is stored.
func DefaultSettings() Settings {
	return Settings{MaxHistory: DefaultHistory}
}

// Validate rejects a MaxHistory outside [MinHistory, MaxHistory].
func (s Settings) Validate() error {
	if s.MaxHistory < MinHistory || s.MaxHistory > MaxHistory {
		return fmt.Errorf("%w: maxHistory=%d, want %d..%d", ErrOutOfRange, s.MaxHistory, MinHistory, MaxHistory)
	}
	return nil
}

// Clamp forces MaxHistory into range. Used on the read path so a tampered
// stored value is never trusted as is.
func (s Settings) Clamp() Settings {
	switch {
	case s.MaxHistory < MinHistory:
		s.MaxHistory = MinHistory
	case s.MaxHistory > MaxHistory:
		s.MaxHistory = MaxHistory
	}
	return s
}

// ParseMaxHistory turns user input into an integer capacity.
// Accepted: Go integer kinds, json.Number and floats with no fractional part,
// and strings holding a base-10 integer. Anything else is ErrNotInteger.
func ParseMaxHistory(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return intFromInt64(n)
	case uint:
		return intFromUint64(uint64(n))
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return intFromUint64(uint64(n))
	case uint64:
		return intFromUint64(n)
	case float32:
		return intFromFloat(float64(n))
	case float64:
		return intFromFloat(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return intFromInt64(i)
		}
		if f, err := n.Float64(); err == nil {
			return intFromFloat(f)
		}
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, n.String())
	case string:
		return parseIntString(n)
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotInteger, v)
	}
}

func parseIntString(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return i, nil
}

func intFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, f)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, f)
	}
	return int(f), nil
}

func intFromInt64(n int64) (int, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return int(n), nil
}

func intFromUint64(n uint64) (int, error) {
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return int(n), nil
}

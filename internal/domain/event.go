package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// eventClock stamps ConversionEvent.ConvertedAt.
var eventClock = clockwork.NewRealClock()

// SetClock replaces the event clock; nil restores the real one.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	eventClock = c
}

// ConversionEvent records a completed conversion for the audit stream.
type ConversionEvent struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	FromUnit    string    `json:"from_unit"`
	ToUnit      string    `json:"to_unit"`
	Value       float64   `json:"value"`
	Converted   float64   `json:"converted"`
	Result      string    `json:"result"`
	ConvertedAt time.Time `json:"converted_at"`
}

// NewConversionEvent stamps a result with the current time and a
// deterministic ID.
func NewConversionEvent(r Result) ConversionEvent {
	now := eventClock.Now().UTC()
	return ConversionEvent{
		ID:          generateID(r.Category, r.FromUnit, r.ToUnit, r.Value, now),
		Category:    r.Category,
		FromUnit:    r.FromUnit,
		ToUnit:      r.ToUnit,
		Value:       r.Value,
		Converted:   r.Converted,
		Result:      r.Text,
		ConvertedAt: now,
	}
}

// generateID hashes the event's key fields. Replaying the same conversion at
// the same instant yields the same ID, so consumers can deduplicate.
func generateID(category Category, from, to string, value float64, at time.Time) string {
	input := fmt.Sprintf("%s|%s|%s|%g|%s", category, from, to, value, at.Format(time.RFC3339Nano))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if category == "" {
		return short
	}
	return string(category) + "-" + short
}

// Package format holds the pure display helpers for metric cards: bounded
// precision numbers, explicit-sign deltas and presence labels.
package format

import (
	"fmt"
	"strconv"

	"github.com/frakneable/cursotiaor/internal/sensor"
)

// Placeholder stands in for any value without a valid reading.
const Placeholder = "—"

// Presence display labels.
const (
	LabelPresent = "Presente"
	LabelAbsent  = "Ausente"
)

// Number renders an optional value with fixed precision, or the placeholder
// when there is no reading.
func Number(value *float64, precision int) string {
	if value == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*value, 'f', precision, 64)
}

// Delta renders the signed difference between the latest and previous
// readings. It returns the empty string when either side is missing, which
// callers treat as "no delta to show".
func Delta(latest, previous *float64, precision int) string {
	if latest == nil || previous == nil {
		return ""
	}
	return fmt.Sprintf("%+.*f", precision, *latest-*previous)
}

// PresenceFlag interprets a binary nutrient value: 1 is present, 0 is
// absent, anything else (including no reading) is unknown.
func PresenceFlag(value *int) sensor.Presence {
	if value == nil {
		return sensor.PresenceUnknown
	}
	switch *value {
	case 1:
		return sensor.PresencePresent
	case 0:
		return sensor.PresenceAbsent
	}
	return sensor.PresenceUnknown
}

// Presence renders a binary nutrient value as a display label.
func Presence(value *int) string {
	switch PresenceFlag(value) {
	case sensor.PresencePresent:
		return LabelPresent
	case sensor.PresenceAbsent:
		return LabelAbsent
	}
	return Placeholder
}

package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/frakneable/cursotiaor/internal/sensor"
)

func TestCanonicalNameIdempotent(t *testing.T) {
	inputs := []string{
		"  Humidity (%)  ",
		"Soil Temperature (C)",
		"PUMP__STATUS",
		"pH",
		"Rain Probability %",
		"__weird--name__",
		"already_canonical",
		"",
	}
	for _, in := range inputs {
		once := CanonicalName(in)
		require.Equal(t, once, CanonicalName(once), "input %q", in)
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Humidity (%)", "humidity_pct"},
		{"Soil Temperature (C)", "soil_temperature_c"},
		{"  Pump Status  ", "pump_status"},
		{"Rain Probability %", "rain_probability_pct"},
		{"pH", "ph"},
		{"RecordDate", "recorddate"},
		{"a--b..c", "a_b_c"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, CanonicalName(tt.in))
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	table := Normalize(nil)
	require.NotNil(t, table)
	require.Empty(t, table)

	table = Normalize([]sensor.RawRow{})
	require.Empty(t, table)
}

func TestNormalizeAliasesAndCoercion(t *testing.T) {
	rows := []sensor.RawRow{
		{
			"Humidity (%)":  "45.5",
			"pH":            6.1,
			"Phosphorus_P":  1,
			"Nitrogen_N":    "0",
			"Potassium_K":   2, // not exactly 0/1 -> unknown
			"Pump_Status":   " on ",
			"Soil Temperature (C)": "27.4",
			"Rain Probability %":   70,
			"plot":          "A1",
		},
	}

	table := Normalize(rows)
	require.Len(t, table, 1)
	r := table[0]

	require.NotNil(t, r.Humidity)
	require.InDelta(t, 45.5, *r.Humidity, 1e-9)
	require.NotNil(t, r.PH)
	require.InDelta(t, 6.1, *r.PH, 1e-9)
	require.NotNil(t, r.Temperature)
	require.InDelta(t, 27.4, *r.Temperature, 1e-9)
	require.NotNil(t, r.RainProbability)
	require.InDelta(t, 70, *r.RainProbability, 1e-9)

	require.NotNil(t, r.Phosphorus)
	require.Equal(t, 1, *r.Phosphorus)
	require.NotNil(t, r.Nitrogen)
	require.Equal(t, 0, *r.Nitrogen)
	require.Nil(t, r.Potassium)

	require.Equal(t, "ON", r.IrrigationStatus)
	require.True(t, r.IrrigationOn)

	// Unmapped canonical columns pass through untouched.
	require.Equal(t, "A1", r.Extra["plot"])
}

func TestNormalizeUnparsableNumbersBecomeUnknown(t *testing.T) {
	rows := []sensor.RawRow{
		{"humidity": "n/a", "ph": nil, "temperature_c": struct{}{}},
	}
	table := Normalize(rows)
	require.Len(t, table, 1)
	require.Nil(t, table[0].Humidity)
	require.Nil(t, table[0].PH)
	require.Nil(t, table[0].Temperature)
}

func TestNormalizeDayFirstTimestamps(t *testing.T) {
	rows := []sensor.RawRow{
		{"Date": "26/12/2025", "Time": "08:00:00", "humidity": 50},
		{"Date": "25/12/2025", "Time": "14:30:00", "humidity": 48},
		{"Date": "not-a-date", "Time": "09:00:00", "humidity": 49},
	}

	table := Normalize(rows)
	require.Len(t, table, 2, "unparsable timestamp row must be dropped")

	// Sorted ascending; 25/12 can only be day-first.
	require.Equal(t, time.Date(2025, 12, 25, 14, 30, 0, 0, time.UTC), *table[0].Timestamp)
	require.Equal(t, time.Date(2025, 12, 26, 8, 0, 0, 0, time.UTC), *table[1].Timestamp)
}

func TestNormalizeMonthFirstTimestamps(t *testing.T) {
	rows := []sensor.RawRow{
		{"RecordDate": "12/25/2025", "Time": "10:00:00", "pump": "OFF"},
		{"RecordDate": "12/24/2025", "Time": "10:00:00", "pump": "ON"},
	}

	table := Normalize(rows)
	require.Len(t, table, 2)
	require.Equal(t, time.Date(2025, 12, 24, 10, 0, 0, 0, time.UTC), *table[0].Timestamp)
	require.Equal(t, "ON", table[0].IrrigationStatus)
	require.Equal(t, time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC), *table[1].Timestamp)
}

func TestNormalizeFractionalSecondTimestamps(t *testing.T) {
	rows := []sensor.RawRow{
		{"Date": "25/12/2025", "Time": "14:30:00.250", "humidity": 48},
		{"Date": "2025-12-26", "Time": "08:00:00.5", "humidity": 50},
		{"Date": "2025-12-26", "Time": "09:00:00", "humidity": 51},
	}

	table := Normalize(rows)
	require.Len(t, table, 3, "sub-second clock values must not drop the row")

	require.Equal(t, time.Date(2025, 12, 25, 14, 30, 0, 250_000_000, time.UTC), *table[0].Timestamp)
	require.Equal(t, time.Date(2025, 12, 26, 8, 0, 0, 500_000_000, time.UTC), *table[1].Timestamp)
	require.Equal(t, time.Date(2025, 12, 26, 9, 0, 0, 0, time.UTC), *table[2].Timestamp)
}

func TestNormalizeWithoutTimestampPairKeepsOrder(t *testing.T) {
	rows := []sensor.RawRow{
		{"humidity": 60},
		{"humidity": 40},
		{"humidity": 50},
	}

	table := Normalize(rows)
	require.Len(t, table, 3)
	require.Nil(t, table[0].Timestamp)
	require.InDelta(t, 60, *table[0].Humidity, 1e-9)
	require.InDelta(t, 40, *table[1].Humidity, 1e-9)
	require.InDelta(t, 50, *table[2].Humidity, 1e-9)
}

func TestNormalizeDeterministic(t *testing.T) {
	rows := []sensor.RawRow{
		{"Date": "25/12/2025", "Time": "14:30:00", "Humidity (%)": "48.2", "Phosphorus_P": 1},
		{"Date": "25/12/2025", "Time": "15:30:00", "Humidity (%)": "47.9", "Phosphorus_P": 0},
	}

	first := Normalize(rows)
	second := Normalize(rows)
	require.Equal(t, first, second)
}

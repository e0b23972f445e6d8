package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Structural misuse is rejected before any connection is touched, so a zero
// Source is enough to exercise the validation paths.
func TestFetchRowsRejectsInvalidIdentifiers(t *testing.T) {
	source := &Source{}
	ctx := context.Background()

	for _, table := range []string{"", "sensor data", "sensors;drop", "café", "a'b"} {
		_, err := source.FetchRows(ctx, table, 10)
		require.ErrorIs(t, err, ErrInvalidIdentifier, "table %q", table)
	}

	for _, table := range []string{"SENSOR_DATA", "app.sensor_data", "T$1"} {
		_, err := source.FetchRows(ctx, table, 0)
		require.NotErrorIs(t, err, ErrInvalidIdentifier, "table %q", table)
	}
}

func TestFetchRowsRejectsNonPositiveLimit(t *testing.T) {
	source := &Source{}
	ctx := context.Background()

	for _, limit := range []int{0, -1, -300} {
		_, err := source.FetchRows(ctx, "SENSOR_DATA", limit)
		require.ErrorIs(t, err, ErrInvalidLimit, "limit %d", limit)
	}
}

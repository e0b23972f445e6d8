// Package db implements the data-source collaborator: raw row retrieval from
// Postgres plus a TTL memoization layer over it.
package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frakneable/cursotiaor/internal/sensor"
)

// ErrSourceUnavailable marks total fetch failure (connectivity, bad query),
// as opposed to a query that legitimately returned zero rows.
var ErrSourceUnavailable = errors.New("sensor source unavailable")

// ErrInvalidIdentifier rejects table names outside [A-Za-z0-9_$.] before any
// query is built. Table names cannot be bound as parameters, so this is the
// safety gate for the dynamic SELECT below.
var ErrInvalidIdentifier = errors.New("table name contains invalid characters")

// ErrInvalidLimit rejects non-positive row limits before any fetch.
var ErrInvalidLimit = errors.New("limit must be greater than zero")

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_$.]+$`)

// Source reads raw sensor rows from Postgres.
type Source struct {
	pool *pgxpool.Pool
}

// New creates a Source backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Source, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return &Source{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Source) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// FetchRows returns up to limit rows of the named table as column-keyed
// maps. The table's schema is unknown in advance; columns come from the
// result's field descriptions.
func (s *Source) FetchRows(ctx context.Context, table string, limit int) ([]sensor.RawRow, error) {
	if table == "" || !identifierPattern.MatchString(table) {
		return nil, ErrInvalidIdentifier
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT $1", table), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]sensor.RawRow, 0, limit)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		row := make(sensor.RawRow, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return out, nil
}

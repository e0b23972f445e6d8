// Command loader bulk-inserts a headered CSV of sensor readings into the
// configured Postgres table. It exists to seed and replay the sensor data
// the dashboard reads; the dashboard itself never writes.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/frakneable/cursotiaor/internal/log"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_$.]+$`)

func main() {
	if err := run(); err != nil {
		log.Fatalf("loader failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	var (
		file   = flag.String("file", "", "path to the CSV file to load")
		table  = flag.String("table", envOr("SENSOR_TABLE", "SENSOR_DATA"), "destination table")
		dryRun = flag.Bool("dry-run", false, "parse and report without inserting")
		debug  = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		return err
	}
	defer log.Sync()

	if *file == "" {
		return errors.New("-file is required")
	}
	if !identifierPattern.MatchString(*table) {
		return fmt.Errorf("invalid table name: %s", *table)
	}

	columns, records, err := readCSV(*file)
	if err != nil {
		return err
	}
	log.Infof("parsed %d rows (%d columns) from %s", len(records), len(columns), *file)

	if *dryRun {
		log.Infof("dry-run: skipping insert of %d rows into %s", len(records), *table)
		return nil
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := insertRecords(ctx, pool, *table, columns, records); err != nil {
		return err
	}

	log.Infof("inserted %d rows into %s", len(records), *table)
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// readCSV returns the header columns and the data records. Header names must
// be valid identifiers since they become the insert column list.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("csv file is empty")
	}

	columns := rows[0]
	for i, col := range columns {
		columns[i] = strings.TrimSpace(col)
		if !identifierPattern.MatchString(columns[i]) {
			return nil, nil, fmt.Errorf("invalid column name: %q", col)
		}
	}
	return columns, rows[1:], nil
}

// insertRecords batches one INSERT per record. Empty CSV cells become NULLs
// so the normalizer downstream sees them as missing, not as zero.
func insertRecords(ctx context.Context, pool *pgxpool.Pool, table string, columns []string, records [][]string) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	batch := &pgx.Batch{}
	for _, record := range records {
		if len(record) != len(columns) {
			return fmt.Errorf("row has %d values, expected %d", len(record), len(columns))
		}
		args := make([]any, len(record))
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				args[i] = nil
				continue
			}
			args[i] = cell
		}
		batch.Queue(query, args...)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range records {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}
	return nil
}

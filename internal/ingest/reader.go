// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	// DuckDB driver - reads the CSV exports through read_csv
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/northstar/internal/metrics"
)

// ReaderConfig tunes the in-memory DuckDB instance used for reading.
type ReaderConfig struct {
	// Threads caps DuckDB worker threads; 0 keeps the DuckDB default
	Threads int

	// MemoryLimit is a DuckDB size string such as "2GB"; empty keeps the default
	MemoryLimit string
}

// Reader loads CSV input tables through an in-memory DuckDB connection.
type Reader struct {
	db *sql.DB
}

// NewReader opens an in-memory DuckDB connection.
func NewReader(ctx context.Context, cfg ReaderConfig) (*Reader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	if err := configure(ctx, db, cfg); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on error path
		return nil, err
	}

	return &Reader{db: db}, nil
}

func configure(ctx context.Context, db *sql.DB, cfg ReaderConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if cfg.Threads > 0 {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("SET threads = %d", cfg.Threads)); err != nil {
			return fmt.Errorf("set threads: %w", err)
		}
	}
	if cfg.MemoryLimit != "" {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("SET memory_limit = %s", quoteLiteral(cfg.MemoryLimit))); err != nil {
			return fmt.Errorf("set memory_limit: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// CheckInput verifies that an input file exists and is a regular file.
func CheckInput(table, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: %s: no path configured", ErrInputMissing, table)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %s does not exist", ErrInputMissing, table, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrInputMissing, table, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s: %s is a directory", ErrInputMissing, table, path)
	}
	return nil
}

// ReadTable reads a CSV file with a header row. Every column is read as text;
// empty cells are returned as absent values. Missing required columns fail
// the read with ErrMissingColumn.
func (r *Reader) ReadTable(ctx context.Context, name, path string, required []string) (*Table, error) {
	if err := CheckInput(name, path); err != nil {
		return nil, err
	}

	start := time.Now()
	table, err := r.readCSV(ctx, name, path)
	metrics.RecordDBQuery("read_csv", name, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := table.Require(required...); err != nil {
		return nil, err
	}

	metrics.RecordInputRows(name, table.Len())
	return table, nil
}

func (r *Reader) readCSV(ctx context.Context, name, path string) (*Table, error) {
	query := fmt.Sprintf(
		"SELECT * FROM read_csv(%s, header = true, all_varchar = true)",
		quoteLiteral(path),
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read %s from %s: %w", name, path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", name, err)
	}

	table := newTable(name, path, columns)

	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", name, table.Len()+1, err)
		}
		table.rows = append(table.rows, cells)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", name, err)
	}

	return table, nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

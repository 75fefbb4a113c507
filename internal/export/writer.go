// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package export writes report tables and the run summary to disk.
//
// Every file is written to a temporary sibling and renamed into place, so a
// failed run never leaves a truncated report behind.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// WriteCSV writes header and rows to path as CSV, creating parent directories.
func WriteCSV(path string, header []string, rows [][]string) error {
	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for i, row := range rows {
			if len(row) != len(header) {
				return fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(header))
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// WriteSummary writes v to path as indented JSON.
func WriteSummary(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	data = append(data, '\n')

	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()        //nolint:errcheck // best-effort cleanup on error path
		os.Remove(tmpName) //nolint:errcheck // best-effort cleanup on error path
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck // best-effort cleanup on error path
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // reports are meant to be readable
		os.Remove(tmpName) //nolint:errcheck // best-effort cleanup on error path
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) //nolint:errcheck // best-effort cleanup on error path
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

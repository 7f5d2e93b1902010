// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest loads the tabular input listing which native structures
// to retrieve and what to name them.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manifest errors, checked with errors.Is.
var (
	// ErrMissingColumn is returned when a manifest lacks the pdb_id column.
	ErrMissingColumn = errors.New("manifest: missing pdb_id column")

	// ErrDuplicateOutputID is returned when two rows resolve to the same
	// output identifier, which would silently overwrite a downloaded file.
	ErrDuplicateOutputID = errors.New("manifest: duplicate output id")
)

// Entry pairs an output identifier with the accession code to fetch.
// OutputID defaults to the accession code when the manifest has no id column.
type Entry struct {
	OutputID  string
	Accession string
}

// Load interprets input as a CSV manifest when a file with that path and a
// .csv extension exists, and as a single literal accession code otherwise.
// fromFile reports which interpretation was used, so the caller knows
// whether there is a source table to copy alongside the results.
func Load(input string) (entries []Entry, fromFile bool, err error) {
	if info, statErr := os.Stat(input); statErr == nil && !info.IsDir() &&
		strings.EqualFold(filepath.Ext(input), ".csv") {
		entries, err = loadCSV(input)
		return entries, true, err
	}

	literal := strings.TrimSpace(input)
	return []Entry{{OutputID: literal, Accession: literal}}, false, nil
}

// loadCSV parses the manifest table. The pdb_id column is required; rows
// with an empty pdb_id are dropped. An id column, when present, supplies
// the output identifier per row.
func loadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w in %s: empty file", ErrMissingColumn, path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	pdbCol, ok := cols["pdb_id"]
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrMissingColumn, path)
	}
	idCol, hasID := cols["id"]

	var entries []Entry
	seen := make(map[string]struct{})
	for _, row := range records[1:] {
		if pdbCol >= len(row) {
			continue
		}
		accession := strings.TrimSpace(row[pdbCol])
		if accession == "" {
			continue
		}

		outputID := accession
		if hasID && idCol < len(row) {
			if id := strings.TrimSpace(row[idCol]); id != "" {
				outputID = id
			}
		}

		if _, dup := seen[outputID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateOutputID, outputID)
		}
		seen[outputID] = struct{}{}

		entries = append(entries, Entry{OutputID: outputID, Accession: accession})
	}
	return entries, nil
}

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ============================================================================
// CSV LOADER — raw bytes → Table
// ============================================================================
// The loader infers cell types but never parses timestamps — that belongs to
// the normalizer, which knows which column is the request timestamp.
// ============================================================================

// ReadCSV parses CSV into a Table. The first record is the header row.
// Short rows are padded with nulls; malformed rows are skipped.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	cols := make([][]Value, len(headers))
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		for i := range headers {
			if i < len(row) {
				cols[i] = append(cols[i], inferCell(row[i]))
			} else {
				cols[i] = append(cols[i], NullValue())
			}
		}
	}

	return FromColumns(headers, cols)
}

// LoadFile reads a dataset file, dispatching on extension (.csv, .xlsx).
// An unreadable source is the one hard failure the pipeline propagates.
func LoadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path, "")
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}

// inferCell classifies a raw string cell: empty → null, numeric → number,
// true/false → bool, anything else stays a string.
func inferCell(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NullValue()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberValue(f)
	}
	if strings.EqualFold(s, "true") {
		return BoolValue(true)
	}
	if strings.EqualFold(s, "false") {
		return BoolValue(false)
	}
	return StringValue(s)
}

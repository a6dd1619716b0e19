// Package dataset extracts flat value sequences from files. Three
// shapes are supported: delimited-text tables (CSV with a header row),
// JSON documents whose top level is an array, and plain text files
// treated as one value per line.
package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// Load extracts raw values from the file at path, dispatching on the
// file extension. The column selector only applies to CSV input;
// passing one for another file type is an error.
func Load(path string, column string) ([]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FromCSV(path, column)
	case ".json":
		if column != "" {
			return nil, fmt.Errorf("dataset: column %q given for non-tabular file %s", column, path)
		}
		return FromJSON(path)
	default:
		if column != "" {
			return nil, fmt.Errorf("dataset: column %q given for non-tabular file %s", column, path)
		}
		return FromLines(path)
	}
}

// FromCSV reads a header-mapped CSV file and returns the values of the
// named column, or of the first column when column is empty.
func FromCSV(path string, column string) ([]any, error) {
	rows, headers, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}

	if column == "" {
		column = headers[0]
	} else {
		found := false
		for _, h := range headers {
			if h == column {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("csv: %s has no column %q (columns: %s)", path, column, strings.Join(headers, ", "))
		}
	}

	values := make([]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, row[column])
	}
	return values, nil
}

// LoadCSV reads a CSV file and returns rows as maps of column to value
// plus the header names in file order. The first row is treated as
// headers (column names).
func LoadCSV(path string) ([]Row, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return rows, headers, nil
}

// FromJSON parses the file as JSON and returns the top-level array as
// the value sequence. Numbers decode as json.Number so the coercion
// grammar sees their literal form.
func FromJSON(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("json: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json: parse %s: %w", path, err)
	}

	arr, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("json: %s: top-level value must be an array, got %T", path, doc)
	}
	return arr, nil
}

// FromLines reads the file as plain text, one value per line. Blank
// lines are kept; coercion drops them later.
func FromLines(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lines: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var values []any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		values = append(values, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lines: read %s: %w", path, err)
	}
	return values, nil
}

// Package convert reshapes tabular data between CSV, JSON and YAML
// files. The unit of conversion is a table: an ordered set of columns
// and a list of records. XML is deliberately unsupported; encoding/xml
// cannot marshal generic maps.
package convert

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rmckay/datakit/internal/dataset"
)

// Table is the in-memory shape shared by all formats.
type Table struct {
	Columns []string
	Rows    []map[string]any
}

// Convert reads the table at inPath and writes it at outPath, with
// both formats inferred from the file extensions.
func Convert(inPath, outPath string) error {
	table, err := Read(inPath)
	if err != nil {
		return err
	}
	return Write(outPath, table)
}

// Read loads a table, dispatching on the file extension.
func Read(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readCSV(path)
	case ".json":
		return readJSON(path)
	case ".yaml", ".yml":
		return readYAML(path)
	default:
		return nil, fmt.Errorf("convert: unsupported input format %q (csv, json, yaml)", ext)
	}
}

// Write stores a table, dispatching on the file extension.
func Write(path string, table *Table) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return writeCSV(path, table)
	case ".json":
		return writeJSON(path, table)
	case ".yaml", ".yml":
		return writeYAML(path, table)
	default:
		return fmt.Errorf("convert: unsupported output format %q (csv, json, yaml)", ext)
	}
}

func readCSV(path string) (*Table, error) {
	rows, headers, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	table := &Table{Columns: headers, Rows: make([]map[string]any, 0, len(rows))}
	for _, row := range rows {
		rec := make(map[string]any, len(row))
		for k, v := range row {
			rec[k] = v
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

func readJSON(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("convert: read %s: %w", path, err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("convert: %s must be a JSON array of objects: %w", path, err)
	}
	return &Table{Columns: collectColumns(records), Rows: records}, nil
}

func readYAML(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("convert: read %s: %w", path, err)
	}
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("convert: %s must be a YAML list of mappings: %w", path, err)
	}
	return &Table{Columns: collectColumns(records), Rows: records}, nil
}

// collectColumns returns the union of record keys, sorted. JSON and
// YAML objects carry no key order worth preserving.
func collectColumns(records []map[string]any) []string {
	seen := map[string]bool{}
	var columns []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

func writeCSV(path string, table *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("convert: create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("convert: write %s: %w", path, err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = cellString(row[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("convert: write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("convert: write %s: %w", path, err)
	}
	return nil
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func writeJSON(path string, table *Table) error {
	data, err := json.MarshalIndent(table.Rows, "", "  ")
	if err != nil {
		return fmt.Errorf("convert: marshal: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("convert: write %s: %w", path, err)
	}
	return nil
}

func writeYAML(path string, table *Table) error {
	data, err := yaml.Marshal(table.Rows)
	if err != nil {
		return fmt.Errorf("convert: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("convert: write %s: %w", path, err)
	}
	return nil
}

package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/vk/eva/internal/config"
)

// LoadCSV reads a CSV file with a header row into a variable map: one series
// per column, keyed by the column header.
func LoadCSV(path string) (map[string][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s must have a header row and at least one data row", path)
	}

	header := records[0]
	variables := make(map[string][]float64, len(header))
	for _, name := range header {
		variables[name] = make([]float64, 0, len(records)-1)
	}

	for line, row := range records[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("dataset %s: row %d has %d fields, header has %d", path, line+2, len(row), len(header))
		}
		for col, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset %s: row %d, column %q: %w", path, line+2, header[col], err)
			}
			variables[header[col]] = append(variables[header[col]], v)
		}
	}
	return variables, nil
}

// FromConfig loads every dataset declared under the configuration's datasets
// list into a fresh Collections. Each entry needs a name and a path; a
// configuration with no datasets section yields an empty Collections.
func FromConfig(cfg *config.Config) (*Collections, error) {
	collections := New()

	datasets, ok := cfg.GetList("datasets")
	if !ok {
		return collections, nil
	}
	for i, raw := range datasets {
		entry, ok := raw.(*config.Config)
		if !ok {
			return nil, &config.StructureError{Key: "datasets", Msg: fmt.Sprintf("entry %d is not a mapping", i)}
		}
		name := entry.GetString("name", "")
		path := entry.GetString("path", "")
		if name == "" || path == "" {
			return nil, &config.StructureError{Key: "datasets", Msg: fmt.Sprintf("entry %d must provide name and path", i)}
		}
		variables, err := LoadCSV(path)
		if err != nil {
			return nil, err
		}
		collections.Add(name, variables)
	}
	return collections, nil
}

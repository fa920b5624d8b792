// Package storage serializes typed records to files. The core calls it
// exactly once per logical result category per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Writer writes one run's result categories under a timestamped directory,
// creating parent directories as needed.
type Writer struct {
	runDir string
	format string
	logger *slog.Logger
}

// NewRunWriter creates a Writer rooted at outputPath/<timestamp>. Format is
// one of json, csv, or spreadsheet (spreadsheet emits CSV; see DESIGN.md).
func NewRunWriter(outputPath, format string, logger *slog.Logger) (*Writer, error) {
	runDir := filepath.Join(outputPath, time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}
	return &Writer{
		runDir: runDir,
		format: format,
		logger: logger.With("component", "writer"),
	}, nil
}

// RunDir returns the directory this run writes into.
func (w *Writer) RunDir() string { return w.runDir }

// Write serializes v (a record or list of records) for the given category
// and returns the written file path.
func (w *Writer) Write(category string, v any) (string, error) {
	var (
		path string
		err  error
	)
	switch w.format {
	case "csv", "spreadsheet":
		path = filepath.Join(w.runDir, category+".csv")
		err = writeCSV(path, v)
	default:
		path = filepath.Join(w.runDir, category+".json")
		err = writeJSON(path, v)
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", category, err)
	}
	w.logger.Info("results written", "category", category, "path", path)
	return path, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeCSV flattens v through its JSON representation: a list of records
// becomes one row per record, a single record becomes one row. Headers are
// the sorted union of field names.
func writeCSV(path string, v any) error {
	rows, err := flatten(v)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	headerSet := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			headerSet[k] = true
		}
	}
	headers := make([]string, 0, len(headerSet))
	for k := range headerSet {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	cw := csv.NewWriter(f)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, h := range headers {
			record[i] = stringify(row[h])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func flatten(v any) ([]map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single map[string]any
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("value is neither a record nor a record list: %w", err)
	}
	return []map[string]any{single}, nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integers without exponent.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	}
}

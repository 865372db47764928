// pkg/exporter/csv.go
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// CSVWriter serializes analyzer result sets to delimited files, one
// file per result set, with a header row.
type CSVWriter struct {
	logger *zap.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *zap.Logger) *CSVWriter {
	if logger == nil {
		logger = zap.L()
	}
	return &CSVWriter{logger: logger.Named("csv-writer")}
}

// Write writes one result set to the given path, creating parent
// directories as needed.
func (w *CSVWriter) Write(path string, headers []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}

	w.logger.Info("Exported result set",
		zap.String("path", path),
		zap.Int("rows", len(records)))
	return nil
}

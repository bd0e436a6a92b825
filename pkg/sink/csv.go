// pkg/sink/csv.go
package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// CSVSink writes the cleaned table as delimited text: a header row of
// the flattener columns followed by the annotation columns, then one
// row per application.
type CSVSink struct {
	path   string
	logger *zap.Logger
}

// NewCSVSink creates a sink writing to path.
func NewCSVSink(path string, logger *zap.Logger) *CSVSink {
	return &CSVSink{
		path:   path,
		logger: logger,
	}
}

// Write persists the table. Any I/O failure is fatal and surfaced with
// its underlying cause.
func (s *CSVSink) Write(ctx context.Context, table model.Table) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(model.OutputColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(model.OutputColumns))
	for i, row := range table {
		for j, column := range model.OutputColumns {
			record[j] = renderCell(row, column)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output file %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", s.path, err)
	}

	s.logger.Info("Saved cleaned table",
		zap.String("path", s.path),
		zap.Int("rows", len(table)),
		zap.Int("columns", len(model.OutputColumns)))
	return nil
}

// pkg/loader/loader.go
package loader

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/connector"
	"github.com/novacred/credit-ingress/pkg/flatten"
	"github.com/novacred/credit-ingress/pkg/model"
)

// Loader reads raw records from a source and flattens them into a table.
type Loader struct {
	logger *zap.Logger
}

// New creates a new Loader.
func New(logger *zap.Logger) (*Loader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Loader{logger: logger}, nil
}

// LoadAndFlatten fetches the ordered record sequence from the source and
// flattens each record, preserving input order. Structural read failures
// propagate as *connector.SourceReadError; individual records never fail.
func (l *Loader) LoadAndFlatten(ctx context.Context, src connector.RecordSource) (model.Table, error) {
	records, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	table := make(model.Table, 0, len(records))
	for _, rec := range records {
		row := flatten.Flatten(rec)
		table = append(table, &row)
	}

	l.logger.Info("Flattened raw records",
		zap.String("source", src.Name()),
		zap.Int("rows", len(table)),
		zap.Int("columns", len(model.FlattenedColumns)))
	return table, nil
}

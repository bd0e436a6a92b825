// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/config"
)

// SourceFactory creates record sources from configuration.
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory.
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSource builds the record source named by the configuration.
func (f *SourceFactory) CreateSource(ctx context.Context) (RecordSource, error) {
	switch f.cfg.Source {
	case config.SourceFile:
		f.logger.Info("Creating file source", zap.String("path", f.cfg.InputPath))
		return NewFileSource(f.cfg.InputPath), nil

	case config.SourceSnowflake:
		f.logger.Info("Creating Snowflake source")
		source, err := NewSnowflakeSource(ctx, f.cfg.Snowflake)
		if err != nil {
			return nil, fmt.Errorf("failed to create Snowflake source: %w", err)
		}
		return source, nil

	default:
		return nil, fmt.Errorf("unknown source type: %s", f.cfg.Source)
	}
}

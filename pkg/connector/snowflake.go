// pkg/connector/snowflake.go
package connector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sf "github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/config"
	"github.com/novacred/credit-ingress/pkg/model"
)

// SnowflakeSource reads raw application records from a Snowflake staging
// table. Each row of the table carries one application as a VARIANT
// document, so the query projects the document as JSON text and the
// source unmarshals it record by record.
type SnowflakeSource struct {
	db     *sql.DB
	logger *zap.Logger
	cfg    *config.SnowflakeConfig
}

// NewSnowflakeSource creates and verifies a new Snowflake source.
func NewSnowflakeSource(ctx context.Context, cfg *config.SnowflakeConfig) (*SnowflakeSource, error) {
	logger := zap.L().Named("snowflake-source")

	sfConfig := &sf.Config{
		Account:       cfg.Account,
		User:          cfg.User,
		Password:      cfg.Password,
		Database:      cfg.Database,
		Warehouse:     cfg.Warehouse,
		Role:          cfg.Role,
		Authenticator: cfg.Authenticator,
	}

	// Log connection attempt (without credentials)
	logger.Info("Connecting to Snowflake",
		zap.String("account", cfg.Account),
		zap.String("user", cfg.User),
		zap.String("database", cfg.Database),
		zap.String("warehouse", cfg.Warehouse),
		zap.String("table", cfg.Table))

	dsn, err := sf.DSN(sfConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build Snowflake DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Snowflake connection: %w", err)
	}

	ApplyConnectionSettings(
		db,
		cfg.MaxOpenConns,
		cfg.MaxIdleConns,
		cfg.ConnMaxLifetime,
		cfg.ConnMaxIdleTime,
	)

	if cfg.QueryTimeout > 0 {
		_, err = db.ExecContext(
			ctx,
			fmt.Sprintf("ALTER SESSION SET STATEMENT_TIMEOUT_IN_SECONDS = %d",
				int(cfg.QueryTimeout.Seconds())),
		)
		if err != nil {
			logger.Warn("Failed to set statement timeout", zap.Error(err))
		}
	}

	if err := PingWithTimeout(ctx, db, 10*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}

	source := &SnowflakeSource{
		db:     db,
		logger: logger,
		cfg:    cfg,
	}

	LogConnectionStats(logger, cfg.Database, db)
	return source, nil
}

// Name identifies the source for logging.
func (s *SnowflakeSource) Name() string {
	return fmt.Sprintf("snowflake:%s.%s", s.cfg.Database, s.cfg.Table)
}

// Fetch queries the staging table and unmarshals each VARIANT document
// into a raw record, preserving the ingestion order of the table.
func (s *SnowflakeSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	query := fmt.Sprintf(
		"SELECT TO_JSON(record) FROM %s ORDER BY ingested_at",
		s.cfg.Table,
	)

	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(queryCtx, query)
	if err != nil {
		return nil, &SourceReadError{Source: s.Name(), Err: err}
	}
	defer rows.Close()

	var records []model.RawRecord
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, &SourceReadError{Source: s.Name(), Err: err}
		}

		var rec model.RawRecord
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, &SourceReadError{
				Source: s.Name(),
				Err:    fmt.Errorf("row %d is not a valid record: %w", len(records), err),
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceReadError{Source: s.Name(), Err: err}
	}

	s.logger.Info("Fetched raw records from Snowflake",
		zap.String("table", s.cfg.Table),
		zap.Int("count", len(records)))
	return records, nil
}

// Close closes the underlying connection pool.
func (s *SnowflakeSource) Close() error {
	s.logger.Info("Closing Snowflake connection")
	LogConnectionStats(s.logger, s.cfg.Database, s.db)
	return s.db.Close()
}

// pkg/sink/postgres.go
package sink

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/config"
	"github.com/novacred/credit-ingress/pkg/model"
)

// cleanedTable is the destination table for cleaned applications.
const cleanedTable = "public.cleaned_credit_applications"

// PostgresSink persists the cleaned table to PostgreSQL alongside the
// CSV output, so downstream consumers can query it directly.
type PostgresSink struct {
	db        *sqlx.DB
	logger    *zap.Logger
	cfg       *config.PostgresConfig
	batchSize int
}

// NewPostgresSink connects to PostgreSQL and verifies the connection.
func NewPostgresSink(ctx context.Context, cfg *config.PostgresConfig, logger *zap.Logger) (*PostgresSink, error) {
	if cfg == nil {
		return nil, errors.New("postgres configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.L().Named("postgres-sink")
	}

	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if cfg.StatementTimeout > 0 {
		_, err = db.ExecContext(
			ctx,
			fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()),
		)
		if err != nil {
			logger.Warn("Failed to set statement timeout", zap.Error(err))
		}
	}

	return &PostgresSink{
		db:        db,
		logger:    logger,
		cfg:       cfg,
		batchSize: 1000,
	}, nil
}

// Write recreates the cleaned table and batch inserts every row. Any
// failure is fatal and surfaced with its underlying cause.
func (s *PostgresSink) Write(ctx context.Context, table model.Table) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	columns := make([]string, len(model.OutputColumns))
	copy(columns, model.OutputColumns)

	var totalInserted int64
	for start := 0; start < len(table); start += s.batchSize {
		end := start + s.batchSize
		if end > len(table) {
			end = len(table)
		}
		batch := table[start:end]

		placeholders := make([]string, len(batch))
		args := make([]interface{}, 0, len(batch)*len(columns))
		for i, row := range batch {
			rowPlaceholders := make([]string, len(columns))
			for j, column := range columns {
				rowPlaceholders[j] = fmt.Sprintf("$%d", i*len(columns)+j+1)
				args = append(args, cellArg(row, column))
			}
			placeholders[i] = fmt.Sprintf("(%s)", strings.Join(rowPlaceholders, ", "))
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			cleanedTable, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

		insertCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		result, err := s.db.ExecContext(insertCtx, query, args...)
		cancel()
		if err != nil {
			return fmt.Errorf("batch insert failed: %w", err)
		}

		if affected, err := result.RowsAffected(); err == nil {
			totalInserted += affected
		}
	}

	s.logger.Info("Persisted cleaned table to PostgreSQL",
		zap.String("table", cleanedTable),
		zap.Int64("rows", totalInserted))
	return nil
}

// Close releases the database connection.
func (s *PostgresSink) Close() error {
	s.logger.Info("Closing PostgreSQL connection")
	return s.db.Close()
}

// ensureTable creates the destination table if missing and clears any
// previous run's rows: the cleaned table is a full snapshot, not an
// append log.
func (s *PostgresSink) ensureTable(ctx context.Context) error {
	defs := make([]string, 0, len(model.OutputColumns))
	for _, column := range model.OutputColumns {
		defs = append(defs, fmt.Sprintf("%s %s", column, columnType(column)))
	}

	createSQL := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		cleanedTable,
		strings.Join(defs, ",\n\t"),
	)

	setupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(setupCtx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", cleanedTable, err)
	}
	if _, err := s.db.ExecContext(setupCtx, "TRUNCATE TABLE "+cleanedTable); err != nil {
		return fmt.Errorf("failed to truncate table %s: %w", cleanedTable, err)
	}
	return nil
}

// columnType maps an output column to its PostgreSQL type. Numeric
// types are used only where the pipeline guarantees a numeric cell;
// passthrough columns keep TEXT because the raw data mixes types and
// the pipeline does not coerce them.
func columnType(column string) string {
	switch column {
	case "annual_income", "spending_total", "spending_categories", "completeness_pct":
		return "DOUBLE PRECISION"
	case "completeness_score":
		return "INTEGER"
	case "email_valid", "ssn_duplicate_flag":
		return "BOOLEAN"
	case "date_of_birth":
		return "DATE"
	default:
		return "TEXT"
	}
}

// cellArg produces the SQL argument for one cell, keeping SQL NULL for
// the no-value marker. Typed columns pass the underlying scalar;
// everything else is rendered through the value's string form.
func cellArg(row *model.Row, column string) interface{} {
	switch column {
	case "email_valid":
		return row.EmailValid
	case "completeness_score":
		return row.CompletenessScore
	case "completeness_pct":
		return row.CompletenessPct
	case "ssn_duplicate_flag":
		return row.SSNDuplicateFlag
	case "annual_income", "spending_total", "spending_categories", "date_of_birth":
		return row.Field(column).Raw()
	default:
		v := row.Field(column)
		if v.IsNull() {
			return nil
		}
		return v.AsString()
	}
}

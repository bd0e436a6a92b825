// pkg/audit/postgres.go
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/config"
	"github.com/novacred/credit-ingress/pkg/model"
)

// PostgresRecorder persists cleaning operations to a cleaning_audit
// table so every remediation applied on ingress stays reviewable.
type PostgresRecorder struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPostgresRecorder connects to PostgreSQL and ensures the audit
// table exists.
func NewPostgresRecorder(ctx context.Context, cfg *config.PostgresConfig, logger *zap.Logger) (*PostgresRecorder, error) {
	if cfg == nil {
		return nil, errors.New("postgres configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	recorder := &PostgresRecorder{
		db:     db,
		logger: logger,
	}

	if err := recorder.setupAuditTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup audit table: %w", err)
	}

	return recorder, nil
}

// setupAuditTable ensures the cleaning_audit tracking table exists.
func (r *PostgresRecorder) setupAuditTable(ctx context.Context) error {
	setupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS public.cleaning_audit (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			column_name TEXT NOT NULL,
			original_value TEXT,
			new_value TEXT,
			row_identifier TEXT NOT NULL,
			cleaning_operation TEXT NOT NULL,
			cleaning_reason TEXT NOT NULL,
			cleaned_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := r.db.ExecContext(setupCtx, createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create tracking table: %w", err)
	}

	r.logger.Info("Ensured cleaning_audit table exists")
	return nil
}

// Record batch inserts cleaning operations into the tracking table.
func (r *PostgresRecorder) Record(ctx context.Context, operations []model.CleaningOperation) error {
	if len(operations) == 0 {
		return nil
	}

	recordCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := r.db.BeginTxx(recordCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	stmt, err := tx.PreparexContext(recordCtx, `
		INSERT INTO public.cleaning_audit
		(run_id, column_name, original_value, new_value,
		 row_identifier, cleaning_operation, cleaning_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, op := range operations {
		_, err = stmt.ExecContext(recordCtx,
			op.RunID,
			op.ColumnName,
			nullableString(op.OriginalValue),
			nullableString(op.NewValue),
			op.RowIdentifier,
			op.CleaningOperation,
			op.CleaningReason,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cleaning operation: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Recorded cleaning operations", zap.Int("count", len(operations)))
	return nil
}

// Close releases the database connection.
func (r *PostgresRecorder) Close() error {
	r.logger.Info("Closing audit recorder connection")
	return r.db.Close()
}

// nullableString renders a cell for the audit table, keeping SQL NULL
// for the no-value marker.
func nullableString(v model.Value) *string {
	if v.IsNull() {
		return nil
	}
	s := v.AsString()
	return &s
}

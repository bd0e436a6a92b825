// cmd/ingress/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/audit"
	"github.com/novacred/credit-ingress/pkg/cleaner"
	"github.com/novacred/credit-ingress/pkg/config"
	"github.com/novacred/credit-ingress/pkg/connector"
	"github.com/novacred/credit-ingress/pkg/loader"
	"github.com/novacred/credit-ingress/pkg/logging"
	"github.com/novacred/credit-ingress/pkg/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	input := flag.String("input", "", "path to the raw JSON dataset (overrides INPUT_PATH)")
	output := flag.String("output", "", "path for the cleaned CSV (overrides OUTPUT_PATH)")
	flag.Parse()

	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *input != "" {
		cfg.InputPath = *input
	}
	if *output != "" {
		cfg.OutputPath = *output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()

	factory := connector.NewSourceFactory(cfg, logger)
	source, err := factory.CreateSource(ctx)
	if err != nil {
		return err
	}
	defer source.Close()

	ld, err := loader.New(logger.Named("loader"))
	if err != nil {
		return err
	}
	table, err := ld.LoadAndFlatten(ctx, source)
	if err != nil {
		return err
	}

	var recorder audit.Recorder = audit.NopRecorder{}
	if cfg.AuditEnabled {
		pgRecorder, err := audit.NewPostgresRecorder(ctx, cfg.Postgres, logger.Named("audit"))
		if err != nil {
			return err
		}
		defer pgRecorder.Close()
		recorder = pgRecorder
	}

	pipeline, err := cleaner.NewPipeline(logger.Named("cleaner"), recorder)
	if err != nil {
		return err
	}
	table, summary, err := pipeline.Clean(ctx, table)
	if err != nil {
		return err
	}

	csvSink := sink.NewCSVSink(cfg.OutputPath, logger.Named("csv-sink"))
	if err := csvSink.Write(ctx, table); err != nil {
		return err
	}

	if cfg.PersistCleaned {
		pgSink, err := sink.NewPostgresSink(ctx, cfg.Postgres, logger.Named("postgres-sink"))
		if err != nil {
			return err
		}
		defer pgSink.Close()
		if err := pgSink.Write(ctx, table); err != nil {
			return err
		}
	}

	logger.Info("Ingress run finished",
		zap.String("run_id", summary.RunID),
		zap.Int("rows_cleaned", summary.RowsOut),
		zap.String("output", cfg.OutputPath))
	return nil
}

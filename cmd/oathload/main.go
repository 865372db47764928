// cmd/oathload/main.go
//
// oathload fetches OATH adjudication cases from the NYC open-data
// Socrata feed and bulk-loads them into the oath_cases table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/config"
	"github.com/citydata/oath-analytics/pkg/connector"
	"github.com/citydata/oath-analytics/pkg/logging"
	"github.com/citydata/oath-analytics/pkg/socrata"
	"github.com/citydata/oath-analytics/pkg/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "oathload:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env support is optional; env vars win when both are present
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger = logger.With(zap.String("run_id", uuid.New().String()))
	ctx := context.Background()

	logger.Info("Fetching OATH cases from Socrata",
		zap.String("url", cfg.Socrata.BaseURL),
		zap.Int("row_target", cfg.Socrata.RowTarget),
		zap.Int("page_limit", cfg.Socrata.PageLimit))

	client := socrata.NewClient(cfg, logger)
	records, err := client.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no data fetched; check the date filter and SOCRATA_APP_TOKEN")
	}

	conn, err := connector.NewPostgresConnector(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Validate(); err != nil {
		return err
	}

	caseStore, err := store.NewCaseStore(conn.DB(), logger)
	if err != nil {
		return err
	}

	loaded, err := caseStore.CopyFrom(ctx, records)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	logger.Info("Load complete",
		zap.Int("fetched_rows", len(records)),
		zap.Int64("loaded_rows", loaded))
	return nil
}

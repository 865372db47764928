// cmd/oathreport/main.go
//
// oathreport runs the cleaning and aggregation pipeline over the
// oath_cases table, logs headline figures, and optionally exports each
// result set to a CSV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/analyzer"
	"github.com/citydata/oath-analytics/pkg/config"
	"github.com/citydata/oath-analytics/pkg/connector"
	"github.com/citydata/oath-analytics/pkg/exporter"
	"github.com/citydata/oath-analytics/pkg/logging"
	"github.com/citydata/oath-analytics/pkg/model"
	"github.com/citydata/oath-analytics/pkg/normalizer"
	"github.com/citydata/oath-analytics/pkg/store"
)

const dateFlagFormat = "2006-01-02"

func main() {
	outDir := flag.String("out", "", "directory for CSV exports; skip export when empty")
	fromDate := flag.String("from", "", "restrict to hearing dates on or after this date (YYYY-MM-DD)")
	toDate := flag.String("to", "", "restrict to hearing dates on or before this date (YYYY-MM-DD)")
	skipMalformed := flag.Bool("skip-malformed", false, "skip and log records with malformed amounts instead of aborting")
	flag.Parse()

	if err := run(*outDir, *fromDate, *toDate, *skipMalformed); err != nil {
		fmt.Fprintln(os.Stderr, "oathreport:", err)
		os.Exit(1)
	}
}

func run(outDir, fromDate, toDate string, skipMalformed bool) error {
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

	conn, err := connector.NewPostgresConnector(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer conn.Close()

	caseStore, err := store.NewCaseStore(conn.DB(), logger)
	if err != nil {
		return err
	}

	total, err := caseStore.Count(ctx)
	if err != nil {
		return err
	}
	logger.Info("Raw store ready", zap.Int64("total_rows", total))

	raw, err := fetch(ctx, caseStore, fromDate, toDate)
	if err != nil {
		return err
	}

	analyze := analyzer.NewAnalyzer(logger)
	profile := analyze.Profile(raw)

	norm := normalizer.NewNormalizer(logger)
	var clean []model.CleanRecord
	if skipMalformed {
		var skipped []error
		clean, skipped = norm.NormalizeAllSkipMalformed(raw)
		if len(skipped) > 0 {
			logger.Warn("Records dropped from analysis", zap.Int("count", len(skipped)))
		}
	} else {
		clean, err = norm.NormalizeAll(raw)
		if err != nil {
			return fmt.Errorf("normalization failed: %w", err)
		}
	}

	collections := analyze.Collections(clean)
	logger.Info("Collections summary",
		zap.Float64("total_due", collections.TotalDue),
		zap.Float64("total_paid", collections.TotalPaid),
		zap.Float64("total_outstanding", collections.TotalOutstanding),
		zap.Float64p("collection_rate_pct", collections.CollectionRatePct))

	resultSets := []exporter.ResultSet{
		exporter.CollectionsResultSet(collections),
		exporter.DecisionMixResultSet(analyze.DecisionMix(clean)),
		exporter.AgencyCaseCountResultSet(analyze.AgencyCaseCounts(clean)),
		exporter.AgencyOutstandingResultSet(analyze.AgencyOutstanding(clean)),
		exporter.MonthlyCaseCountResultSet(analyze.MonthlyCaseCounts(clean)),
		exporter.MonthlyCollectionsResultSet(analyze.MonthlyCollections(clean)),
		exporter.AgencyDecisionResultSet(analyze.DecisionsByTopAgencies(clean)),
		exporter.ConcentrationResultSet(analyze.OutstandingConcentration(clean)),
		exporter.DistributionResultSet("amount_due_distribution", analyze.AmountDueDistribution(clean)),
		exporter.DistributionResultSet("outstanding_distribution", analyze.OutstandingDistribution(clean)),
	}
	resultSets = append(resultSets, exporter.ProfileResultSets(profile)...)

	if outDir == "" {
		logger.Info("No export directory given, skipping export")
		return nil
	}

	writer := exporter.NewCSVWriter(logger)
	for _, rs := range resultSets {
		path := filepath.Join(outDir, rs.Name+".csv")
		if err := writer.Write(path, rs.Headers, rs.Records); err != nil {
			return fmt.Errorf("failed to export %s: %w", rs.Name, err)
		}
	}

	logger.Info("Report complete",
		zap.Int("result_sets", len(resultSets)),
		zap.String("out_dir", outDir))
	return nil
}

// fetch enumerates the raw store, pushing the date filter down to the
// database when a window is given.
func fetch(ctx context.Context, caseStore *store.CaseStore, fromDate, toDate string) ([]model.RawRecord, error) {
	if fromDate == "" && toDate == "" {
		return caseStore.FetchAll(ctx)
	}

	from, to, err := parseWindow(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return caseStore.FetchRange(ctx, from, to)
}

func parseWindow(fromDate, toDate string) (time.Time, time.Time, error) {
	from := time.Time{}
	// Far-future default keeps a from-only window open-ended
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if fromDate != "" {
		from, err = time.Parse(dateFlagFormat, fromDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date %q: %w", fromDate, err)
		}
	}
	if toDate != "" {
		to, err = time.Parse(dateFlagFormat, toDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date %q: %w", toDate, err)
		}
	}

	return from, to, nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datasmith/datasmith/internal/ingest"
	"github.com/datasmith/datasmith/internal/insights"
	"github.com/datasmith/datasmith/internal/models"
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Run the analysis scan and print its report",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	datasets := map[models.DatasetKind]*models.Dataset{}
	for _, path := range args {
		ds, err := ingest.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		datasets[ds.Kind] = ds
	}

	logger := newFileLogger(cfg)
	defer logger.Sync()

	advisor := insights.NewAdvisor(time.Duration(cfg.Advisor.LatencyMS)*time.Millisecond, logger)
	report, err := advisor.Scan(context.Background(),
		datasets[models.KindClients], datasets[models.KindWorkers], datasets[models.KindTasks])
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	fmt.Printf("Recommendations (%d)\n", len(report.Recommendations))
	for _, rec := range report.Recommendations {
		fmt.Printf("  [%s] %s (confidence %.0f%%)\n", rec.Type, rec.Title, rec.Confidence*100)
		fmt.Printf("      %s\n", rec.Description)
	}

	fmt.Printf("\nInsights (%d)\n", len(report.Insights))
	for _, in := range report.Insights {
		fmt.Printf("  [%s] %s\n", in.Severity, in.Message)
	}
	return nil
}

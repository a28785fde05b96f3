package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datasmith/datasmith/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "datasmith",
	Short: "Datasmith - spreadsheet-style editor for allocation data",
	Long: `Datasmith loads client, worker and task tables from CSV or XLSX files,
validates them continuously while you edit, and exports cleaned data
together with allocation rules and prioritization weights.`,
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	configPath  string
	sessionName string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&sessionName, "session", "default", "Session name")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(queryCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newFileLogger writes diagnostics to the configured log file so they never
// race the TUI for the terminal.
func newFileLogger(cfg *config.Config) *zap.Logger {
	if cfg.LogFile == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return zap.NewNop()
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	logger, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

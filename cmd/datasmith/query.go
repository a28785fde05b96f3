package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datasmith/datasmith/internal/export"
	"github.com/datasmith/datasmith/internal/ingest"
	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query [text] [file]",
	Short: "Filter a data file with a natural-language query",
	Long: `Query loads one CSV or XLSX file, applies the free-text filter and prints
the matching rows as CSV. An empty query prints every row.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	text, path := args[0], args[1]

	ds, err := ingest.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	matched := &models.Dataset{
		Kind:    ds.Kind,
		Columns: ds.Columns,
		Rows:    query.Filter(text, ds),
	}
	if err := export.WriteCSV(os.Stdout, matched); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d of %d rows match\n", len(matched.Rows), len(ds.Rows))
	return nil
}

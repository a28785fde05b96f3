package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datasmith/datasmith/internal/ingest"
	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate data files and report every issue",
	Long: `Check loads the given CSV or XLSX files, infers each file's dataset kind
from its name, runs the full validation pass and prints the findings.
Exits non-zero when any issue is found.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	var sets []*models.Dataset
	for _, path := range args {
		ds, err := ingest.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		sets = append(sets, ds)
	}

	issues := validate.CheckAll(sets)
	if len(issues) == 0 {
		rowTotal := 0
		for _, ds := range sets {
			rowTotal += len(ds.Rows)
		}
		fmt.Printf("OK: %d rows across %d files, no issues\n", rowTotal, len(sets))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATASET\tROW\tISSUE")
	for _, is := range issues {
		row := "-"
		if is.Row > 0 {
			row = fmt.Sprintf("%d", is.Row)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", is.Kind, row, is.Message)
	}
	w.Flush()

	fmt.Printf("\n%d issues found\n", len(issues))
	os.Exit(1)
	return nil
}

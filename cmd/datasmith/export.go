package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/datasmith/datasmith/internal/export"
	"github.com/datasmith/datasmith/internal/ingest"
	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/rules"
	"github.com/datasmith/datasmith/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [files...]",
	Short: "Write CSVs plus rules.json and prioritization.json",
	Long: `Export writes one CSV per dataset together with the session's rules and
prioritization weights. With file arguments the datasets come from those
files; without arguments they come from the saved session.`,
	RunE: runExport,
}

var (
	exportDir  string
	exportXLSX bool
)

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", "", "Output directory (defaults to the configured export dir)")
	exportCmd.Flags().BoolVar(&exportXLSX, "xlsx", false, "Also write a combined XLSX workbook")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := exportDir
	if dir == "" {
		dir = cfg.ExportDir
	}

	ruleSet := rules.NewSet()
	weights := rules.DefaultWeights()

	var sets []*models.Dataset
	if len(args) > 0 {
		for _, path := range args {
			ds, err := ingest.Load(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			sets = append(sets, ds)
		}
	}

	// The session supplies rules and weights always, and the datasets when
	// no files were named.
	if st, err := store.New(cfg.SessionDB); err == nil {
		defer st.Close()
		sess, err := st.OpenSession(sessionName)
		if err != nil {
			return fmt.Errorf("open session %s: %w", sessionName, err)
		}
		if list, err := st.LoadRules(sess.ID); err == nil {
			ruleSet.Replace(list)
		}
		if w, err := st.LoadWeights(sess.ID); err == nil {
			weights = w
		}
		if len(sets) == 0 {
			for _, kind := range models.Kinds {
				ds, err := st.LoadDataset(sess.ID, kind)
				if err != nil {
					return fmt.Errorf("load session %s: %w", kind, err)
				}
				sets = append(sets, ds)
			}
		}
	}

	if err := export.WriteDatasets(dir, sets); err != nil {
		return err
	}
	if err := export.WriteRulesFile(dir, ruleSet, time.Now()); err != nil {
		return err
	}
	if err := export.WriteWeightsFile(dir, weights); err != nil {
		return err
	}
	if exportXLSX {
		if err := export.WriteWorkbook(filepath.Join(dir, "datasmith.xlsx"), sets); err != nil {
			return err
		}
	}

	count := 2
	for _, ds := range sets {
		if ds != nil {
			count++
		}
	}
	if exportXLSX {
		count++
	}
	fmt.Printf("Exported %d files to %s\n", count, dir)
	return nil
}

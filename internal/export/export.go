// Package export writes the session's artifacts: one CSV per dataset, the
// rules and prioritization JSON files, and an optional combined workbook.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/rules"
	"github.com/xuri/excelize/v2"
)

// rulesVersion is the schema version stamped into rules.json.
const rulesVersion = "1.0"

// exportedRule is the wire form of a rule: the internal ID stays internal.
type exportedRule struct {
	Type        rules.RuleType         `json:"type"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

type rulesFile struct {
	Version  string         `json:"version"`
	Rules    []exportedRule `json:"rules"`
	Metadata rulesMetadata  `json:"metadata"`
}

type rulesMetadata struct {
	CreatedAt  string `json:"createdAt"`
	TotalRules int    `json:"totalRules"`
}

// WriteCSV writes a dataset as delimited text, columns in declared order.
func WriteCSV(w io.Writer, ds *models.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(ds.Columns))
	for i, row := range ds.Rows {
		for j, col := range ds.Columns {
			record[j] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDatasets writes {clients|workers|tasks}.csv into dir for every
// non-nil dataset.
func WriteDatasets(dir string, sets []*models.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	for _, ds := range sets {
		if ds == nil {
			continue
		}
		path := filepath.Join(dir, string(ds.Kind)+".csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := WriteCSV(f, ds); err != nil {
			f.Close()
			return fmt.Errorf("export %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
	}
	return nil
}

// WriteRules marshals the rule set as rules.json.
func WriteRules(w io.Writer, set *rules.Set, now time.Time) error {
	list := set.List()
	out := rulesFile{
		Version: rulesVersion,
		Rules:   make([]exportedRule, 0, len(list)),
		Metadata: rulesMetadata{
			CreatedAt:  now.UTC().Format(time.RFC3339),
			TotalRules: len(list),
		},
	}
	for _, r := range list {
		out.Rules = append(out.Rules, exportedRule{
			Type:        r.Type,
			Description: r.Description,
			Parameters:  r.Parameters,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteWeights marshals the prioritization sliders as prioritization.json.
func WriteWeights(w io.Writer, weights rules.Weights) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(weights)
}

// WriteRulesFile and WriteWeightsFile write the JSON artifacts into dir
// under their conventional names.
func WriteRulesFile(dir string, set *rules.Set, now time.Time) error {
	return writeFile(filepath.Join(dir, "rules.json"), func(f io.Writer) error {
		return WriteRules(f, set, now)
	})
}

// WriteWeightsFile writes prioritization.json into dir.
func WriteWeightsFile(dir string, weights rules.Weights) error {
	return writeFile(filepath.Join(dir, "prioritization.json"), func(f io.Writer) error {
		return WriteWeights(f, weights)
	})
}

// WriteWorkbook writes every non-nil dataset as one sheet of an xlsx
// workbook.
func WriteWorkbook(path string, sets []*models.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, ds := range sets {
		if ds == nil {
			continue
		}
		sheet := string(ds.Kind)
		if first {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("add sheet %s: %w", sheet, err)
			}
		}

		header := make([]interface{}, len(ds.Columns))
		for i, c := range ds.Columns {
			header[i] = c
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("write header for %s: %w", sheet, err)
		}
		for i, row := range ds.Rows {
			record := make([]interface{}, len(ds.Columns))
			for j, col := range ds.Columns {
				record[j] = row[col]
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetSheetRow(sheet, cell, &record); err != nil {
				return fmt.Errorf("write row %d for %s: %w", i+1, sheet, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

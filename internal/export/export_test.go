package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/rules"
)

func sampleClients() *models.Dataset {
	return &models.Dataset{
		Kind:    models.KindClients,
		Columns: []string{"ClientID", "ClientName", "PriorityLevel"},
		Rows: []models.Row{
			{"ClientID": "C1", "ClientName": "Acme, Inc", "PriorityLevel": "3"},
			{"ClientID": "C2", "ClientName": "Globex", "PriorityLevel": "5"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleClients()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "ClientID,ClientName,PriorityLevel" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	// Commas inside cells are quoted.
	if !strings.Contains(lines[1], `"Acme, Inc"`) {
		t.Errorf("expected quoted cell, got %q", lines[1])
	}
}

func TestWriteDatasets(t *testing.T) {
	dir := t.TempDir()
	if err := WriteDatasets(dir, []*models.Dataset{sampleClients(), nil}); err != nil {
		t.Fatalf("WriteDatasets() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "clients.csv")); err != nil {
		t.Errorf("clients.csv not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "workers.csv")); !os.IsNotExist(err) {
		t.Error("nil dataset should not produce a file")
	}
}

func TestWriteRules(t *testing.T) {
	set := rules.NewSet()
	set.Add(rules.TypeCoRun, "run together", map[string]interface{}{"tasks": []string{"T1", "T2"}})
	set.Add(rules.TypeLoadLimit, "cap GroupB", map[string]interface{}{"maxLoad": 4})

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := WriteRules(&buf, set, now); err != nil {
		t.Fatalf("WriteRules() error = %v", err)
	}

	var out struct {
		Version string `json:"version"`
		Rules   []struct {
			Type        string                 `json:"type"`
			Description string                 `json:"description"`
			Parameters  map[string]interface{} `json:"parameters"`
		} `json:"rules"`
		Metadata struct {
			CreatedAt  string `json:"createdAt"`
			TotalRules int    `json:"totalRules"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("rules.json is not valid JSON: %v", err)
	}
	if out.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", out.Version)
	}
	if out.Metadata.TotalRules != 2 || len(out.Rules) != 2 {
		t.Errorf("expected 2 rules, got %d (metadata %d)", len(out.Rules), out.Metadata.TotalRules)
	}
	if out.Metadata.CreatedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("unexpected createdAt: %q", out.Metadata.CreatedAt)
	}
	if out.Rules[0].Type != "coRun" {
		t.Errorf("unexpected first rule type: %q", out.Rules[0].Type)
	}
}

func TestWriteWeights(t *testing.T) {
	w := rules.DefaultWeights()
	w.Set("fairness", 8)

	var buf bytes.Buffer
	if err := WriteWeights(&buf, w); err != nil {
		t.Fatalf("WriteWeights() error = %v", err)
	}

	var out map[string]int
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("prioritization.json is not valid JSON: %v", err)
	}
	if len(out) != 6 {
		t.Errorf("expected 6 sliders, got %d: %v", len(out), out)
	}
	if out["fairness"] != 8 {
		t.Errorf("expected fairness 8, got %d", out["fairness"])
	}
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.xlsx")

	err := WriteWorkbook(path, []*models.Dataset{
		sampleClients(),
		{
			Kind:    models.KindWorkers,
			Columns: []string{"WorkerID"},
			Rows:    []models.Row{{"WorkerID": "W1"}},
		},
	})
	if err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	if st.Size() == 0 {
		t.Error("workbook file is empty")
	}
}

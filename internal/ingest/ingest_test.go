package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datasmith/datasmith/internal/models"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path    string
		want    models.DatasetKind
		wantErr bool
	}{
		{"clients.csv", models.KindClients, false},
		{"/data/My_Workers.xlsx", models.KindWorkers, false},
		{"tasks_v2.csv", models.KindTasks, false},
		{"data.csv", "", true},
	}
	for _, tt := range tests {
		got, err := DetectKind(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectKind(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectKind(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestReadCSV(t *testing.T) {
	in := "ClientID,ClientName,PriorityLevel\nC1,Acme,3\nC2,Globex\n"

	ds, err := ReadCSV(strings.NewReader(in), models.KindClients)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(ds.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %v", ds.Columns)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ds.Rows))
	}
	if ds.Rows[0]["ClientName"] != "Acme" {
		t.Errorf("unexpected cell: %q", ds.Rows[0]["ClientName"])
	}
	// Short rows are padded with empty cells.
	if v, ok := ds.Rows[1]["PriorityLevel"]; !ok || v != "" {
		t.Errorf("missing cell should default to empty string, got %q (present=%v)", v, ok)
	}
}

func TestReadCSV_NoHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), models.KindClients)
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}

func TestLoadKind_UnsupportedExtension(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "clients.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadKind(path, models.KindClients)
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestLoad_CSVRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "workers.csv")
	content := "WorkerID,WorkerName,Skills\nW1,Ann,welding\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Kind != models.KindWorkers {
		t.Errorf("expected workers kind, got %s", ds.Kind)
	}
	if len(ds.Rows) != 1 || ds.Rows[0]["WorkerName"] != "Ann" {
		t.Errorf("unexpected rows: %v", ds.Rows)
	}
}

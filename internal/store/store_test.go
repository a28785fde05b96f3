package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/rules"
)

func newTestStore(t *testing.T) *Store {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestOpenSession_GetOrCreate(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	first, err := s.OpenSession("default")
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	if first.ID == "" {
		t.Error("Session ID should not be empty")
	}

	second, err := s.OpenSession("default")
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Reopening a session should return the same ID, got %s vs %s", second.ID, first.ID)
	}

	other, err := s.OpenSession("other")
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	if other.ID == first.ID {
		t.Error("Different names should yield different sessions")
	}
}

func TestDatasetSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	sess, _ := s.OpenSession("default")

	ds := &models.Dataset{
		Kind:    models.KindClients,
		Columns: []string{"ClientID", "PriorityLevel"},
		Rows: []models.Row{
			{"ClientID": "C1", "PriorityLevel": "3"},
			{"ClientID": "C2", "PriorityLevel": "5"},
		},
	}
	if err := s.SaveDataset(sess.ID, ds); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	got, err := s.LoadDataset(sess.ID, models.KindClients)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a dataset")
	}
	if len(got.Rows) != 2 || got.Rows[0]["ClientID"] != "C1" {
		t.Errorf("Unexpected rows: %v", got.Rows)
	}
	if len(got.Columns) != 2 || got.Columns[1] != "PriorityLevel" {
		t.Errorf("Unexpected columns: %v", got.Columns)
	}

	// Saving again replaces the snapshot wholesale.
	ds.Rows = ds.Rows[:1]
	if err := s.SaveDataset(sess.ID, ds); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}
	got, _ = s.LoadDataset(sess.ID, models.KindClients)
	if len(got.Rows) != 1 {
		t.Errorf("Expected replacement snapshot with 1 row, got %d", len(got.Rows))
	}
}

func TestLoadDataset_Missing(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	sess, _ := s.OpenSession("default")
	got, err := s.LoadDataset(sess.ID, models.KindWorkers)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if got != nil {
		t.Error("Expected nil for a kind never saved")
	}
}

func TestRulesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	sess, _ := s.OpenSession("default")

	set := rules.NewSet()
	set.Add(rules.TypeCoRun, "together", map[string]interface{}{"tasks": []string{"T1", "T2"}})

	if err := s.SaveRules(sess.ID, set.List()); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}

	got, err := s.LoadRules(sess.ID)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(got) != 1 || got[0].Type != rules.TypeCoRun {
		t.Errorf("Unexpected rules: %v", got)
	}
}

func TestWeightsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	sess, _ := s.OpenSession("default")

	// Nothing saved yet: defaults come back.
	got, err := s.LoadWeights(sess.ID)
	if err != nil {
		t.Fatalf("LoadWeights failed: %v", err)
	}
	if got != rules.DefaultWeights() {
		t.Errorf("Expected defaults, got %+v", got)
	}

	w := rules.DefaultWeights()
	w.Set("fairness", 9)
	if err := s.SaveWeights(sess.ID, w); err != nil {
		t.Fatalf("SaveWeights failed: %v", err)
	}

	got, _ = s.LoadWeights(sess.ID)
	if got.Fairness != 9 {
		t.Errorf("Expected fairness 9, got %d", got.Fairness)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	sess, _ := s.OpenSession("default")
	s.SaveDataset(sess.ID, &models.Dataset{Kind: models.KindClients, Columns: []string{"ClientID"}})
	s.SaveWeights(sess.ID, rules.DefaultWeights())

	if err := s.DeleteSession(sess.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	sessions, err := s.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Expected no sessions, got %d", len(sessions))
	}

	ds, _ := s.LoadDataset(sess.ID, models.KindClients)
	if ds != nil {
		t.Error("Dataset snapshot should be gone after delete")
	}
}

func TestListSessions_Order(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	a, _ := s.OpenSession("a")
	time.Sleep(10 * time.Millisecond)
	s.OpenSession("b")
	time.Sleep(10 * time.Millisecond)
	s.SaveWeights(a.ID, rules.DefaultWeights()) // touches a

	sessions, err := s.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Name != "a" {
		t.Errorf("Most recently touched session should come first, got %s", sessions[0].Name)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

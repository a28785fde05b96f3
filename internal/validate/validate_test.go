package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/datasmith/datasmith/internal/models"
)

func clientRow(id, priority, taskIDs, attrs string) models.Row {
	return models.Row{
		"ClientID":         id,
		"ClientName":       "Client " + id,
		"PriorityLevel":    priority,
		"RequestedTaskIDs": taskIDs,
		"GroupTag":         "GroupA",
		"AttributesJSON":   attrs,
	}
}

func clientDataset(rows ...models.Row) *models.Dataset {
	return &models.Dataset{
		Kind:    models.KindClients,
		Columns: RequiredColumns(models.KindClients),
		Rows:    rows,
	}
}

func TestCheck_Idempotent(t *testing.T) {
	ds := clientDataset(
		clientRow("C1", "0", "T1,T2", "{}"),
		clientRow("C1", "3", "bogus", "INVALID_JSON"),
	)

	first := Check(ds)
	second := Check(ds)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Check is not idempotent:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestCheck_DuplicateKeys(t *testing.T) {
	ds := clientDataset(
		clientRow("C1", "3", "", "{}"),
		clientRow("C1", "3", "", "{}"),
		clientRow("C1", "3", "", "{}"),
		clientRow("C2", "3", "", "{}"),
	)

	issues := Check(ds)
	var dups []models.Issue
	for _, is := range issues {
		if strings.Contains(is.Message, "duplicate") {
			dups = append(dups, is)
		}
	}
	if len(dups) != 2 {
		t.Fatalf("expected 2 duplicate issues, got %d: %v", len(dups), dups)
	}
	if dups[0].Row != 2 || dups[1].Row != 3 {
		t.Errorf("expected duplicates flagged at rows 2 and 3, got %d and %d", dups[0].Row, dups[1].Row)
	}
}

func TestCheck_PriorityRange(t *testing.T) {
	tests := []struct {
		priority string
		flagged  bool
	}{
		{"0", true},
		{"1", false},
		{"2", false},
		{"3", false},
		{"4", false},
		{"5", false},
		{"6", true},
		{"abc", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("priority_"+tt.priority, func(t *testing.T) {
			ds := clientDataset(clientRow("C1", tt.priority, "", "{}"))
			issues := Check(ds)
			found := false
			for _, is := range issues {
				if strings.Contains(is.Message, "PriorityLevel") {
					found = true
				}
			}
			if found != tt.flagged {
				t.Errorf("PriorityLevel=%q: flagged=%v, want %v (issues: %v)", tt.priority, found, tt.flagged, issues)
			}
		})
	}
}

func TestCheck_RequestedTaskIDs(t *testing.T) {
	tests := []struct {
		value   string
		flagged bool
	}{
		{"", false},
		{"T1", false},
		{"T1,T2,T17", false},
		{"T1, T2", true},
		{"T1,X2", true},
		{"1,2", true},
	}

	for _, tt := range tests {
		ds := clientDataset(clientRow("C1", "3", tt.value, "{}"))
		issues := Check(ds)
		found := false
		for _, is := range issues {
			if strings.Contains(is.Message, "RequestedTaskIDs") {
				found = true
			}
		}
		if found != tt.flagged {
			t.Errorf("RequestedTaskIDs=%q: flagged=%v, want %v", tt.value, found, tt.flagged)
		}
	}
}

func TestCheck_AttributesJSON(t *testing.T) {
	tests := []struct {
		value   string
		flagged bool
	}{
		{"", false},
		{"{}", false},
		{`{"a":1}`, false},
		{"INVALID_JSON", true},
		{"{broken", true},
	}

	for _, tt := range tests {
		ds := clientDataset(clientRow("C1", "3", "", tt.value))
		issues := Check(ds)
		found := false
		for _, is := range issues {
			if strings.Contains(is.Message, "AttributesJSON") {
				found = true
			}
		}
		if found != tt.flagged {
			t.Errorf("AttributesJSON=%q: flagged=%v, want %v", tt.value, found, tt.flagged)
		}
	}
}

func workerRow(id, slots, load, qual string) models.Row {
	return models.Row{
		"WorkerID":           id,
		"WorkerName":         "Worker " + id,
		"Skills":             "welding,coding",
		"AvailableSlots":     slots,
		"MaxLoadPerPhase":    load,
		"WorkerGroup":        "GroupB",
		"QualificationLevel": qual,
	}
}

func TestCheck_Workers(t *testing.T) {
	ds := &models.Dataset{
		Kind:    models.KindWorkers,
		Columns: RequiredColumns(models.KindWorkers),
		Rows: []models.Row{
			workerRow("W1", "[1,2,3]", "2", "3"),
			workerRow("W2", "not_a_list", "2", "3"),
			workerRow("W3", "[1,2]", "-1", "3"),
			workerRow("W4", "[1,2]", "2", "6"),
			workerRow("W5", `[1,"two"]`, "2", "3"),
		},
	}

	issues := Check(ds)
	wants := []struct {
		row     int
		keyword string
	}{
		{2, "AvailableSlots"},
		{3, "MaxLoadPerPhase"},
		{4, "QualificationLevel"},
		{5, "AvailableSlots"},
	}
	if len(issues) != len(wants) {
		t.Fatalf("expected %d issues, got %d: %v", len(wants), len(issues), issues)
	}
	for i, want := range wants {
		if issues[i].Row != want.row || !strings.Contains(issues[i].Message, want.keyword) {
			t.Errorf("issue %d: got row %d %q, want row %d mentioning %s", i, issues[i].Row, issues[i].Message, want.row, want.keyword)
		}
	}
}

func TestCheck_MissingColumnAggregatesOnce(t *testing.T) {
	cols := []string{"WorkerID", "WorkerName", "Skills", "AvailableSlots", "MaxLoadPerPhase", "WorkerGroup"}
	ds := &models.Dataset{
		Kind:    models.KindWorkers,
		Columns: cols,
		Rows: []models.Row{
			{"WorkerID": "W1", "WorkerName": "A", "Skills": "x", "AvailableSlots": "[1]", "MaxLoadPerPhase": "2", "WorkerGroup": "G"},
			{"WorkerID": "W2", "WorkerName": "B", "Skills": "y", "AvailableSlots": "[2]", "MaxLoadPerPhase": "3", "WorkerGroup": "G"},
		},
	}

	issues := Check(ds)
	if len(issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d: %v", len(issues), issues)
	}
	if issues[0].Row != 0 {
		t.Errorf("missing-columns issue should be dataset-level, got row %d", issues[0].Row)
	}
	if !strings.Contains(issues[0].Message, "QualificationLevel") {
		t.Errorf("missing-columns issue should name QualificationLevel, got %q", issues[0].Message)
	}
}

func TestCheck_Tasks(t *testing.T) {
	taskRow := func(id, duration, phases, concurrent string) models.Row {
		return models.Row{
			"TaskID":          id,
			"TaskName":        "Task " + id,
			"Category":        "general",
			"Duration":        duration,
			"RequiredSkills":  "welding",
			"PreferredPhases": phases,
			"MaxConcurrent":   concurrent,
		}
	}

	ds := &models.Dataset{
		Kind:    models.KindTasks,
		Columns: RequiredColumns(models.KindTasks),
		Rows: []models.Row{
			taskRow("T1", "2", "[1,2]", "1"),
			taskRow("T2", "0", "[1]", "1"),
			taskRow("T3", "2", "1-3", "1"),
			taskRow("T4", "2", "7", "1"),
			taskRow("T5", "2", "[1]", "0"),
		},
	}

	issues := Check(ds)
	wants := []struct {
		row     int
		keyword string
	}{
		{2, "Duration"},
		{4, "PreferredPhases"},
		{5, "MaxConcurrent"},
	}
	if len(issues) != len(wants) {
		t.Fatalf("expected %d issues, got %d: %v", len(wants), len(issues), issues)
	}
	for i, want := range wants {
		if issues[i].Row != want.row || !strings.Contains(issues[i].Message, want.keyword) {
			t.Errorf("issue %d: got row %d %q, want row %d mentioning %s", i, issues[i].Row, issues[i].Message, want.row, want.keyword)
		}
	}
}

func TestCheck_MalformedCellsDoNotAbort(t *testing.T) {
	ds := clientDataset(
		clientRow("C1", "nope", "%%%", "{{{"),
		clientRow("C2", "3", "T1", "{}"),
	)

	issues := Check(ds)
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues for the malformed row, got %d: %v", len(issues), issues)
	}
	for _, is := range issues {
		if is.Row != 1 {
			t.Errorf("clean row flagged: %v", is)
		}
	}
}

package query

import (
	"testing"

	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/validate"
)

func testClients() *models.Dataset {
	mk := func(id, priority, group string) models.Row {
		return models.Row{
			"ClientID":         id,
			"ClientName":       "Client " + id,
			"PriorityLevel":    priority,
			"RequestedTaskIDs": "T1",
			"GroupTag":         group,
			"AttributesJSON":   "{}",
		}
	}
	return &models.Dataset{
		Kind:    models.KindClients,
		Columns: validate.RequiredColumns(models.KindClients),
		Rows: []models.Row{
			mk("C1", "1", "GroupA"),
			mk("C2", "3", "GroupA"),
			mk("C3", "5", "GroupB"),
			mk("C4", "oops", "GroupB"),
		},
	}
}

func ids(rows []models.Row, col string) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r[col])
	}
	return out
}

func TestFilter_EmptyQueryIsIdentity(t *testing.T) {
	ds := testClients()

	got := Filter("", ds)
	if len(got) != len(ds.Rows) {
		t.Fatalf("expected all %d rows, got %d", len(ds.Rows), len(got))
	}
	// Identity, not a filtered copy: same underlying rows, same order.
	for i := range got {
		if !sameRow(got[i], ds.Rows[i]) {
			t.Errorf("row %d: identity broken", i)
		}
	}

	got = Filter("   ", ds)
	if len(got) != len(ds.Rows) {
		t.Errorf("whitespace-only query should be identity, got %d rows", len(got))
	}
}

func sameRow(a, b models.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func TestFilter_PriorityGreater(t *testing.T) {
	ds := testClients()

	got := Filter("priority > 2", ds)
	want := []string{"C2", "C3"}
	gotIDs := ids(got, "ClientID")
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("expected %v, got %v", want, gotIDs)
			break
		}
	}
}

func TestFilter_NonNumericExcluded(t *testing.T) {
	ds := testClients()

	// C4 has PriorityLevel "oops" which coerces to NaN and fails > and <.
	for _, q := range []string{"priority > 0", "priority < 9"} {
		got := Filter(q, ds)
		for _, r := range got {
			if r["ClientID"] == "C4" {
				t.Errorf("query %q: row with non-numeric priority should be excluded", q)
			}
		}
	}
}

func TestFilter_FirstMatchWins(t *testing.T) {
	ds := testClients()

	// Both priority_greater and group_equals would match; only the first
	// pattern in the table applies, so GroupB rows with priority > 2 and
	// GroupA rows with priority > 2 are all kept.
	got := Filter("priority > 2 group = GroupA", ds)
	gotIDs := ids(got, "ClientID")
	if len(gotIDs) != 2 || gotIDs[0] != "C2" || gotIDs[1] != "C3" {
		t.Errorf("expected first-match-wins result [C2 C3], got %v", gotIDs)
	}
}

func TestFilter_GroupEquals(t *testing.T) {
	ds := testClients()

	got := Filter("group = GroupB", ds)
	gotIDs := ids(got, "ClientID")
	if len(gotIDs) != 2 || gotIDs[0] != "C3" || gotIDs[1] != "C4" {
		t.Errorf("expected [C3 C4], got %v", gotIDs)
	}
}

func TestFilter_SkillsContains(t *testing.T) {
	ds := &models.Dataset{
		Kind:    models.KindWorkers,
		Columns: validate.RequiredColumns(models.KindWorkers),
		Rows: []models.Row{
			{"WorkerID": "W1", "Skills": "welding,coding", "WorkerGroup": "G"},
			{"WorkerID": "W2", "Skills": "painting", "WorkerGroup": "G"},
		},
	}

	got := Filter("skills contain welding", ds)
	if len(got) != 1 || got[0]["WorkerID"] != "W1" {
		t.Errorf("expected [W1], got %v", ids(got, "WorkerID"))
	}
}

func TestFilter_SubstringFallback(t *testing.T) {
	ds := testClients()

	got := Filter("client c3", ds)
	if len(got) != 1 || got[0]["ClientID"] != "C3" {
		t.Errorf("expected substring fallback to find C3, got %v", ids(got, "ClientID"))
	}

	got = Filter("no such value anywhere", ds)
	if len(got) != 0 {
		t.Errorf("expected no rows, got %v", ids(got, "ClientID"))
	}
}

func TestFilter_DurationPatterns(t *testing.T) {
	ds := &models.Dataset{
		Kind:    models.KindTasks,
		Columns: validate.RequiredColumns(models.KindTasks),
		Rows: []models.Row{
			{"TaskID": "T1", "Duration": "1"},
			{"TaskID": "T2", "Duration": "3"},
			{"TaskID": "T3", "Duration": "5"},
		},
	}

	got := Filter("duration more than 2", ds)
	gotIDs := ids(got, "TaskID")
	if len(gotIDs) != 2 || gotIDs[0] != "T2" || gotIDs[1] != "T3" {
		t.Errorf("expected [T2 T3], got %v", gotIDs)
	}

	got = Filter("duration < 4", ds)
	gotIDs = ids(got, "TaskID")
	if len(gotIDs) != 2 || gotIDs[0] != "T1" || gotIDs[1] != "T2" {
		t.Errorf("expected [T1 T2], got %v", gotIDs)
	}
}

func TestFilterIndexes(t *testing.T) {
	ds := testClients()

	got := FilterIndexes("", ds)
	if len(got) != len(ds.Rows) {
		t.Fatalf("empty query should index every row, got %v", got)
	}
	for i, idx := range got {
		if idx != i {
			t.Errorf("expected identity order, got %v", got)
			break
		}
	}

	got = FilterIndexes("priority > 2", ds)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected [1 2], got %v", got)
	}
}

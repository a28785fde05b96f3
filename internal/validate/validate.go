// Package validate implements the per-dataset validation engine.
//
// Check is a pure function over a dataset snapshot: it never mutates its
// input, never panics on malformed cells, and recomputes every issue from
// scratch on each call. Issues are advisory; nothing here blocks editing.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/datasmith/datasmith/internal/models"
)

// Sentinel cell values that always fail their format check.
const (
	sentinelInvalidJSON = "INVALID_JSON"
	sentinelNotAList    = "not_a_list"
	sentinelBarePhase   = "7"
)

var (
	taskIDListRe = regexp.MustCompile(`^T\d+(,T\d+)*$`)
	phaseRangeRe = regexp.MustCompile(`^\d+-\d+$`)
)

// RequiredColumns returns the required column set for a dataset kind, in
// canonical order.
func RequiredColumns(kind models.DatasetKind) []string {
	switch kind {
	case models.KindClients:
		return []string{"ClientID", "ClientName", "PriorityLevel", "RequestedTaskIDs", "GroupTag", "AttributesJSON"}
	case models.KindWorkers:
		return []string{"WorkerID", "WorkerName", "Skills", "AvailableSlots", "MaxLoadPerPhase", "WorkerGroup", "QualificationLevel"}
	case models.KindTasks:
		return []string{"TaskID", "TaskName", "Category", "Duration", "RequiredSkills", "PreferredPhases", "MaxConcurrent"}
	}
	return nil
}

// Check validates a dataset and returns all issues in a fixed order: one
// aggregate missing-columns issue first, then per-row findings top to
// bottom. Row numbers in messages are 1-based. Checks against a column the
// dataset does not declare are skipped, so a missing column yields exactly
// one aggregate issue rather than one per row.
func Check(ds *models.Dataset) []models.Issue {
	var issues []models.Issue

	missing := missingColumns(ds)
	if len(missing) > 0 {
		issues = append(issues, models.Issue{
			Kind:    ds.Kind,
			Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		})
	}

	issues = append(issues, duplicateKeyIssues(ds)...)

	switch ds.Kind {
	case models.KindClients:
		issues = append(issues, checkClients(ds)...)
	case models.KindWorkers:
		issues = append(issues, checkWorkers(ds)...)
	case models.KindTasks:
		issues = append(issues, checkTasks(ds)...)
	}
	return issues
}

// CheckAll validates every dataset in the slice and concatenates the issues.
func CheckAll(sets []*models.Dataset) []models.Issue {
	var issues []models.Issue
	for _, ds := range sets {
		if ds != nil {
			issues = append(issues, Check(ds)...)
		}
	}
	return issues
}

func missingColumns(ds *models.Dataset) []string {
	var missing []string
	for _, col := range RequiredColumns(ds.Kind) {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// duplicateKeyIssues flags every occurrence of an identity key after the
// first. The first occurrence always wins.
func duplicateKeyIssues(ds *models.Dataset) []models.Issue {
	idCol := ds.Kind.IDColumn()
	if !ds.HasColumn(idCol) {
		return nil
	}

	var issues []models.Issue
	seen := make(map[string]bool)
	for i, row := range ds.Rows {
		id := row[idCol]
		if id == "" {
			continue
		}
		if seen[id] {
			issues = append(issues, models.Issue{
				Kind:    ds.Kind,
				Row:     i + 1,
				Message: fmt.Sprintf("row %d: duplicate %s %q", i+1, idCol, id),
			})
			continue
		}
		seen[id] = true
	}
	return issues
}

func checkClients(ds *models.Dataset) []models.Issue {
	var issues []models.Issue
	hasPriority := ds.HasColumn("PriorityLevel")
	hasTaskIDs := ds.HasColumn("RequestedTaskIDs")
	hasAttrs := ds.HasColumn("AttributesJSON")

	for i, row := range ds.Rows {
		n := i + 1
		if hasPriority {
			if p := row.Number("PriorityLevel"); !(p >= 1 && p <= 5) {
				issues = append(issues, issue(ds.Kind, n, "PriorityLevel must be between 1 and 5, got %q", row["PriorityLevel"]))
			}
		}
		if hasTaskIDs {
			if v := row["RequestedTaskIDs"]; v != "" && !taskIDListRe.MatchString(v) {
				issues = append(issues, issue(ds.Kind, n, "RequestedTaskIDs must be a comma-separated list of task IDs like T1,T2, got %q", v))
			}
		}
		if hasAttrs {
			if v := row["AttributesJSON"]; v != "" {
				if v == sentinelInvalidJSON || !models.ValidJSON(v) {
					issues = append(issues, issue(ds.Kind, n, "AttributesJSON is not valid JSON: %q", v))
				}
			}
		}
	}
	return issues
}

func checkWorkers(ds *models.Dataset) []models.Issue {
	var issues []models.Issue
	hasSlots := ds.HasColumn("AvailableSlots")
	hasLoad := ds.HasColumn("MaxLoadPerPhase")
	hasQual := ds.HasColumn("QualificationLevel")

	for i, row := range ds.Rows {
		n := i + 1
		if hasSlots {
			if v := row["AvailableSlots"]; v == sentinelNotAList || !isIntArray(v) {
				issues = append(issues, issue(ds.Kind, n, "AvailableSlots must be a JSON array of integers, got %q", v))
			}
		}
		if hasLoad {
			if l := row.Number("MaxLoadPerPhase"); !(l >= 0) {
				issues = append(issues, issue(ds.Kind, n, "MaxLoadPerPhase must be a non-negative number, got %q", row["MaxLoadPerPhase"]))
			}
		}
		if hasQual {
			if q := row.Number("QualificationLevel"); !(q >= 1 && q <= 5) {
				issues = append(issues, issue(ds.Kind, n, "QualificationLevel must be between 1 and 5, got %q", row["QualificationLevel"]))
			}
		}
	}
	return issues
}

func checkTasks(ds *models.Dataset) []models.Issue {
	var issues []models.Issue
	hasDuration := ds.HasColumn("Duration")
	hasPhases := ds.HasColumn("PreferredPhases")
	hasConcurrent := ds.HasColumn("MaxConcurrent")

	for i, row := range ds.Rows {
		n := i + 1
		if hasDuration {
			if d := row.Number("Duration"); !(d > 0) {
				issues = append(issues, issue(ds.Kind, n, "Duration must be greater than 0, got %q", row["Duration"]))
			}
		}
		if hasPhases {
			if v := row["PreferredPhases"]; v == sentinelBarePhase || !validPhases(v) {
				issues = append(issues, issue(ds.Kind, n, "PreferredPhases must be a JSON array of integers or a range like 1-3, got %q", v))
			}
		}
		if hasConcurrent {
			if c := row.Number("MaxConcurrent"); !(c > 0) {
				issues = append(issues, issue(ds.Kind, n, "MaxConcurrent must be greater than 0, got %q", row["MaxConcurrent"]))
			}
		}
	}
	return issues
}

// validPhases accepts either a JSON integer array or a range shorthand such
// as "1-3".
func validPhases(v string) bool {
	return isIntArray(v) || phaseRangeRe.MatchString(v)
}

// isIntArray reports whether v parses as a JSON array of integers.
func isIntArray(v string) bool {
	var vals []json.Number
	if err := json.Unmarshal([]byte(v), &vals); err != nil {
		return false
	}
	for _, n := range vals {
		if _, err := n.Int64(); err != nil {
			return false
		}
	}
	return true
}

func issue(kind models.DatasetKind, row int, format string, args ...interface{}) models.Issue {
	return models.Issue{
		Kind:    kind,
		Row:     row,
		Message: fmt.Sprintf("row %d: ", row) + fmt.Sprintf(format, args...),
	}
}

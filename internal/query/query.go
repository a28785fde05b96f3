// Package query turns free-text search strings into row filters.
//
// This is not a grammar: it is an ordered table of regular expressions. The
// first pattern that matches the query wins and is the only filter applied,
// even if later patterns would also match. When nothing matches, the query
// degrades to a case-insensitive substring scan over every cell.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/datasmith/datasmith/internal/models"
)

// pattern is one entry in the fixed filter table. Fields lists candidate
// columns in preference order; the first one the row actually has is used.
type pattern struct {
	name   string
	re     *regexp.Regexp
	fields []string
	apply  func(row models.Row, field, arg string) bool
}

func numericGreater(row models.Row, field, arg string) bool {
	rhs, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return false
	}
	return row.Number(field) > rhs
}

func numericLess(row models.Row, field, arg string) bool {
	rhs, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return false
	}
	return row.Number(field) < rhs
}

func stringEquals(row models.Row, field, arg string) bool {
	return strings.EqualFold(row[field], arg)
}

func stringContains(row models.Row, field, arg string) bool {
	return strings.Contains(strings.ToLower(row[field]), strings.ToLower(arg))
}

// patterns is evaluated in order; do not reorder without revisiting the
// first-match-wins contract.
var patterns = []pattern{
	{
		name:   "priority_greater",
		re:     regexp.MustCompile(`(?i)priority\s*(?:level)?\s*(?:>|greater than|above|over)\s*(\d+)`),
		fields: []string{"PriorityLevel"},
		apply:  numericGreater,
	},
	{
		name:   "priority_less",
		re:     regexp.MustCompile(`(?i)priority\s*(?:level)?\s*(?:<|less than|below|under)\s*(\d+)`),
		fields: []string{"PriorityLevel"},
		apply:  numericLess,
	},
	{
		name:   "duration_greater",
		re:     regexp.MustCompile(`(?i)duration\s*(?:>|greater than|more than|over)\s*(\d+)`),
		fields: []string{"Duration"},
		apply:  numericGreater,
	},
	{
		name:   "duration_less",
		re:     regexp.MustCompile(`(?i)duration\s*(?:<|less than|under)\s*(\d+)`),
		fields: []string{"Duration"},
		apply:  numericLess,
	},
	{
		name:   "group_equals",
		re:     regexp.MustCompile(`(?i)group\s*(?:=|is|equals?)\s*(\w+)`),
		fields: []string{"GroupTag", "WorkerGroup"},
		apply:  stringEquals,
	},
	{
		name:   "skills_contains",
		re:     regexp.MustCompile(`(?i)skills?\s*(?:contains?|with|includes?)\s*(\w+)`),
		fields: []string{"Skills", "RequiredSkills"},
		apply:  stringContains,
	},
}

// Filter applies the query to the dataset's rows and returns the matching
// subset in original order. An empty or whitespace-only query returns the
// input slice itself, not a copy.
func Filter(q string, ds *models.Dataset) []models.Row {
	if strings.TrimSpace(q) == "" {
		return ds.Rows
	}
	var out []models.Row
	for _, i := range FilterIndexes(q, ds) {
		out = append(out, ds.Rows[i])
	}
	return out
}

// FilterIndexes is Filter for callers that need row positions rather than
// the rows themselves (the grid maps its cursor back through these).
func FilterIndexes(q string, ds *models.Dataset) []int {
	if strings.TrimSpace(q) == "" {
		all := make([]int, len(ds.Rows))
		for i := range all {
			all[i] = i
		}
		return all
	}

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		field := pickField(ds, p.fields)
		arg := m[1]

		var out []int
		for i, row := range ds.Rows {
			if p.apply(row, field, arg) {
				out = append(out, i)
			}
		}
		return out
	}

	return substringScan(q, ds.Rows)
}

// pickField returns the first candidate column the dataset declares,
// falling back to the first candidate so absent columns still compare
// (and fail) uniformly.
func pickField(ds *models.Dataset, candidates []string) string {
	for _, c := range candidates {
		if ds.HasColumn(c) {
			return c
		}
	}
	return candidates[0]
}

// substringScan keeps rows where any stringified cell contains the query,
// case-insensitively.
func substringScan(q string, rows []models.Row) []int {
	needle := strings.ToLower(strings.TrimSpace(q))
	var out []int
	for i, row := range rows {
		for _, v := range row {
			if strings.Contains(strings.ToLower(v), needle) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

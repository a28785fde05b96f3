// Package insights derives rule recommendations and data-quality insights
// from batch statistics over the three datasets.
//
// Every analysis here is pure and deterministic: same tables in, same
// findings out. The Advisor wrapper presents them behind a latency-simulating
// asynchronous contract so a real model backend can be swapped in later
// without changing callers.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/datasmith/datasmith/internal/models"
)

// Recommendation is a suggested rule derived from the data.
type Recommendation struct {
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Confidence  float64                `json:"confidence"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Insight is an observation about data quality, not tied to any rule.
type Insight struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Insight severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// MineCoOccurrence tallies unordered pairs of task IDs requested together by
// clients and recommends co-run rules for the top pairs. Only pairs seen at
// least twice qualify; at most three are returned, ordered by count
// descending (pair name ascending on ties).
func MineCoOccurrence(clients *models.Dataset) []Recommendation {
	if clients == nil {
		return nil
	}

	counts := make(map[string]int)
	for _, row := range clients.Rows {
		ids := splitList(row["RequestedTaskIDs"])
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				if b < a {
					a, b = b, a
				}
				counts[a+"-"+b]++
			}
		}
	}

	pairs := make([]string, 0, len(counts))
	for p := range counts {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if counts[pairs[i]] != counts[pairs[j]] {
			return counts[pairs[i]] > counts[pairs[j]]
		}
		return pairs[i] < pairs[j]
	})
	if len(pairs) > 3 {
		pairs = pairs[:3]
	}

	var recs []Recommendation
	for _, p := range pairs {
		count := counts[p]
		if count < 2 {
			continue
		}
		tasks := strings.SplitN(p, "-", 2)
		recs = append(recs, Recommendation{
			Type:        "coRun",
			Title:       fmt.Sprintf("Tasks %s and %s are often requested together", tasks[0], tasks[1]),
			Description: fmt.Sprintf("%d clients request both; consider a co-run rule", count),
			Confidence:  math.Min(float64(count)/5, 0.9),
			Parameters: map[string]interface{}{
				"tasks": tasks,
				"count": count,
			},
		})
	}
	return recs
}

// DetectLoadImbalance groups workers by WorkerGroup and recommends a load
// cap for any group whose mean MaxLoadPerPhase exceeds 3. The suggested cap
// is floor(mean * 0.8).
func DetectLoadImbalance(workers *models.Dataset) []Recommendation {
	if workers == nil {
		return nil
	}

	sums := make(map[string]float64)
	sizes := make(map[string]int)
	for _, row := range workers.Rows {
		group := row["WorkerGroup"]
		if group == "" {
			continue
		}
		load := row.Number("MaxLoadPerPhase")
		if math.IsNaN(load) {
			continue
		}
		sums[group] += load
		sizes[group]++
	}

	groups := make([]string, 0, len(sums))
	for g := range sums {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var recs []Recommendation
	for _, g := range groups {
		mean := sums[g] / float64(sizes[g])
		if mean <= 3 {
			continue
		}
		suggested := int(math.Floor(mean * 0.8))
		recs = append(recs, Recommendation{
			Type:        "loadLimit",
			Title:       fmt.Sprintf("Group %s looks overloaded", g),
			Description: fmt.Sprintf("mean MaxLoadPerPhase is %.1f; consider capping at %d", mean, suggested),
			Confidence:  0.8,
			Parameters: map[string]interface{}{
				"workerGroup": g,
				"maxLoad":     suggested,
			},
		})
	}
	return recs
}

// PriorityVariance warns when client priorities show little diversity
// (population variance below 0.5). Rows with non-numeric priorities are
// ignored; with no numeric priorities at all there is nothing to report.
func PriorityVariance(clients *models.Dataset) []Insight {
	if clients == nil {
		return nil
	}

	var vals []float64
	for _, row := range clients.Rows {
		p := row.Number("PriorityLevel")
		if !math.IsNaN(p) {
			vals = append(vals, p)
		}
	}
	if len(vals) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(vals))

	if variance >= 0.5 {
		return nil
	}
	return []Insight{{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("client priorities show low diversity (variance %.2f); prioritization will have little effect", variance),
	}}
}

// SkillGap reports required skills no worker provides. Skills are compared
// lower-cased and trimmed.
func SkillGap(workers, tasks *models.Dataset) []Insight {
	if workers == nil || tasks == nil {
		return nil
	}

	available := make(map[string]bool)
	for _, row := range workers.Rows {
		for _, s := range splitList(strings.ToLower(row["Skills"])) {
			available[s] = true
		}
	}

	missingSet := make(map[string]bool)
	for _, row := range tasks.Rows {
		for _, s := range splitList(strings.ToLower(row["RequiredSkills"])) {
			if !available[s] {
				missingSet[s] = true
			}
		}
	}
	if len(missingSet) == 0 {
		return nil
	}

	missing := make([]string, 0, len(missingSet))
	for s := range missingSet {
		missing = append(missing, s)
	}
	sort.Strings(missing)

	return []Insight{{
		Severity: SeverityError,
		Message:  fmt.Sprintf("no worker covers required skills: %s", strings.Join(missing, ", ")),
	}}
}

// splitList splits a comma-delimited cell into trimmed, non-empty tokens.
func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

package insights

import (
	"regexp"
	"strings"

	"github.com/datasmith/datasmith/internal/models"
)

// Correction is a best-effort fix for a single validation issue.
type Correction struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

var (
	bareKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	taskTokRe = regexp.MustCompile(`^T\d+$`)
)

// SuggestCorrection inspects a validation issue and the offending row and
// proposes a replacement cell value. It returns ok=false when no heuristic
// applies; it never fails louder than that.
func SuggestCorrection(issue models.Issue, row models.Row) (Correction, bool) {
	switch {
	case strings.Contains(issue.Message, "AttributesJSON"):
		return Correction{Field: "AttributesJSON", Value: repairJSON(row["AttributesJSON"])}, true
	case strings.Contains(issue.Message, "RequestedTaskIDs"):
		return Correction{Field: "RequestedTaskIDs", Value: repairTaskIDs(row["RequestedTaskIDs"])}, true
	}
	return Correction{}, false
}

// repairJSON heuristically fixes common JSON mistakes: single quotes instead
// of double quotes and unquoted object keys. The repair is lossy; anything
// still unparseable collapses to an empty object.
func repairJSON(v string) string {
	fixed := strings.ReplaceAll(v, "'", `"`)
	fixed = bareKeyRe.ReplaceAllString(fixed, `$1"$2":`)
	if models.ValidJSON(fixed) {
		return fixed
	}
	return "{}"
}

// repairTaskIDs drops every token that is not a well-formed task ID and
// rejoins the rest.
func repairTaskIDs(v string) string {
	var kept []string
	for _, tok := range splitList(v) {
		if taskTokRe.MatchString(tok) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, ",")
}

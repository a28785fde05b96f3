// Package command interprets imperative sentences as structured mutations
// and previews their effect before anything is committed.
package command

import (
	"errors"
	"regexp"
	"strings"

	"github.com/datasmith/datasmith/internal/models"
)

// ErrNotUnderstood is returned when no sentence template matches. Callers
// should surface Examples alongside it.
var ErrNotUnderstood = errors.New("could not understand command")

// Examples are two phrasings shown to the user when parsing fails.
var Examples = []string{
	"Change all PriorityLevels to 5",
	"Set MaxLoadPerPhase to 2 for GroupB workers",
}

// The three sentence templates, in priority order. The first one that
// matches wins; no other phrasing is recognized.
var (
	changeAllRe = regexp.MustCompile(`(?i)^change all (\w+?)s? to (\d+)$`)
	setForRe    = regexp.MustCompile(`(?i)^set maxloadperphase to (\d+) for (\w+) workers$`)
	updateAllRe = regexp.MustCompile(`(?i)^update all (\w+) clients priority to (\d+)$`)
)

// Parse maps a free-text sentence to a ParsedCommand. Matching is
// case-insensitive but captured values keep the case as typed.
func Parse(text string) (*models.ParsedCommand, error) {
	text = strings.TrimSpace(text)

	if m := changeAllRe.FindStringSubmatch(text); m != nil {
		return &models.ParsedCommand{
			Action:  "change",
			Dataset: models.KindClients,
			Field:   m[1],
			Value:   m[2],
		}, nil
	}

	if m := setForRe.FindStringSubmatch(text); m != nil {
		return &models.ParsedCommand{
			Action:  "set",
			Dataset: models.KindWorkers,
			Field:   "MaxLoadPerPhase",
			Value:   m[1],
			Where: &models.Condition{
				Field: "WorkerGroup",
				Op:    models.OpEquals,
				Value: m[2],
			},
		}, nil
	}

	if m := updateAllRe.FindStringSubmatch(text); m != nil {
		return &models.ParsedCommand{
			Action:  "update",
			Dataset: models.KindClients,
			Field:   "PriorityLevel",
			Value:   m[2],
			Where: &models.Condition{
				Field: "GroupTag",
				Op:    models.OpEquals,
				Value: m[1],
			},
		}, nil
	}

	return nil, ErrNotUnderstood
}

// Preview holds the candidate row set computed from a command. The caller
// either applies it (swapping the dataset wholesale) or drops it; nothing
// is mutated until then.
type Preview struct {
	Command  *models.ParsedCommand
	Dataset  *models.Dataset
	Affected int
}

// Apply computes a candidate dataset by overwriting exactly one field on
// every row that satisfies the command's condition (or on every row when
// there is no condition). Affected counts rows whose serialized form
// actually changed.
func Apply(cmd *models.ParsedCommand, ds *models.Dataset) *Preview {
	candidate := ds.Clone()
	affected := 0

	for i, row := range ds.Rows {
		if cmd.Where != nil && !cmd.Where.Matches(row) {
			continue
		}
		before := row.Serialize()
		candidate.Rows[i][cmd.Field] = cmd.Value
		if candidate.Rows[i].Serialize() != before {
			affected++
		}
	}

	return &Preview{
		Command:  cmd,
		Dataset:  candidate,
		Affected: affected,
	}
}

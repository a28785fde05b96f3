// Package rules holds the rule records and prioritization weights a user
// authors during an editing session. Rules are opaque configuration: they
// are never evaluated against the data, only collected and exported.
package rules

import (
	"fmt"

	"github.com/google/uuid"
)

// RuleType is the fixed set of rule categories.
type RuleType string

const (
	TypeCoRun              RuleType = "coRun"
	TypeSlotRestriction    RuleType = "slotRestriction"
	TypeLoadLimit          RuleType = "loadLimit"
	TypePhaseWindow        RuleType = "phaseWindow"
	TypePatternMatch       RuleType = "patternMatch"
	TypePrecedenceOverride RuleType = "precedenceOverride"
)

// Types lists every rule type in canonical order.
var Types = []RuleType{
	TypeCoRun,
	TypeSlotRestriction,
	TypeLoadLimit,
	TypePhaseWindow,
	TypePatternMatch,
	TypePrecedenceOverride,
}

// Valid reports whether t is a known rule type.
func (t RuleType) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Rule is one authored rule. Parameters is an opaque bag destined for
// export.
type Rule struct {
	ID          string                 `json:"id"`
	Type        RuleType               `json:"type"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Set is an ordered collection of rules.
type Set struct {
	rules []Rule
}

// NewSet creates an empty rule set.
func NewSet() *Set {
	return &Set{}
}

// Add validates the type and appends a new rule, returning its ID.
func (s *Set) Add(t RuleType, description string, params map[string]interface{}) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("unknown rule type %q", t)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	r := Rule{
		ID:          uuid.New().String(),
		Type:        t,
		Description: description,
		Parameters:  params,
	}
	s.rules = append(s.rules, r)
	return r.ID, nil
}

// Remove deletes the rule with the given ID. Unknown IDs are a no-op
// returning false.
func (s *Set) Remove(id string) bool {
	for i, r := range s.rules {
		if r.ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the rules in insertion order. The returned slice is a copy.
func (s *Set) List() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// Replace swaps the whole rule list, used when restoring a session.
func (s *Set) Replace(rules []Rule) {
	s.rules = append([]Rule(nil), rules...)
}

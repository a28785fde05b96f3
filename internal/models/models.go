// Package models defines the core domain types for datasmith.
package models

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// DatasetKind identifies one of the three editable tables.
type DatasetKind string

const (
	KindClients DatasetKind = "clients"
	KindWorkers DatasetKind = "workers"
	KindTasks   DatasetKind = "tasks"
)

// Kinds lists all dataset kinds in their fixed order.
var Kinds = []DatasetKind{KindClients, KindWorkers, KindTasks}

// IDColumn returns the identity column for the dataset kind.
func (k DatasetKind) IDColumn() string {
	switch k {
	case KindClients:
		return "ClientID"
	case KindWorkers:
		return "WorkerID"
	case KindTasks:
		return "TaskID"
	}
	return ""
}

// Valid reports whether k is one of the three known kinds.
func (k DatasetKind) Valid() bool {
	return k == KindClients || k == KindWorkers || k == KindTasks
}

// Row maps column names to loosely-typed cell values. Cells hold plain
// strings, numbers rendered as strings, or JSON kept verbatim in a string.
// Column order lives on the owning Dataset, not on the Row.
type Row map[string]string

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Serialize renders the row as a canonical string for change detection.
// Keys are sorted so two rows with equal cells always serialize identically.
func (r Row) Serialize() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(r[k])
	}
	return b.String()
}

// Number parses the named cell as a float. Missing or non-numeric cells
// yield NaN, which fails every ordered comparison.
func (r Row) Number(column string) float64 {
	v, ok := r[column]
	if !ok {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Dataset is a named, ordered sequence of rows. Extra columns beyond the
// required set are preserved verbatim; rows are never sorted.
type Dataset struct {
	Kind    DatasetKind `json:"kind"`
	Columns []string    `json:"columns"`
	Rows    []Row       `json:"rows"`
}

// Clone returns a deep copy of the dataset for copy-on-write mutation.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Kind:    d.Kind,
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, r := range d.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// HasColumn reports whether the dataset declares the column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Issue is a non-blocking validation finding. Row is 1-based; 0 means the
// issue applies to the dataset as a whole.
type Issue struct {
	Kind    DatasetKind `json:"kind"`
	Row     int         `json:"row"`
	Message string      `json:"message"`
}

// ConditionOp is a comparison operator for command conditions.
type ConditionOp string

const (
	OpEquals   ConditionOp = "equals"
	OpContains ConditionOp = "contains"
	OpGreater  ConditionOp = "greater"
	OpLess     ConditionOp = "less"
)

// Condition restricts a parsed command to matching rows.
type Condition struct {
	Field string      `json:"field"`
	Op    ConditionOp `json:"op"`
	Value string      `json:"value"`
}

// Matches evaluates the condition against a row. equals and contains compare
// strings; greater and less coerce both sides numerically.
func (c *Condition) Matches(r Row) bool {
	cell := r[c.Field]
	switch c.Op {
	case OpEquals:
		return cell == c.Value
	case OpContains:
		return strings.Contains(cell, c.Value)
	case OpGreater:
		rhs, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return false
		}
		return r.Number(c.Field) > rhs
	case OpLess:
		rhs, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return false
		}
		return r.Number(c.Field) < rhs
	}
	return false
}

// ParsedCommand is the structured result of interpreting an imperative
// sentence. It is transient: discarded after apply or cancel.
type ParsedCommand struct {
	Action  string      `json:"action"`
	Dataset DatasetKind `json:"dataset"`
	Field   string      `json:"field"`
	Value   string      `json:"value"`
	Where   *Condition  `json:"where,omitempty"`
}

// ValidJSON reports whether s parses as JSON.
func ValidJSON(s string) bool {
	return json.Valid([]byte(s))
}

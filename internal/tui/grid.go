package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/query"
)

const (
	minColWidth = 4
	maxColWidth = 24
)

// newGrid builds the table component with the shared style set.
func newGrid() table.Model {
	t := table.New(table.WithFocused(true), table.WithHeight(12))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(mutedColor).
		BorderBottom(true).
		Bold(true).
		Foreground(cyanColor)
	s.Selected = s.Selected.
		Background(primaryColor).
		Foreground(fgColor).
		Bold(true)
	t.SetStyles(s)
	return t
}

// rebuildGrid re-derives the visible rows from the active dataset, the
// current filter and the current issue set. The first column flags rows
// with at least one validation issue.
func (a *App) rebuildGrid() {
	ds := a.datasets[a.active]
	if ds == nil {
		a.view = nil
		a.grid.SetRows(nil)
		a.grid.SetColumns([]table.Column{{Title: "no data loaded, try /load <file>", Width: 40}})
		return
	}

	a.view = query.FilterIndexes(a.filterQ, ds)
	if a.colIdx >= len(ds.Columns) {
		a.colIdx = max(0, len(ds.Columns)-1)
	}

	flagged := make(map[int]bool)
	for _, is := range a.issues {
		if is.Kind == ds.Kind && is.Row > 0 {
			flagged[is.Row-1] = true
		}
	}

	cols := make([]table.Column, 0, len(ds.Columns)+1)
	cols = append(cols, table.Column{Title: "!", Width: 1})
	for i, name := range ds.Columns {
		title := name
		if i == a.colIdx {
			title = "▸" + name
		}
		cols = append(cols, table.Column{Title: title, Width: columnWidth(ds, name)})
	}

	rows := make([]table.Row, 0, len(a.view))
	for _, idx := range a.view {
		rec := make(table.Row, 0, len(ds.Columns)+1)
		if flagged[idx] {
			rec = append(rec, "!")
		} else {
			rec = append(rec, " ")
		}
		for _, name := range ds.Columns {
			rec = append(rec, ds.Rows[idx][name])
		}
		rows = append(rows, rec)
	}

	// SetRows first so the column swap never renders against stale rows.
	a.grid.SetRows(nil)
	a.grid.SetColumns(cols)
	a.grid.SetRows(rows)
	if a.grid.Cursor() >= len(rows) {
		a.grid.SetCursor(max(0, len(rows)-1))
	}
}

func (a *App) renderGrid() string {
	return a.grid.View()
}

// columnWidth sizes a column to its longest cell, clamped to keep wide
// JSON blobs from eating the screen.
func columnWidth(ds *models.Dataset, name string) int {
	w := len(name) + 1
	for _, row := range ds.Rows {
		if n := len(row[name]); n > w {
			w = n
		}
	}
	if w < minColWidth {
		w = minColWidth
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

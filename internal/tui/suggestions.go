package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/datasmith/datasmith/internal/command"
)

// Suggestions provides autocomplete for the input line.
type Suggestions struct {
	items        []SuggestionItem
	filtered     []SuggestionItem
	selectedIdx  int
	visible      bool
	prefix       string // "/" or ">"
	currentInput string
}

// SuggestionItem represents a single autocomplete suggestion.
type SuggestionItem struct {
	Text        string
	Description string
	Type        string // "command" or "sentence"
}

// Insert returns the text to place into the input when accepted.
func (i SuggestionItem) Insert() string {
	if i.Type == "sentence" {
		return "> " + i.Text
	}
	return i.Text + " "
}

var commandSuggestions = []SuggestionItem{
	{Text: "/load", Description: "Load a CSV or XLSX file", Type: "command"},
	{Text: "/scan", Description: "Run the analysis scan", Type: "command"},
	{Text: "/export", Description: "Write CSVs, rules.json and prioritization.json", Type: "command"},
	{Text: "/workbook", Description: "Write all datasets as one XLSX", Type: "command"},
	{Text: "/issues", Description: "Show validation issues", Type: "command"},
	{Text: "/fix", Description: "Suggest a fix for the selected issue", Type: "command"},
	{Text: "/rules", Description: "Show rules and weights", Type: "command"},
	{Text: "/rule", Description: "Add a rule: /rule <type> <description>", Type: "command"},
	{Text: "/rmrule", Description: "Remove a rule by number", Type: "command"},
	{Text: "/weight", Description: "Set a prioritization slider 0-10", Type: "command"},
	{Text: "/insights", Description: "Show the last scan report", Type: "command"},
	{Text: "/grid", Description: "Back to the data grid", Type: "command"},
	{Text: "/clear", Description: "Clear the search filter", Type: "command"},
	{Text: "/save", Description: "Save the session now", Type: "command"},
	{Text: "/quit", Description: "Exit", Type: "command"},
}

func sentenceSuggestions() []SuggestionItem {
	items := make([]SuggestionItem, 0, len(command.Examples))
	for _, ex := range command.Examples {
		items = append(items, SuggestionItem{
			Text:        ex,
			Description: "Example mutation sentence",
			Type:        "sentence",
		})
	}
	return items
}

// NewSuggestions creates a new suggestions handler.
func NewSuggestions() *Suggestions {
	return &Suggestions{
		items:   commandSuggestions,
		visible: false,
	}
}

// Update updates suggestions based on current input.
func (s *Suggestions) Update(input string) {
	if input == "" {
		s.visible = false
		s.filtered = nil
		s.prefix = ""
		return
	}

	switch string(input[0]) {
	case "/":
		s.prefix = "/"
		s.items = commandSuggestions
		s.visible = true
		s.filter(strings.ToLower(strings.TrimPrefix(input, "/")))
	case ">":
		s.prefix = ">"
		s.items = sentenceSuggestions()
		s.visible = true
		s.filter(strings.ToLower(strings.TrimSpace(strings.TrimPrefix(input, ">"))))
	default:
		s.visible = false
		s.filtered = nil
		s.prefix = ""
	}

	s.currentInput = input
}

func (s *Suggestions) filter(query string) {
	if query == "" {
		s.filtered = s.items
		s.selectedIdx = 0
		return
	}

	s.filtered = []SuggestionItem{}
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Text), query) {
			s.filtered = append(s.filtered, item)
		}
	}
	s.selectedIdx = 0
}

// Next moves to the next suggestion.
func (s *Suggestions) Next() {
	if len(s.filtered) == 0 {
		return
	}
	s.selectedIdx = (s.selectedIdx + 1) % len(s.filtered)
}

// Prev moves to the previous suggestion.
func (s *Suggestions) Prev() {
	if len(s.filtered) == 0 {
		return
	}
	s.selectedIdx--
	if s.selectedIdx < 0 {
		s.selectedIdx = len(s.filtered) - 1
	}
}

// Selected returns the currently selected suggestion.
func (s *Suggestions) Selected() *SuggestionItem {
	if !s.visible || len(s.filtered) == 0 || s.selectedIdx >= len(s.filtered) {
		return nil
	}
	return &s.filtered[s.selectedIdx]
}

// IsVisible returns whether suggestions are currently visible.
func (s *Suggestions) IsVisible() bool {
	return s.visible && len(s.filtered) > 0
}

// Render renders the suggestions dropdown.
func (s *Suggestions) Render(width int) string {
	if !s.IsVisible() {
		return ""
	}

	var b strings.Builder

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1).
		Width(width - 4)

	pickedStyle := lipgloss.NewStyle().
		Background(primaryColor).
		Foreground(fgColor).
		Bold(true)

	plainStyle := lipgloss.NewStyle().
		Foreground(fgColor)

	descStyle := lipgloss.NewStyle().
		Foreground(mutedColor).
		Italic(true)

	header := "Commands"
	if s.prefix == ">" {
		header = "Sentences"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(header))
	b.WriteString("\n")

	maxVisible := 5
	for i, item := range s.filtered {
		if i >= maxVisible {
			more := len(s.filtered) - maxVisible
			b.WriteString(descStyle.Render(fmt.Sprintf("  ... and %d more", more)))
			break
		}

		line := ""
		if i == s.selectedIdx {
			line = pickedStyle.Render("▶ " + item.Text)
			if item.Description != "" {
				line += " " + pickedStyle.Render(item.Description)
			}
		} else {
			line = plainStyle.Render("  " + item.Text)
			if item.Description != "" {
				line += " " + descStyle.Render(item.Description)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return boxStyle.Render(b.String())
}

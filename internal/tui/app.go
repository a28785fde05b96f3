// Package tui provides the interactive terminal UI for datasmith.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/datasmith/datasmith/internal/command"
	"github.com/datasmith/datasmith/internal/config"
	"github.com/datasmith/datasmith/internal/export"
	"github.com/datasmith/datasmith/internal/ingest"
	"github.com/datasmith/datasmith/internal/insights"
	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/rules"
	"github.com/datasmith/datasmith/internal/store"
	"github.com/datasmith/datasmith/internal/validate"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#6366F1")
	successColor   = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	fgColor        = lipgloss.Color("#F9FAFB")
	cyanColor      = lipgloss.Color("#06B6D4")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 2)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Padding(0, 1)
)

// App is the main TUI application model.
type App struct {
	cfg     *config.Config
	store   *store.Store
	session *store.Session
	advisor *insights.Advisor
	logger  *zap.Logger

	datasets map[models.DatasetKind]*models.Dataset
	active   models.DatasetKind
	issues   []models.Issue

	ruleSet *rules.Set
	weights rules.Weights

	grid    table.Model
	view    []int // dataset row index behind each visible grid row
	colIdx  int
	filterQ string

	input       textinput.Model
	suggestions *Suggestions

	mode     string // "grid", "issues", "rules", "insights"
	issueIdx int

	editing  bool
	editRow  int
	editCol  string
	pending  *command.Preview
	report   *insights.Report
	scanning bool

	message string
	width   int
	height  int
}

// New creates the TUI application. Store may be nil, in which case sessions
// are not persisted.
func New(cfg *config.Config, st *store.Store, sess *store.Session, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "search | > sentence command | /load /scan /export ..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 80

	a := &App{
		cfg:         cfg,
		store:       st,
		session:     sess,
		advisor:     insights.NewAdvisor(time.Duration(cfg.Advisor.LatencyMS)*time.Millisecond, logger),
		logger:      logger,
		datasets:    map[models.DatasetKind]*models.Dataset{},
		active:      models.KindClients,
		ruleSet:     rules.NewSet(),
		weights:     rules.DefaultWeights(),
		grid:        newGrid(),
		input:       ti,
		suggestions: NewSuggestions(),
		mode:        "grid",
	}
	a.restoreSession()
	a.revalidate()
	a.rebuildGrid()
	return a
}

// restoreSession loads the last saved snapshots, if any.
func (a *App) restoreSession() {
	if a.store == nil || a.session == nil {
		return
	}
	for _, kind := range models.Kinds {
		ds, err := a.store.LoadDataset(a.session.ID, kind)
		if err != nil {
			a.logger.Warn("restore dataset failed", zap.String("kind", string(kind)), zap.Error(err))
			continue
		}
		if ds != nil {
			a.datasets[kind] = ds
		}
	}
	if list, err := a.store.LoadRules(a.session.ID); err == nil {
		a.ruleSet.Replace(list)
	} else {
		a.logger.Warn("restore rules failed", zap.Error(err))
	}
	if w, err := a.store.LoadWeights(a.session.ID); err == nil {
		a.weights = w
	} else {
		a.logger.Warn("restore weights failed", zap.Error(err))
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A pending preview owns the keyboard until resolved.
		if a.pending != nil {
			switch msg.String() {
			case "enter":
				p := a.pending
				a.pending = nil
				a.message = fmt.Sprintf("Applied: %d rows changed", p.Affected)
				return a, a.replaceDataset(p.Dataset)
			case "esc", "ctrl+c":
				a.pending = nil
				a.message = "Cancelled"
			}
			return a, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit

		case "esc":
			if a.editing {
				a.editing = false
				a.input.SetValue("")
				return a, nil
			}
			if a.input.Value() != "" {
				a.input.SetValue("")
				a.suggestions.Update("")
				return a, nil
			}
			if a.mode != "grid" {
				a.mode = "grid"
				return a, nil
			}
			if a.filterQ != "" {
				a.filterQ = ""
				a.rebuildGrid()
				a.message = "Filter cleared"
				return a, nil
			}

		case "up":
			if a.suggestions.IsVisible() {
				a.suggestions.Prev()
			} else if a.mode == "issues" && a.issueIdx > 0 {
				a.issueIdx--
			} else if a.mode == "grid" {
				a.grid.MoveUp(1)
			}
			return a, nil

		case "down":
			if a.suggestions.IsVisible() {
				a.suggestions.Next()
			} else if a.mode == "issues" && a.issueIdx < len(a.issues)-1 {
				a.issueIdx++
			} else if a.mode == "grid" {
				a.grid.MoveDown(1)
			}
			return a, nil

		case "pgup":
			if a.mode == "grid" {
				a.grid.MoveUp(a.grid.Height())
				return a, nil
			}

		case "pgdown":
			if a.mode == "grid" {
				a.grid.MoveDown(a.grid.Height())
				return a, nil
			}

		case "left", "right":
			// Column moves only when not typing, so the text cursor
			// keeps the keys otherwise.
			if a.mode == "grid" && !a.editing && a.input.Value() == "" {
				ds := a.datasets[a.active]
				if ds != nil && len(ds.Columns) > 0 {
					if msg.String() == "left" && a.colIdx > 0 {
						a.colIdx--
					}
					if msg.String() == "right" && a.colIdx < len(ds.Columns)-1 {
						a.colIdx++
					}
				}
				return a, nil
			}

		case "tab":
			if a.suggestions.IsVisible() {
				if selected := a.suggestions.Selected(); selected != nil {
					a.input.SetValue(selected.Insert())
					a.input.CursorEnd()
					a.suggestions.Update("")
				}
				return a, nil
			}
			if !a.editing && a.input.Value() == "" {
				a.cycleDataset()
				return a, nil
			}

		case "enter":
			if a.suggestions.IsVisible() {
				if selected := a.suggestions.Selected(); selected != nil {
					a.input.SetValue(selected.Insert())
					a.input.CursorEnd()
					a.suggestions.Update("")
				}
				return a, nil
			}
			if a.editing {
				return a, a.commitEdit()
			}
			text := strings.TrimSpace(a.input.Value())
			if text != "" {
				a.input.SetValue("")
				a.suggestions.Update("")
				return a, a.dispatch(text)
			}
			if a.mode == "grid" {
				a.beginEdit()
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6
		a.grid.SetWidth(msg.Width)
		a.grid.SetHeight(a.contentHeight())
		a.rebuildGrid()

	case datasetLoadedMsg:
		a.active = msg.dataset.Kind
		a.colIdx = 0
		a.message = fmt.Sprintf("Loaded %d %s rows from %s", len(msg.dataset.Rows), msg.dataset.Kind, msg.path)
		return a, a.replaceDataset(msg.dataset)

	case scanDoneMsg:
		a.scanning = false
		a.report = msg.report
		a.mode = "insights"
		a.message = fmt.Sprintf("Scan complete: %d recommendations, %d insights",
			len(msg.report.Recommendations), len(msg.report.Insights))

	case correctionMsg:
		if !msg.ok {
			a.message = "No suggested fix for this issue"
			return a, nil
		}
		ds := a.datasets[msg.issue.Kind]
		if ds == nil || msg.issue.Row < 1 || msg.issue.Row > len(ds.Rows) {
			a.message = "Issue no longer matches the data"
			return a, nil
		}
		candidate := ds.Clone()
		candidate.Rows[msg.issue.Row-1][msg.correction.Field] = msg.correction.Value
		a.message = fmt.Sprintf("Fixed %s on row %d", msg.correction.Field, msg.issue.Row)
		return a, a.replaceDataset(candidate)

	case exportDoneMsg:
		a.message = fmt.Sprintf("Exported %d files to %s", msg.count, msg.dir)

	case savedMsg:
		// Autosave is silent on success.

	case statusMsg:
		a.message = string(msg)

	case errMsg:
		a.message = "Error: " + msg.err.Error()
	}

	// Update input
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	// Update suggestions based on input, except while a cell edit owns it
	if !a.editing {
		a.suggestions.Update(a.input.Value())
	}

	return a, tea.Batch(cmds...)
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderHeader() + "\n")
	b.WriteString(strings.Repeat("─", max(a.width, 1)) + "\n")

	switch a.mode {
	case "grid":
		b.WriteString(a.renderGrid())
	case "issues":
		b.WriteString(a.renderIssues(a.contentHeight()))
	case "rules":
		b.WriteString(a.renderRules())
	case "insights":
		b.WriteString(a.renderInsights())
	}

	// Message bar
	if a.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(successColor)
		if strings.HasPrefix(a.message, "Error") {
			msgStyle = lipgloss.NewStyle().Foreground(errorColor)
		}
		b.WriteString("\n" + msgStyle.Render(a.message))
	} else {
		b.WriteString("\n")
	}

	// Pending preview banner
	if a.pending != nil {
		b.WriteString("\n" + previewStyle.Render(describePreview(a.pending)))
	}

	// Input box
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Render(a.input.View()))

	if a.suggestions.IsVisible() {
		b.WriteString("\n")
		b.WriteString(a.suggestions.Render(a.width))
	}
	b.WriteString("\n")

	b.WriteString(statusBarStyle.Width(a.width).Render(a.statusLine()))

	return b.String()
}

func (a *App) renderHeader() string {
	header := titleStyle.Render("DATASMITH")

	for _, kind := range models.Kinds {
		n := 0
		if ds := a.datasets[kind]; ds != nil {
			n = len(ds.Rows)
		}
		label := fmt.Sprintf("%s(%d)", kind, n)
		if kind == a.active {
			header += activeTabStyle.Render(label)
		} else {
			header += tabStyle.Render(label)
		}
	}

	badge := lipgloss.NewStyle().Foreground(successColor).Render("● 0 issues")
	if len(a.issues) > 0 {
		badge = lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("● %d issues", len(a.issues)))
	}
	header += "  " + badge

	if a.session != nil {
		header += "  " + lipgloss.NewStyle().Foreground(mutedColor).Render("session:"+a.session.Name)
	}
	return header
}

func (a *App) statusLine() string {
	switch a.mode {
	case "grid":
		col := "-"
		if ds := a.datasets[a.active]; ds != nil && a.colIdx < len(ds.Columns) {
			col = ds.Columns[a.colIdx]
		}
		filter := ""
		if a.filterQ != "" {
			filter = fmt.Sprintf(" | filter: %q (%d match)", a.filterQ, len(a.view))
		}
		if a.editing {
			return fmt.Sprintf(" editing %s | Enter:save | Esc:cancel", a.editCol)
		}
		return fmt.Sprintf(" col: %s%s | ↑↓←→:move | Tab:dataset | Enter:edit | /:commands | Ctrl+C:quit", col, filter)
	case "issues":
		return fmt.Sprintf(" Issues: %d | ↑↓:nav | /fix:suggest fix | Esc:grid", len(a.issues))
	case "rules":
		return fmt.Sprintf(" Rules: %d | /rule <type> <desc> | /weight <name> <0-10> | Esc:grid", a.ruleSet.Len())
	case "insights":
		return " Insights | /scan:re-run | Esc:grid"
	}
	return " Esc:grid | Ctrl+C:quit"
}

// cycleDataset advances the active tab in fixed kind order.
func (a *App) cycleDataset() {
	for i, kind := range models.Kinds {
		if kind == a.active {
			a.active = models.Kinds[(i+1)%len(models.Kinds)]
			break
		}
	}
	a.colIdx = 0
	a.filterQ = ""
	a.rebuildGrid()
}

// dispatch routes one submitted line: "/" app commands, ">" mutation
// sentences, anything else a search query.
func (a *App) dispatch(text string) tea.Cmd {
	switch {
	case strings.HasPrefix(text, "/"):
		return a.appCommand(text)
	case strings.HasPrefix(text, ">"):
		return a.sentenceCommand(strings.TrimSpace(strings.TrimPrefix(text, ">")))
	default:
		a.mode = "grid"
		a.filterQ = text
		a.rebuildGrid()
		total := 0
		if ds := a.datasets[a.active]; ds != nil {
			total = len(ds.Rows)
		}
		a.message = fmt.Sprintf("%d of %d rows match", len(a.view), total)
		return nil
	}
}

// sentenceCommand parses a mutation sentence and stages a preview; nothing
// changes until the preview is accepted.
func (a *App) sentenceCommand(text string) tea.Cmd {
	cmd, err := command.Parse(text)
	if err != nil {
		a.message = fmt.Sprintf("Error: %v. Try: %s", err, strings.Join(command.Examples, " | "))
		return nil
	}
	ds := a.datasets[cmd.Dataset]
	if ds == nil {
		a.message = fmt.Sprintf("Error: no %s data loaded", cmd.Dataset)
		return nil
	}
	a.pending = command.Apply(cmd, ds)
	a.message = ""
	return nil
}

func (a *App) appCommand(text string) tea.Cmd {
	parts := strings.Fields(strings.TrimPrefix(text, "/"))
	if len(parts) == 0 {
		return nil
	}
	name, args := parts[0], parts[1:]

	switch name {
	case "load":
		if len(args) < 1 {
			a.message = "Usage: /load <file.csv|file.xlsx>"
			return nil
		}
		return loadCmd(args[0])

	case "grid", "issues", "rules", "insights":
		a.mode = name
		return nil

	case "scan":
		if a.scanning {
			a.message = "Scan already running"
			return nil
		}
		a.scanning = true
		a.mode = "insights"
		a.message = "Scanning..."
		return a.scanCmd()

	case "fix":
		if a.mode != "issues" || len(a.issues) == 0 {
			a.message = "Open /issues and select one first"
			return nil
		}
		return a.fixCmd(a.issues[a.issueIdx])

	case "export":
		return a.exportCmd()

	case "workbook":
		return a.workbookCmd()

	case "rule":
		if len(args) < 2 {
			a.message = "Usage: /rule <type> <description> (types: " + ruleTypeNames() + ")"
			return nil
		}
		if _, err := a.ruleSet.Add(rules.RuleType(args[0]), strings.Join(args[1:], " "), nil); err != nil {
			a.message = fmt.Sprintf("Error: %v (types: %s)", err, ruleTypeNames())
			return nil
		}
		a.mode = "rules"
		a.message = fmt.Sprintf("Rule added (%d total)", a.ruleSet.Len())
		return a.saveRulesCmd()

	case "rmrule":
		if len(args) < 1 {
			a.message = "Usage: /rmrule <number>"
			return nil
		}
		n, err := strconv.Atoi(args[0])
		list := a.ruleSet.List()
		if err != nil || n < 1 || n > len(list) {
			a.message = fmt.Sprintf("Usage: /rmrule <1-%d>", len(list))
			return nil
		}
		a.ruleSet.Remove(list[n-1].ID)
		a.mode = "rules"
		a.message = fmt.Sprintf("Rule %d removed", n)
		return a.saveRulesCmd()

	case "weight":
		if len(args) < 2 {
			a.message = "Usage: /weight <name> <0-10> (names: " + strings.Join(rules.Names, ", ") + ")"
			return nil
		}
		v, err := strconv.Atoi(args[1])
		if err != nil || !a.weights.Set(args[0], v) {
			a.message = "Usage: /weight <name> <0-10> (names: " + strings.Join(rules.Names, ", ") + ")"
			return nil
		}
		a.mode = "rules"
		a.message = fmt.Sprintf("Weight %s set", args[0])
		return a.saveWeightsCmd()

	case "clear":
		a.filterQ = ""
		a.rebuildGrid()
		a.message = "Filter cleared"
		return nil

	case "save":
		a.message = "Saved"
		return a.saveAllCmd()

	case "q", "quit", "exit":
		return tea.Quit

	default:
		a.message = fmt.Sprintf("Unknown: /%s (try /load, /scan, /export, /rule, /weight)", name)
		return nil
	}
}

// beginEdit moves the selected cell's value into the input for editing.
func (a *App) beginEdit() {
	ds := a.datasets[a.active]
	if ds == nil || len(a.view) == 0 || len(ds.Columns) == 0 {
		return
	}
	cursor := a.grid.Cursor()
	if cursor < 0 || cursor >= len(a.view) {
		return
	}
	a.editing = true
	a.editRow = a.view[cursor]
	a.editCol = ds.Columns[a.colIdx]
	a.input.SetValue(ds.Rows[a.editRow][a.editCol])
	a.input.CursorEnd()
	a.suggestions.Update("")
}

// commitEdit writes the edited value back through a full dataset
// replacement, so validation always sees a consistent snapshot.
func (a *App) commitEdit() tea.Cmd {
	value := a.input.Value()
	a.editing = false
	a.input.SetValue("")

	ds := a.datasets[a.active]
	if ds == nil || a.editRow >= len(ds.Rows) {
		return nil
	}
	candidate := ds.Clone()
	candidate.Rows[a.editRow][a.editCol] = value
	a.message = fmt.Sprintf("Set %s on row %d", a.editCol, a.editRow+1)
	return a.replaceDataset(candidate)
}

// replaceDataset swaps in a new snapshot, re-validates everything and
// schedules an autosave.
func (a *App) replaceDataset(ds *models.Dataset) tea.Cmd {
	a.datasets[ds.Kind] = ds
	a.revalidate()
	a.rebuildGrid()
	return a.saveDatasetCmd(ds)
}

// revalidate runs the full validation pass over every loaded dataset.
func (a *App) revalidate() {
	var sets []*models.Dataset
	for _, kind := range models.Kinds {
		if ds := a.datasets[kind]; ds != nil {
			sets = append(sets, ds)
		}
	}
	a.issues = validate.CheckAll(sets)
	if a.issueIdx >= len(a.issues) {
		a.issueIdx = max(0, len(a.issues)-1)
	}
}

func (a *App) contentHeight() int {
	h := a.height - 9
	if h < 5 {
		h = 5
	}
	return h
}

// --- async commands ---

func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ds, err := ingest.Load(path)
		if err != nil {
			return errMsg{err}
		}
		return datasetLoadedMsg{path: path, dataset: ds}
	}
}

func (a *App) scanCmd() tea.Cmd {
	clients := a.datasets[models.KindClients]
	workers := a.datasets[models.KindWorkers]
	tasks := a.datasets[models.KindTasks]
	return func() tea.Msg {
		report, err := a.advisor.Scan(context.Background(), clients, workers, tasks)
		if err != nil {
			return errMsg{err}
		}
		return scanDoneMsg{report}
	}
}

func (a *App) fixCmd(issue models.Issue) tea.Cmd {
	ds := a.datasets[issue.Kind]
	if ds == nil || issue.Row < 1 || issue.Row > len(ds.Rows) {
		a.message = "No row-level fix for this issue"
		return nil
	}
	row := ds.Rows[issue.Row-1]
	return func() tea.Msg {
		c, ok, err := a.advisor.Correct(context.Background(), issue, row)
		if err != nil {
			return errMsg{err}
		}
		return correctionMsg{issue: issue, correction: c, ok: ok}
	}
}

func (a *App) exportCmd() tea.Cmd {
	dir := a.cfg.ExportDir
	sets := a.snapshot()
	ruleSet := a.ruleSet
	weights := a.weights
	return func() tea.Msg {
		count := 0
		for _, ds := range sets {
			if ds != nil {
				count++
			}
		}
		if err := export.WriteDatasets(dir, sets); err != nil {
			return errMsg{err}
		}
		if err := export.WriteRulesFile(dir, ruleSet, time.Now()); err != nil {
			return errMsg{err}
		}
		if err := export.WriteWeightsFile(dir, weights); err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{dir: dir, count: count + 2}
	}
}

func (a *App) workbookCmd() tea.Cmd {
	dir := a.cfg.ExportDir
	sets := a.snapshot()
	return func() tea.Msg {
		path := dir + "/datasmith.xlsx"
		if err := export.WriteWorkbook(path, sets); err != nil {
			return errMsg{err}
		}
		return statusMsg("Wrote " + path)
	}
}

func (a *App) snapshot() []*models.Dataset {
	var sets []*models.Dataset
	for _, kind := range models.Kinds {
		sets = append(sets, a.datasets[kind])
	}
	return sets
}

func (a *App) saveDatasetCmd(ds *models.Dataset) tea.Cmd {
	if a.store == nil || a.session == nil {
		return nil
	}
	id := a.session.ID
	return func() tea.Msg {
		if err := a.store.SaveDataset(id, ds); err != nil {
			a.logger.Warn("autosave failed", zap.String("kind", string(ds.Kind)), zap.Error(err))
			return errMsg{fmt.Errorf("autosave: %w", err)}
		}
		return savedMsg{}
	}
}

func (a *App) saveRulesCmd() tea.Cmd {
	if a.store == nil || a.session == nil {
		return nil
	}
	id := a.session.ID
	list := a.ruleSet.List()
	return func() tea.Msg {
		if err := a.store.SaveRules(id, list); err != nil {
			return errMsg{fmt.Errorf("autosave: %w", err)}
		}
		return savedMsg{}
	}
}

func (a *App) saveWeightsCmd() tea.Cmd {
	if a.store == nil || a.session == nil {
		return nil
	}
	id := a.session.ID
	w := a.weights
	return func() tea.Msg {
		if err := a.store.SaveWeights(id, w); err != nil {
			return errMsg{fmt.Errorf("autosave: %w", err)}
		}
		return savedMsg{}
	}
}

func (a *App) saveAllCmd() tea.Cmd {
	var cmds []tea.Cmd
	for _, kind := range models.Kinds {
		if ds := a.datasets[kind]; ds != nil {
			cmds = append(cmds, a.saveDatasetCmd(ds))
		}
	}
	cmds = append(cmds, a.saveRulesCmd(), a.saveWeightsCmd())
	return tea.Batch(cmds...)
}

// describePreview renders the pending mutation as one confirmation line.
func describePreview(p *command.Preview) string {
	cmd := p.Command
	where := ""
	if cmd.Where != nil {
		where = fmt.Sprintf(" where %s %s %s", cmd.Where.Field, cmd.Where.Op, cmd.Where.Value)
	}
	return fmt.Sprintf("Set %s = %s on %s%s  →  %d rows affected   Enter:apply  Esc:cancel",
		cmd.Field, cmd.Value, cmd.Dataset, where, p.Affected)
}

func ruleTypeNames() string {
	names := make([]string, len(rules.Types))
	for i, t := range rules.Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type datasetLoadedMsg struct {
	path    string
	dataset *models.Dataset
}

type scanDoneMsg struct {
	report *insights.Report
}

type correctionMsg struct {
	issue      models.Issue
	correction insights.Correction
	ok         bool
}

type exportDoneMsg struct {
	dir   string
	count int
}

type savedMsg struct{}

type statusMsg string

type errMsg struct {
	err error
}

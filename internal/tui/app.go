// Package tui provides the interactive Bubble Tea client for fintrack.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/api"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/reconcile"
	"github.com/theirongolddev/fintrack/internal/report"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// App is the root Bubble Tea model.
type App struct {
	backend Backend
	cfg     config.Config
	save    func(config.Config) error

	// Per-screen data
	dash      dashboardState
	txs       transactionsState
	analytics analyticsState
	budget    budgetState
	settings  settingsState

	// Refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	pending         int // load commands in flight

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	toast    *components.Toast
	toastSeq int

	// Active add/edit/delete form
	form     *huh.Form
	formKind formKind
	formVals *formValues
}

type dashboardState struct {
	view   report.DashboardView
	loaded bool
	err    error
}

type analyticsState struct {
	view   report.AnalyticsView
	loaded bool
	err    error
}

type budgetState struct {
	month  model.Month
	view   reconcile.View
	loaded bool
	err    error
	cursor int // index into view.Budgets
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	toastDuration = 3 * time.Second
)

// NewApp creates the TUI model for the backend b.
func NewApp(b Backend, cfg config.Config) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		backend:         b,
		cfg:             cfg,
		save:            config.Save,
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: cfg.RefreshInterval(),
		spinner:         sp,
		pending:         4,
	}
	a.budget.month = cfg.Month(time.Now())
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		tickCmd(),
		a.loadAll(),
	)
}

// loadAll starts every screen's fetch. NewApp counts them as pending.
func (a App) loadAll() tea.Cmd {
	return tea.Batch(
		loadDashboardCmd(a.backend),
		loadTransactionsCmd(a.backend, a.cfg.General.RecentLimit),
		loadAnalyticsCmd(a.backend),
		loadBudgetCmd(a.backend, a.budget.month),
	)
}

func (a App) refreshAll() (App, tea.Cmd) {
	a.pending += 4
	return a, a.loadAll()
}

func (a App) reloadBudget() (App, tea.Cmd) {
	a.pending++
	return a, loadBudgetCmd(a.backend, a.budget.month)
}

func (a App) loadDone() App {
	a.pending = max(a.pending-1, 0)
	if a.pending == 0 {
		a.lastRefresh = time.Now()
	}
	return a
}

func (a App) refreshing() bool { return a.pending > 0 }

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width-4, 70)).WithHeight(msg.Height - 4)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && a.form == nil {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a.updateKey(msg)

	case DashboardLoadedMsg:
		a = a.loadDone()
		a.dash.err = msg.Err
		if msg.Err == nil {
			a.dash.view = msg.View
			a.dash.loaded = true
		}
		return a, nil

	case TransactionsLoadedMsg:
		a = a.loadDone()
		a.txs.err = msg.Err
		if msg.Err == nil {
			a.txs.items = msg.Transactions
			a.txs.loaded = true
			a.txs.clamp()
		}
		return a, nil

	case AnalyticsLoadedMsg:
		a = a.loadDone()
		a.analytics.err = msg.Err
		if msg.Err == nil {
			a.analytics.view = msg.View
			a.analytics.loaded = true
		}
		return a, nil

	case BudgetLoadedMsg:
		a = a.loadDone()
		if msg.Month != a.budget.month {
			return a, nil
		}
		a.budget.err = msg.Err
		if msg.Err == nil {
			a.budget.view = msg.View
			a.budget.loaded = true
			a.budget.cursor = min(a.budget.cursor, max(len(msg.View.Budgets)-1, 0))
		}
		return a, nil

	case MutationDoneMsg:
		if msg.Err != nil {
			return a.showError(msg.Err, msg.Action)
		}
		var toastCmd, loadCmd tea.Cmd
		a, toastCmd = a.showToast(components.ToastSuccess, msg.Success)
		a, loadCmd = a.refreshAll()
		return a, tea.Batch(toastCmd, loadCmd)

	case toastExpiredMsg:
		if msg.seq == a.toastSeq {
			a.toast = nil
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.autoRefresh && !a.refreshing() &&
			time.Since(a.lastRefresh) >= a.refreshInterval {
			var cmd tea.Cmd
			a, cmd = a.refreshAll()
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	// Cursor blinks and other internal messages belong to the active form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.activeTab == components.TabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Tab-local bindings take precedence over the global ones.
	switch a.activeTab {
	case components.TabTransactions:
		if m, cmd, ok := a.updateTransactionsKey(key); ok {
			return m, cmd
		}
	case components.TabBudget:
		if m, cmd, ok := a.updateBudgetKey(key); ok {
			return m, cmd
		}
	case components.TabSettings:
		if m, cmd, ok := a.updateSettingsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if a.refreshing() {
			return a, nil
		}
		return a.refreshAll()
	case "R":
		a.autoRefresh = !a.autoRefresh
		cfg := a.cfg
		cfg.TUI.AutoRefresh = a.autoRefresh
		if err := a.save(cfg); err != nil {
			return a.showError(err, "save settings")
		}
		a.cfg = cfg
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if r := []rune(key); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case components.TabTransactions:
			a.txs.move(-1)
		case components.TabBudget:
			a.budget.move(-1)
		}
	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case components.TabTransactions:
			a.txs.move(1)
		case components.TabBudget:
			a.budget.move(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y <= 1 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (b *budgetState) move(delta int) {
	b.cursor = min(max(b.cursor+delta, 0), max(len(b.view.Budgets)-1, 0))
}

func (b budgetState) selected() (model.BudgetEntry, bool) {
	if b.cursor < 0 || b.cursor >= len(b.view.Budgets) {
		return model.BudgetEntry{}, false
	}
	return b.view.Budgets[b.cursor], true
}

func (a App) updateBudgetKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "[", "]":
		if key == "[" {
			a.budget.month = a.budget.month.Prev()
		} else {
			a.budget.month = a.budget.month.Next()
		}
		a.budget.loaded = false
		a.budget.err = nil
		m, cmd := a.reloadBudget()
		return m, cmd, true
	case "j", "down":
		a.budget.move(1)
		return a, nil, true
	case "k", "up":
		a.budget.move(-1)
		return a, nil, true
	case "n":
		m, cmd := a.openAddBudget()
		return m, cmd, true
	case "e", "enter":
		if b, ok := a.budget.selected(); ok {
			m, cmd := a.openEditBudget(b)
			return m, cmd, true
		}
		return a, nil, true
	case "D", "delete":
		if b, ok := a.budget.selected(); ok {
			m, cmd := a.openDeleteBudget(b)
			return m, cmd, true
		}
		return a, nil, true
	}
	return a, nil, false
}

type toastExpiredMsg struct{ seq int }

func (a App) showToast(kind components.ToastKind, text string) (App, tea.Cmd) {
	a.toastSeq++
	a.toast = &components.Toast{Text: text, Kind: kind}
	seq := a.toastSeq
	return a, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (a App) showError(err error, action string) (App, tea.Cmd) {
	return a.showToast(components.ToastError, api.UserMessage(err, action))
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fintrack needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"d t a b x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"[ ]", "Previous / Next budget month"},
		}},
		{"Records", [][2]string{
			{"n", "New budget or transaction"},
			{"e", "Edit selected"},
			{"D", "Delete selected"},
			{"Enter", "Details / Edit"},
			{"Esc", "Cancel form"},
		}},
		{"General", [][2]string{
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, kb := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", kb[0])),
				descStyle.Render(kb[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	brand := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true).Render("◈ fintrack ")
	header := components.RenderTabBar(a.activeTab, w, brand) + "\n" + a.renderContextRow(w)

	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Toast:       a.toast,
		Refreshing:  a.refreshing(),
		AutoRefresh: a.autoRefresh,
		DataAge:     a.dataAge(),
	})

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case components.TabDashboard:
		content = a.renderDashboardTab(cw)
	case components.TabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case components.TabAnalytics:
		content = a.renderAnalyticsTab(cw)
	case components.TabBudget:
		content = a.renderBudgetTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderContextRow is the second header line: the budget month on the
// Budget tab, the server address elsewhere.
func (a App) renderContextRow(w int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var s string
	if a.activeTab == components.TabBudget {
		s = dim.Render(" [ ◂ ") + accent.Render(a.budget.month.String()) + dim.Render(" ▸ ]")
	} else {
		s = dim.Render(" " + a.cfg.API.BaseURL)
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(s)
}

func (a App) dataAge() string {
	if a.lastRefresh.IsZero() {
		return ""
	}
	return a.lastRefresh.Format("15:04:05")
}

// renderLoadState renders the loading or error card for a screen that has
// no data yet. ok is false once there is data to show.
func (a App) renderLoadState(title string, loaded bool, err error, action string, cw int) (string, bool) {
	if loaded && err == nil {
		return "", false
	}
	t := theme.Active
	if err != nil && !loaded {
		msg := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(api.UserMessage(err, action))
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("Press r to retry")
		return components.ContentCard(title, msg+"\n\n"+hint, cw), true
	}
	if !loaded {
		body := a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" Loading...")
		return components.ContentCard(title, body, cw), true
	}
	return "", false
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

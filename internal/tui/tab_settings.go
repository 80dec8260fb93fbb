package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

const (
	settingsFieldAPIURL = iota
	settingsFieldTheme
	settingsFieldDefaultMonth
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldRecentLimit
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	saveErr error
	// apiChanged is set once the base URL is edited; the running client
	// keeps the old one until restart.
	apiChanged bool
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
	case "k", "up":
		a.settings.cursor = max(a.settings.cursor-1, 0)
	case "enter":
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (App, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldAPIURL:
		ti.Placeholder = "http://localhost:5000"
		ti.SetValue(a.cfg.API.BaseURL)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldDefaultMonth:
		ti.Placeholder = "March (leave empty for the current month)"
		ti.SetValue(a.cfg.General.DefaultMonth)
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "60 (seconds, minimum 5)"
		ti.SetValue(strconv.Itoa(a.cfg.TUI.RefreshIntervalSec))
	case settingsFieldRecentLimit:
		ti.Placeholder = "50"
		ti.SetValue(strconv.Itoa(a.cfg.General.RecentLimit))
	}

	ti.Focus()
	a.settings.input = ti
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a = a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field to a copy of the config, validates
// it and persists it. The live App only changes when the save succeeds.
func (a App) settingsSave() App {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldAPIURL:
		cfg.API.BaseURL = strings.TrimRight(val, "/")
	case settingsFieldTheme:
		cfg.Appearance.Theme = val
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return a
		}
	case settingsFieldDefaultMonth:
		cfg.General.DefaultMonth = val
	case settingsFieldAutoRefresh:
		b, err := strconv.ParseBool(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("auto refresh must be true or false")
			return a
		}
		cfg.TUI.AutoRefresh = b
	case settingsFieldRefreshInterval:
		n, err := strconv.Atoi(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("refresh interval must be a whole number of seconds")
			return a
		}
		cfg.TUI.RefreshIntervalSec = n
	case settingsFieldRecentLimit:
		n, err := strconv.Atoi(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("recent limit must be a whole number")
			return a
		}
		cfg.General.RecentLimit = n
	}

	if err := cfg.Validate(); err != nil {
		a.settings.saveErr = err
		return a
	}
	if err := a.save(cfg); err != nil {
		a.settings.saveErr = err
		return a
	}

	if cfg.API.BaseURL != a.cfg.API.BaseURL {
		a.settings.apiChanged = true
	}
	a.cfg = cfg
	a.autoRefresh = cfg.TUI.AutoRefresh
	a.refreshInterval = cfg.RefreshInterval()
	theme.SetActive(cfg.Appearance.Theme)
	return a
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	defaultMonth := a.cfg.General.DefaultMonth
	if defaultMonth == "" {
		defaultMonth = "(current month)"
	}

	fields := []struct{ label, value string }{
		{"API URL", a.cfg.API.BaseURL},
		{"Theme", a.cfg.Appearance.Theme},
		{"Default Month", defaultMonth},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", (time.Duration(a.cfg.TUI.RefreshIntervalSec) * time.Second).String()},
		{"Recent Limit", strconv.Itoa(a.cfg.General.RecentLimit)},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			form.WriteString(a.settings.input.View())
			form.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			line := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")) +
				selectedStyle.Render(f.value)
			form.WriteString(line)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			form.WriteString(valueStyle.Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			form.WriteString(valueStyle.Render(f.value))
		}
		form.WriteString("\n")
	}

	switch {
	case a.settings.saveErr != nil:
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		form.WriteString("\n")
		form.WriteString(warn.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
		form.WriteString("\n")
	case a.settings.saved:
		form.WriteString("\n")
		form.WriteString(lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("Saved!"))
		form.WriteString("\n")
	}
	if a.settings.apiChanged {
		form.WriteString(labelStyle.Render("The new API URL is used after restarting fintrack."))
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var info strings.Builder
	info.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.Path()) + "\n")
	info.WriteString(labelStyle.Render("Budget month:  ") + valueStyle.Render(a.budget.month.String()) + "\n")
	info.WriteString(labelStyle.Render("Last refresh:  ") + valueStyle.Render(a.lastRefreshText()))

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("General", info.String(), cw)
}

func (a App) lastRefreshText() string {
	if a.lastRefresh.IsZero() {
		return "never"
	}
	return a.lastRefresh.Format("2006-01-02 15:04:05")
}

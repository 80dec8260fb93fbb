package tui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// ErrSetupAborted is returned when the user cancels the setup form.
var ErrSetupAborted = errors.New("setup aborted")

// setupValues holds the setup form bindings.
type setupValues struct {
	baseURL      string
	defaultMonth string
	theme        string
	autoRefresh  bool
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		baseURL:      cfg.API.BaseURL,
		defaultMonth: cfg.General.DefaultMonth,
		theme:        cfg.Appearance.Theme,
		autoRefresh:  cfg.TUI.AutoRefresh,
	}
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an http:// or https:// address")
	}
	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	months := []huh.Option[string]{huh.NewOption("Current month", "")}
	months = append(months, monthOptions()...)

	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fintrack!").
				Description("Let's connect to your finance tracker server.\n\n"+
					"You can change these later with `fintrack setup`\nor on the Settings tab."),
			huh.NewInput().
				Title("Server URL").
				Description("Base URL of the finance tracker API.").
				Placeholder("http://localhost:5000").
				Validate(validateBaseURL).
				Value(&v.baseURL),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Budget month").
				Description("Month shown first on the Budget screen.").
				Options(months...).
				Value(&v.defaultMonth),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.theme),
			huh.NewConfirm().
				Title("Refresh data automatically?").
				Value(&v.autoRefresh),
		),
	).WithTheme(huh.ThemeDracula()).WithKeyMap(formKeyMap())
}

// applySetup copies the form values onto cfg.
func applySetup(cfg config.Config, v *setupValues) config.Config {
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(v.baseURL), "/")
	cfg.General.DefaultMonth = v.defaultMonth
	if _, err := model.ParseMonth(v.defaultMonth); err != nil {
		cfg.General.DefaultMonth = ""
	}
	if theme.Valid(v.theme) {
		cfg.Appearance.Theme = v.theme
	}
	cfg.TUI.AutoRefresh = v.autoRefresh
	return cfg
}

// RunSetup runs the interactive setup form on the terminal, then validates
// and saves the result.
func RunSetup(cfg config.Config) (config.Config, error) {
	v := newSetupValues(cfg)
	if err := newSetupForm(v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, ErrSetupAborted
		}
		return cfg, fmt.Errorf("setup form: %w", err)
	}

	next := applySetup(cfg, v)
	if err := next.Validate(); err != nil {
		return cfg, err
	}
	if err := config.Save(next); err != nil {
		return cfg, fmt.Errorf("saving config: %w", err)
	}
	theme.SetActive(next.Appearance.Theme)
	return next, nil
}

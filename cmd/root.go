// Package cmd implements the fintrack CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/theirongolddev/fintrack/internal/api"
	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/logging"
	"github.com/theirongolddev/fintrack/internal/model"
)

var (
	flagAPIURL   string
	flagMonth    string
	flagOutput   string
	flagQuiet    bool
	flagLogLevel string
)

// Resolved once in PersistentPreRunE and shared by every command.
var (
	appCfg  = config.DefaultConfig()
	logger  = logging.New(os.Stderr, "info")
	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "fintrack",
	Short: "Personal finance tracker client",
	Long: "Track budgets and transactions against a finance tracker server: " +
		"reconciled budget views, dashboards, analytics and an interactive TUI.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	RunE:              runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAPIURL, "api-url", "", "Finance tracker API base URL (env FINTRACK_API_BASE_URL)")
	pf.StringVarP(&flagMonth, "month", "m", "", "Budget month, e.g. March (default: current month)")
	pf.StringVarP(&flagOutput, "output", "o", cli.FormatTable, "Output format: table, json or yaml")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (env FINTRACK_LOG_LEVEL)")
}

// loadRuntime resolves configuration in order of precedence: flags, then
// FINTRACK_* environment variables (a .env file included), then the config
// file, then defaults.
func loadRuntime(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	base, err := config.Load()
	if err != nil {
		return err
	}

	cfg := resolveConfig(newViper(cmd.Root().PersistentFlags()), base)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration (%s): %w", config.Path(), err)
	}
	if _, err := cli.ParseFormat(flagOutput); err != nil {
		return err
	}

	appCfg = cfg
	logger = logging.New(os.Stderr, cfg.Log.Level)
	logger.Debug("configuration loaded", "base_url", cfg.API.BaseURL, "command", cmd.Name())
	return nil
}

// newViper binds the overridable settings to their flags and to FINTRACK_*
// environment variables.
func newViper(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = v.BindPFlag("general.default_month", flags.Lookup("month"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	return v
}

// resolveConfig overlays the viper-resolved values onto base. Keys that
// neither a flag nor the environment set keep the file value.
func resolveConfig(v *viper.Viper, base config.Config) config.Config {
	cfg := base
	overlay := func(key string, dst *string) {
		if v.IsSet(key) {
			if s := strings.TrimSpace(v.GetString(key)); s != "" {
				*dst = s
			}
		}
	}
	overlay("api.base_url", &cfg.API.BaseURL)
	overlay("general.default_month", &cfg.General.DefaultMonth)
	overlay("log.level", &cfg.Log.Level)
	if v.IsSet("api.timeout_sec") {
		if n := v.GetInt("api.timeout_sec"); n > 0 {
			cfg.API.TimeoutSec = n
		}
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	return cfg
}

func newClient() (*api.Client, error) {
	return api.NewClient(appCfg.API.BaseURL,
		api.WithTimeout(appCfg.Timeout()),
		api.WithLogger(logger),
	)
}

// selectedMonth is the month commands reconcile for: --month, then the
// configured default, then the current month.
func selectedMonth() model.Month {
	return appCfg.Month(nowFunc())
}

func outputFormat() string {
	f, _ := cli.ParseFormat(flagOutput)
	return f
}

// commandError presents an API or validation failure the way the user
// should read it. The underlying error stays reachable through Unwrap.
type commandError struct {
	action string
	err    error
}

func (e *commandError) Error() string { return api.UserMessage(e.err, e.action) }

func (e *commandError) Unwrap() error { return e.err }

// failed wraps err for display; action completes "Failed to ...".
func failed(action string, err error) error {
	if err == nil {
		return nil
	}
	logger.Debug("request failed", "action", action, "err", err)
	return &commandError{action: action, err: err}
}

// progressf writes a status line to stderr unless --quiet is set.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

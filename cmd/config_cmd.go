package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: "Print the configuration fintrack runs with after applying the config file,\n" +
		"FINTRACK_* environment variables (including .env) and flags.",
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	if f := outputFormat(); f != cli.FormatTable {
		return cli.Encode(os.Stdout, f, cfg)
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [API]")
	fmt.Printf("    Base URL:  %s\n", cfg.API.BaseURL)
	fmt.Printf("    Timeout:   %s\n", cfg.Timeout())
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DefaultMonth != "" {
		fmt.Printf("    Default month:  %s\n", cfg.General.DefaultMonth)
	} else {
		fmt.Printf("    Default month:  current (%s)\n", selectedMonth())
	}
	fmt.Printf("    Recent limit:   %d\n", cfg.General.RecentLimit)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:  %v (every %s)\n", cfg.TUI.AutoRefresh, cfg.RefreshInterval())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:   %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval:  %s\n", cfg.PollInterval())
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `fintrack setup` to reconfigure.")
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/report"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Monthly spending trend and category breakdown",
	RunE:  runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	view, err := client.FetchAnalytics(cmd.Context())
	if err != nil {
		return failed("load analytics", err)
	}

	if f := outputFormat(); f != cli.FormatTable {
		return cli.Encode(os.Stdout, f, view)
	}
	printAnalytics(view)
	return nil
}

func printAnalytics(v report.AnalyticsView) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("ANALYTICS"))
	fmt.Println()

	if v.Empty() {
		fmt.Println("  No data available for analytics")
		fmt.Println()
		return
	}

	if len(v.Monthly) > 0 {
		fmt.Printf("  Trend  %s\n", cli.RenderSparkline(v.MonthlyValues()))
		if v.Peak != nil {
			fmt.Printf("  Peak   %s in %s\n", cli.FormatMoney(v.Peak.Total), v.Peak.Month)
		}
		fmt.Println()

		peak := 0.0
		if v.Peak != nil {
			peak = v.Peak.Total
		}
		rows := make([][]string, 0, len(v.Monthly))
		for _, m := range v.Monthly {
			rows = append(rows, []string{
				m.Month,
				cli.FormatMoney(m.Total),
				cli.RenderHorizontalBar(m.Total, peak, 24),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    "Monthly Spending",
			Headers:  []string{"Month", "Total", ""},
			Rows:     rows,
			LeftCols: map[int]bool{2: true},
		}))
		fmt.Println()
	}

	if len(v.Categories) > 0 {
		rows := make([][]string, 0, len(v.Categories))
		for _, c := range v.Categories {
			rows = append(rows, []string{c.Category, cli.FormatMoney(c.Total), cli.FormatShare(c.SharePercent)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Category",
			Headers: []string{"Category", "Total", "Share"},
			Rows:    rows,
		}))
		fmt.Println()
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/report"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Total spend, top category and recent transactions",
	RunE:    runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	view, err := client.FetchDashboard(cmd.Context())
	if err != nil {
		return failed("load dashboard", err)
	}

	if f := outputFormat(); f != cli.FormatTable {
		return cli.Encode(os.Stdout, f, view)
	}
	printDashboard(view)
	return nil
}

func printDashboard(v report.DashboardView) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("DASHBOARD"))
	fmt.Println()

	fmt.Printf("  Total Expense:  %s\n", cli.FormatMoney(v.TotalExpense))
	if v.TopCategory != nil {
		fmt.Printf("  Top Category:   %s (%s, %s)\n",
			v.TopCategory.Category, cli.FormatMoney(v.TopCategory.Total), cli.FormatShare(v.TopCategory.SharePercent))
	} else {
		fmt.Printf("  Top Category:   %s\n", cli.RenderMuted("none yet"))
	}
	fmt.Println()

	if len(v.Categories) > 0 {
		rows := make([][]string, 0, len(v.Categories))
		for _, c := range v.Categories {
			rows = append(rows, []string{
				c.Category,
				cli.FormatMoney(c.Total),
				cli.FormatShare(c.SharePercent),
				cli.RenderHorizontalBar(c.SharePercent, 100, 20),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    "Spending by Category",
			Headers:  []string{"Category", "Total", "Share", ""},
			Rows:     rows,
			LeftCols: map[int]bool{3: true},
		}))
		fmt.Println()
	}

	if len(v.Recent) == 0 {
		fmt.Println("  No transactions yet.")
		fmt.Println()
		return
	}
	fmt.Print(cli.RenderTable(transactionTable("Recent Transactions", v.Recent)))
	fmt.Println()
}

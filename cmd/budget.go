package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/api"
	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/reconcile"
)

var (
	flagBudgetCategory string
	flagBudgetAmount   string
	flagYes            bool
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Reconciled budget view for a month",
	Long: "Compare each budget of the month against actual spending, " +
		"with insights and the full budget list. Select the month with --month.",
	Args: cobra.NoArgs,
	RunE: runBudget,
}

var budgetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a budget",
	Example: "  fintrack budget add --category Food --month March --amount 500\n" +
		"  fintrack budget add -c Travel -a 250   # current month",
	Args: cobra.NoArgs,
	RunE: runBudgetAdd,
}

var budgetEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a budget; omitted fields keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetEdit,
}

var budgetDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a budget",
	Args:    cobra.ExactArgs(1),
	RunE:    runBudgetDelete,
}

func init() {
	for _, c := range []*cobra.Command{budgetAddCmd, budgetEditCmd} {
		c.Flags().StringVarP(&flagBudgetCategory, "category", "c", "", "Category")
		c.Flags().StringVarP(&flagBudgetAmount, "amount", "a", "", "Total budget")
	}
	_ = budgetAddCmd.MarkFlagRequired("category")
	_ = budgetAddCmd.MarkFlagRequired("amount")
	budgetDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	budgetCmd.AddCommand(budgetAddCmd, budgetEditCmd, budgetDeleteCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	return showBudgetView(cmd.Context(), client, selectedMonth())
}

func runBudgetAdd(cmd *cobra.Command, _ []string) error {
	in, err := model.NewBudgetInput(flagBudgetCategory, string(selectedMonth()), flagBudgetAmount)
	if err != nil {
		return failed("add budget", err)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.AddBudget(cmd.Context(), in); err != nil {
		return failed("add budget", err)
	}

	progressf("  Budget added successfully!\n")
	return showBudgetView(cmd.Context(), client, in.Month)
}

func runBudgetEdit(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	entry, err := findBudget(cmd.Context(), client, args[0])
	if err != nil {
		return failed("update budget", err)
	}

	category, month := string(entry.Category), string(entry.Month)
	amount := strconv.FormatFloat(entry.TotalBudget, 'f', -1, 64)
	if cmd.Flags().Changed("category") {
		category = flagBudgetCategory
	}
	if f := cmd.Flag("month"); f != nil && f.Changed {
		month = flagMonth
	}
	if cmd.Flags().Changed("amount") {
		amount = flagBudgetAmount
	}

	in, err := model.NewBudgetInput(category, month, amount)
	if err != nil {
		return failed("update budget", err)
	}
	if err := client.EditBudget(cmd.Context(), entry.ID, in); err != nil {
		return failed("update budget", err)
	}

	progressf("  Budget updated successfully!\n")
	return showBudgetView(cmd.Context(), client, in.Month)
}

func runBudgetDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	entry, err := findBudget(cmd.Context(), client, args[0])
	if err != nil {
		return failed("delete budget", err)
	}

	if !flagYes {
		ok, err := confirm("Delete budget?",
			fmt.Sprintf("%s · %s · %s", entry.Category, entry.Month, cli.FormatMoney(entry.TotalBudget)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	if err := client.DeleteBudget(cmd.Context(), entry.ID); err != nil {
		return failed("delete budget", err)
	}

	progressf("  Budget deleted successfully!\n")
	return showBudgetView(cmd.Context(), client, entry.Month)
}

func findBudget(ctx context.Context, client *api.Client, id string) (model.BudgetEntry, error) {
	budgets, err := client.ListBudgets(ctx)
	if err != nil {
		return model.BudgetEntry{}, err
	}
	for _, b := range budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return model.BudgetEntry{}, &model.ValidationError{Field: "id", Message: fmt.Sprintf("Budget %s not found", id)}
}

// confirm asks a yes/no question on the terminal.
func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// showBudgetView fetches all three inputs, reconciles them for month and
// prints the result.
func showBudgetView(ctx context.Context, client *api.Client, month model.Month) error {
	view, err := client.FetchBudgetView(ctx, month)
	if err != nil {
		return failed("load budget data", err)
	}

	if f := outputFormat(); f != cli.FormatTable {
		return cli.Encode(os.Stdout, f, view)
	}
	printBudgetView(view)
	return nil
}

func printBudgetView(v reconcile.View) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET  " + string(v.Month)))
	fmt.Println()

	if len(v.Comparisons) == 0 {
		fmt.Printf("  No budgets for %s. Add one with `fintrack budget add`.\n\n", v.Month)
	} else {
		rows := make([][]string, 0, len(v.Comparisons)+2)
		for _, c := range v.Comparisons {
			rows = append(rows, []string{
				string(c.Category),
				cli.FormatMoney(c.Budget),
				cli.FormatMoney(c.Actual),
				cli.FormatRemaining(c.Remaining()),
				cli.RenderBudgetBar(c, 20),
			})
		}
		budget, actual := v.Totals()
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"TOTAL", cli.FormatMoney(budget), cli.FormatMoney(actual), cli.FormatRemaining(budget - actual), ""})

		fmt.Print(cli.RenderTable(cli.Table{
			Title:    "Budget vs Actual",
			Headers:  []string{"Category", "Budget", "Spent", "Remaining", "Progress"},
			Rows:     rows,
			LeftCols: map[int]bool{4: true},
		}))

		counts := v.CountByStatus()
		fmt.Printf("  %d on track · %d warning · %d over\n\n",
			counts[model.StatusGood], counts[model.StatusWarning], counts[model.StatusOver])
	}

	fmt.Println("  Insights")
	if !v.HasInsights() {
		fmt.Println("  " + cli.RenderMuted(reconcile.FallbackInsight))
	}
	for _, in := range v.Insights {
		fmt.Println(cli.RenderInsight(in))
	}
	fmt.Println()

	if len(v.Budgets) > 0 {
		rows := make([][]string, 0, len(v.Budgets))
		for _, b := range v.Budgets {
			rows = append(rows, []string{b.ID, string(b.Category), string(b.Month), cli.FormatMoney(b.TotalBudget)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    fmt.Sprintf("All Budgets (%d in %s)", len(v.MonthBudgets()), v.Month),
			Headers:  []string{"ID", "Category", "Month", "Amount"},
			Rows:     rows,
			LeftCols: map[int]bool{1: true, 2: true},
		}))
		fmt.Println()
	}
}

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
)

var (
	flagTxLimit       int
	flagTxAmount      string
	flagTxDate        string
	flagTxDescription string
	flagTxCategory    string
	flagTxType        string
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transactions"},
	Short:   "List and manage transactions",
	Args:    cobra.NoArgs,
	RunE:    runTxList,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent transactions",
	Args:  cobra.NoArgs,
	RunE:  runTxList,
}

var txShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxShow,
}

var txAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Record a transaction",
	Example: `  fintrack tx add --amount 12.50 --description "Lunch" --category Food`,
	Args:    cobra.NoArgs,
	RunE:    runTxAdd,
}

var txEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a transaction; omitted fields keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxEdit,
}

var txDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE:    runTxDelete,
}

func init() {
	txCmd.PersistentFlags().IntVarP(&flagTxLimit, "limit", "n", 0, "How many recent transactions to list or search (default from config)")

	for _, c := range []*cobra.Command{txAddCmd, txEditCmd} {
		c.Flags().StringVarP(&flagTxAmount, "amount", "a", "", "Amount")
		c.Flags().StringVar(&flagTxDate, "date", "", "Date as YYYY-MM-DD (default: today)")
		c.Flags().StringVarP(&flagTxDescription, "description", "d", "", "Description")
		c.Flags().StringVarP(&flagTxCategory, "category", "c", "", "Category")
		c.Flags().StringVarP(&flagTxType, "type", "t", "", "expense or income (default: expense)")
	}
	_ = txAddCmd.MarkFlagRequired("amount")
	_ = txAddCmd.MarkFlagRequired("description")
	_ = txAddCmd.MarkFlagRequired("category")
	txDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	txCmd.AddCommand(txListCmd, txShowCmd, txAddCmd, txEditCmd, txDeleteCmd)
	rootCmd.AddCommand(txCmd)
}

func txLimit() int {
	if flagTxLimit > 0 {
		return flagTxLimit
	}
	return appCfg.General.RecentLimit
}

func runTxList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	txs, err := client.RecentTransactions(cmd.Context(), txLimit())
	if err != nil {
		return failed("load transactions", err)
	}

	if f := outputFormat(); f != cli.FormatTable {
		return cli.Encode(os.Stdout, f, txs)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TRANSACTIONS"))
	fmt.Println()
	if len(txs) == 0 {
		fmt.Println("  No transactions yet.")
		fmt.Println()
		return nil
	}

	income, expense := 0.0, 0.0
	for _, t := range txs {
		if t.IsIncome() {
			income += t.Amount
		} else {
			expense += t.Amount
		}
	}
	fmt.Print(cli.RenderTable(transactionTable(fmt.Sprintf("Latest %d", len(txs)), txs)))
	fmt.Printf("  Income %s · Expense %s\n\n", cli.FormatMoney(income), cli.FormatMoney(expense))
	return nil
}

func runTxShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	t, err := client.FindTransaction(cmd.Context(), args[0], txLimit())
	if err != nil {
		return failed("load transaction", err)
	}

	if f := outputFormat(); f != cli.FormatTable {
		return cli.Encode(os.Stdout, f, t)
	}
	printTransaction(t)
	return nil
}

func runTxAdd(cmd *cobra.Command, _ []string) error {
	date := flagTxDate
	if date == "" {
		date = nowFunc().Format(model.DateLayout)
	}
	in, err := model.NewTransactionInput(flagTxAmount, date, flagTxDescription, flagTxCategory, flagTxType)
	if err != nil {
		return failed("add transaction", err)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.AddTransaction(cmd.Context(), in); err != nil {
		return failed("add transaction", err)
	}

	progressf("  Transaction added successfully!\n")
	return runTxList(cmd, nil)
}

func runTxEdit(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	t, err := client.FindTransaction(cmd.Context(), args[0], txLimit())
	if err != nil {
		return failed("update transaction", err)
	}

	amount := strconv.FormatFloat(t.Amount, 'f', -1, 64)
	date, desc, category, typ := t.Date.String(), t.Description, string(t.Category), string(t.Type)
	flags := cmd.Flags()
	if flags.Changed("amount") {
		amount = flagTxAmount
	}
	if flags.Changed("date") {
		date = flagTxDate
	}
	if flags.Changed("description") {
		desc = flagTxDescription
	}
	if flags.Changed("category") {
		category = flagTxCategory
	}
	if flags.Changed("type") {
		typ = flagTxType
	}

	in, err := model.NewTransactionInput(amount, date, desc, category, typ)
	if err != nil {
		return failed("update transaction", err)
	}
	updated, err := client.EditTransaction(cmd.Context(), t.ID, in)
	if err != nil {
		return failed("update transaction", err)
	}

	progressf("  Transaction updated successfully!\n")
	if f := outputFormat(); f != cli.FormatTable {
		return cli.Encode(os.Stdout, f, updated)
	}
	printTransaction(updated)
	return nil
}

func runTxDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	t, err := client.FindTransaction(cmd.Context(), args[0], txLimit())
	if err != nil {
		return failed("delete transaction", err)
	}

	if !flagYes {
		ok, err := confirm("Delete transaction?",
			fmt.Sprintf("%s · %s · %s", t.Date, t.Description, cli.FormatSignedMoney(t.Amount, t.IsIncome())))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	if err := client.DeleteTransaction(cmd.Context(), t.ID); err != nil {
		return failed("delete transaction", err)
	}

	progressf("  Transaction deleted successfully!\n")
	return runTxList(cmd, nil)
}

// transactionTable lays out transactions newest first, as the server
// returns them.
func transactionTable(title string, txs []model.Transaction) cli.Table {
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []string{
			t.Date.String(),
			cli.Truncate(t.Description, 28),
			string(t.Category),
			cli.FormatSignedMoney(t.Amount, t.IsIncome()),
			t.ID,
		})
	}
	return cli.Table{
		Title:    title,
		Headers:  []string{"Date", "Description", "Category", "Amount", "ID"},
		Rows:     rows,
		LeftCols: map[int]bool{1: true, 2: true, 4: true},
	}
}

func printTransaction(t model.Transaction) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("TRANSACTION"))
	fmt.Println()
	fmt.Printf("  ID:           %s\n", t.ID)
	fmt.Printf("  Date:         %s\n", t.Date)
	fmt.Printf("  Description:  %s\n", t.Description)
	fmt.Printf("  Category:     %s\n", t.Category)
	fmt.Printf("  Type:         %s\n", t.Type)
	fmt.Printf("  Amount:       %s\n", cli.FormatSignedMoney(t.Amount, t.IsIncome()))
	fmt.Println()
}

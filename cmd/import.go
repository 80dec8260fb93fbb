package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/api"
	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/importer"
	"github.com/theirongolddev/fintrack/internal/model"
)

var flagImportDryRun bool

var txImportCmd = &cobra.Command{
	Use:   "import FILE.csv",
	Short: "Import transactions from a CSV file",
	Long: "Read a CSV with a header row naming amount, date, description and category\n" +
		"(type is optional and defaults to expense) and record each valid row.\n" +
		"Rows that fail validation are reported and skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runTxImport,
}

func init() {
	txImportCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Validate and preview without sending anything")
	txCmd.AddCommand(txImportCmd)
}

func runTxImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := importer.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	for _, re := range res.Errors {
		fmt.Printf("  skip  line %d: %s\n", re.Line, api.UserMessage(re.Err, "read row"))
	}

	if flagImportDryRun {
		printImportPreview(res)
		return nil
	}
	if len(res.Rows) == 0 {
		fmt.Println("  Nothing to import.")
		return nil
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if flagQuiet {
		out = io.Discard
	}
	bar := progressbar.NewOptions(len(res.Rows),
		progressbar.OptionSetWriter(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(out) }),
	)

	var imported int
	var failures []string
	for _, row := range res.Rows {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		if err := client.AddTransaction(cmd.Context(), row.Input); err != nil {
			logger.Debug("import row failed", "line", row.Line, "err", err)
			failures = append(failures, fmt.Sprintf("line %d: %s", row.Line, api.UserMessage(err, "add transaction")))
		} else {
			imported++
		}
		_ = bar.Add(1)
	}

	fmt.Println()
	fmt.Printf("  Imported %d of %d rows", imported, len(res.Rows)+len(res.Errors))
	if n := len(res.Errors) + len(failures); n > 0 {
		fmt.Printf(" (%d failed)", n)
	}
	fmt.Println()
	for _, msg := range failures {
		fmt.Printf("  fail  %s\n", msg)
	}
	fmt.Println()

	if imported == 0 {
		return fmt.Errorf("no transactions were imported")
	}
	return nil
}

func printImportPreview(res importer.Result) {
	txs := make([]model.Transaction, 0, len(res.Rows))
	for _, row := range res.Rows {
		in := row.Input
		txs = append(txs, model.Transaction{
			ID:          fmt.Sprintf("line %d", row.Line),
			Amount:      in.Amount,
			Date:        in.Date,
			Description: in.Description,
			Category:    in.Category,
			Type:        in.Type,
		})
	}

	fmt.Println()
	if len(txs) > 0 {
		fmt.Print(cli.RenderTable(transactionTable("Dry run: nothing was sent", txs)))
	}
	fmt.Printf("  %d valid, %d invalid\n\n", len(res.Rows), len(res.Errors))
}

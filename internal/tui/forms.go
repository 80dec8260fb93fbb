package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
)

type formKind int

const (
	formNone formKind = iota
	formAddBudget
	formEditBudget
	formDeleteBudget
	formAddTransaction
	formEditTransaction
	formDeleteTransaction
)

// formValues holds the fields bound to the active huh form. It lives
// behind a pointer so the bindings survive App copies.
type formValues struct {
	id          string
	category    string
	month       string
	amount      string
	date        string
	description string
	txType      string
	confirm     bool
}

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		opts[i] = huh.NewOption(string(c), string(c))
	}
	return opts
}

func monthOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.Months))
	for i, m := range model.Months {
		opts[i] = huh.NewOption(string(m), string(m))
	}
	return opts
}

func validateAmount(msg string) func(string) error {
	return func(s string) error {
		_, err := model.ParseAmount(s, msg)
		return err
	}
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("%s", model.MsgAllFieldsRequired)
	}
	return nil
}

func validateDate(s string) error {
	_, err := model.ParseDate(s)
	return err
}

func newBudgetForm(title string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&v.category),
			huh.NewSelect[string]().
				Title("Month").
				Options(monthOptions()...).
				Value(&v.month),
			huh.NewInput().
				Title("Budget amount").
				Placeholder("500.00").
				Validate(validateAmount(model.MsgBudgetAmountPositive)).
				Value(&v.amount),
		),
	).WithKeyMap(formKeyMap()).WithShowHelp(true)
}

func newTransactionForm(title string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Title("Amount").
				Placeholder("12.50").
				Validate(validateAmount(model.MsgAmountPositive)).
				Value(&v.amount),
			huh.NewInput().
				Title("Date").
				Placeholder(model.DateLayout).
				Validate(validateDate).
				Value(&v.date),
			huh.NewInput().
				Title("Description").
				Validate(validateRequired).
				Value(&v.description),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&v.category),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.TypeExpense)),
					huh.NewOption("Income", string(model.TypeIncome)),
				).
				Value(&v.txType),
		),
	).WithKeyMap(formKeyMap()).WithShowHelp(true)
}

func newDeleteForm(title, desc string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&v.confirm),
		),
	).WithKeyMap(formKeyMap())
}

// openForm installs f as the active form.
func (a App) openForm(kind formKind, f *huh.Form, v *formValues) (App, tea.Cmd) {
	a.formKind = kind
	a.formVals = v
	a.form = f
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width-4, 70)).WithHeight(a.height - 4)
	}
	return a, a.form.Init()
}

func (a App) openAddBudget() (App, tea.Cmd) {
	v := &formValues{category: string(model.CategoryFood), month: string(a.budget.month)}
	return a.openForm(formAddBudget, newBudgetForm("Add Budget", v), v)
}

func (a App) openEditBudget(b model.BudgetEntry) (App, tea.Cmd) {
	v := &formValues{
		id:       b.ID,
		category: string(b.Category),
		month:    string(b.Month),
		amount:   strconv.FormatFloat(b.TotalBudget, 'f', -1, 64),
	}
	return a.openForm(formEditBudget, newBudgetForm("Edit Budget", v), v)
}

func (a App) openDeleteBudget(b model.BudgetEntry) (App, tea.Cmd) {
	v := &formValues{id: b.ID}
	desc := fmt.Sprintf("%s · %s · %s", b.Category, b.Month, cli.FormatMoney(b.TotalBudget))
	return a.openForm(formDeleteBudget, newDeleteForm("Delete this budget?", desc, v), v)
}

func (a App) openAddTransaction() (App, tea.Cmd) {
	v := &formValues{
		date:     time.Now().Format(model.DateLayout),
		category: string(model.CategoryFood),
		txType:   string(model.TypeExpense),
	}
	return a.openForm(formAddTransaction, newTransactionForm("Add Transaction", v), v)
}

func (a App) openEditTransaction(t model.Transaction) (App, tea.Cmd) {
	typ := t.Type
	if typ == "" {
		typ = model.TypeExpense
	}
	v := &formValues{
		id:          t.ID,
		amount:      strconv.FormatFloat(t.Amount, 'f', -1, 64),
		date:        t.Date.String(),
		description: t.Description,
		category:    string(t.Category),
		txType:      string(typ),
	}
	return a.openForm(formEditTransaction, newTransactionForm("Edit Transaction", v), v)
}

func (a App) openDeleteTransaction(t model.Transaction) (App, tea.Cmd) {
	v := &formValues{id: t.ID}
	desc := fmt.Sprintf("%s · %s · %s", t.Date, t.Description, cli.FormatMoney(t.Amount))
	return a.openForm(formDeleteTransaction, newDeleteForm("Delete this transaction?", desc, v), v)
}

func (a App) closeForm() App {
	a.form = nil
	a.formVals = nil
	a.formKind = formNone
	return a
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind, v := a.formKind, a.formVals
		a = a.closeForm()
		return a.submitForm(kind, v)
	case huh.StateAborted:
		return a.closeForm(), nil
	}
	return a, cmd
}

// submitForm validates the form values and starts the matching mutation.
// Validation failures are shown as a toast without any request.
func (a App) submitForm(kind formKind, v *formValues) (tea.Model, tea.Cmd) {
	b := a.backend

	switch kind {
	case formAddBudget, formEditBudget:
		in, err := model.NewBudgetInput(v.category, v.month, v.amount)
		if err != nil {
			return a.showError(err, "save budget")
		}
		if kind == formAddBudget {
			return a, mutateCmd("add budget", "Budget added successfully!", func(ctx context.Context) error {
				return b.AddBudget(ctx, in)
			})
		}
		id := v.id
		return a, mutateCmd("update budget", "Budget updated successfully!", func(ctx context.Context) error {
			return b.EditBudget(ctx, id, in)
		})

	case formDeleteBudget:
		if !v.confirm {
			return a, nil
		}
		id := v.id
		return a, mutateCmd("delete budget", "Budget deleted successfully!", func(ctx context.Context) error {
			return b.DeleteBudget(ctx, id)
		})

	case formAddTransaction, formEditTransaction:
		in, err := model.NewTransactionInput(v.amount, v.date, v.description, v.category, v.txType)
		if err != nil {
			return a.showError(err, "save transaction")
		}
		if kind == formAddTransaction {
			return a, mutateCmd("add transaction", "Transaction added successfully!", func(ctx context.Context) error {
				return b.AddTransaction(ctx, in)
			})
		}
		id := v.id
		return a, mutateCmd("update transaction", "Transaction updated successfully!", func(ctx context.Context) error {
			_, err := b.EditTransaction(ctx, id, in)
			return err
		})

	case formDeleteTransaction:
		if !v.confirm {
			return a, nil
		}
		id := v.id
		return a, mutateCmd("delete transaction", "Transaction deleted successfully!", func(ctx context.Context) error {
			return b.DeleteTransaction(ctx, id)
		})
	}
	return a, nil
}

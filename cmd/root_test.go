package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/api"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/model"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.StringP("month", "m", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func fileConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = "http://file.example:5000"
	cfg.General.DefaultMonth = "January"
	return cfg
}

func TestResolveConfigKeepsFileValues(t *testing.T) {
	cfg := resolveConfig(newViper(testFlags(t)), fileConfig())
	assert.Equal(t, "http://file.example:5000", cfg.API.BaseURL)
	assert.Equal(t, "January", cfg.General.DefaultMonth)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestResolveConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("FINTRACK_API_BASE_URL", "http://env.example/")
	t.Setenv("FINTRACK_LOG_LEVEL", "debug")
	t.Setenv("FINTRACK_API_TIMEOUT_SEC", "30")

	cfg := resolveConfig(newViper(testFlags(t)), fileConfig())
	assert.Equal(t, "http://env.example", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30, cfg.API.TimeoutSec)
	assert.Equal(t, "January", cfg.General.DefaultMonth)
}

func TestResolveConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("FINTRACK_API_BASE_URL", "http://env.example")

	fs := testFlags(t, "--api-url", "http://flag.example", "-m", "Mar")
	cfg := resolveConfig(newViper(fs), fileConfig())
	assert.Equal(t, "http://flag.example", cfg.API.BaseURL)
	assert.Equal(t, "Mar", cfg.General.DefaultMonth)
	assert.Equal(t, model.Month("March"), cfg.Month(nowFunc()))
}

func TestResolveConfigIgnoresBlankOverride(t *testing.T) {
	t.Setenv("FINTRACK_API_BASE_URL", "   ")
	cfg := resolveConfig(newViper(testFlags(t)), fileConfig())
	assert.Equal(t, "http://file.example:5000", cfg.API.BaseURL)
}

func TestFailedUsesUserMessage(t *testing.T) {
	assert.NoError(t, failed("add budget", nil))

	err := failed("add budget", fmt.Errorf("%w: connection refused", api.ErrNetwork))
	assert.Equal(t, "Failed to add budget. Please check if the server is running.", err.Error())
	assert.ErrorIs(t, err, api.ErrNetwork)

	err = failed("add budget", &api.APIError{Status: 400, Message: "Budget already exists"})
	assert.Equal(t, "Budget already exists", err.Error())

	var ve *model.ValidationError
	err = failed("add budget", &model.ValidationError{Message: model.MsgAllFieldsRequired})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, model.MsgAllFieldsRequired, err.Error())
}

func TestTransactionTable(t *testing.T) {
	d, err := model.ParseDate("2024-03-05")
	require.NoError(t, err)
	txs := []model.Transaction{
		{ID: "t1", Amount: 12.5, Date: d, Description: "Lunch", Category: model.CategoryFood, Type: model.TypeExpense},
		{ID: "t2", Amount: 1000, Date: d, Description: "Salary", Category: "Other", Type: model.TypeIncome},
	}

	tbl := transactionTable("Recent", txs)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "2024-03-05", tbl.Rows[0][0])
	assert.Equal(t, "Lunch", tbl.Rows[0][1])
	assert.Equal(t, "t2", tbl.Rows[1][4])
	assert.Len(t, tbl.Headers, len(tbl.Rows[0]))
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"daemon", "--detach", "--addr", ":9000", "--detach=true"})
	assert.Equal(t, []string{"daemon", "--addr", ":9000"}, got)
}

func TestPIDAndStateFiles(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "fintrackd.pid")

	_, err := readPID(pidFile)
	require.Error(t, err)
	require.NoError(t, ensureDaemonNotRunning(pidFile))

	require.NoError(t, writePID(pidFile, 4242))
	pid, err := readPID(pidFile)
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)

	st := daemonRuntimeState{PID: 4242, Addr: "127.0.0.1:8787", BaseURL: "http://localhost:5000"}
	require.NoError(t, writeState(statePath(pidFile), st))
	got, err := readState(statePath(pidFile))
	require.NoError(t, err)
	assert.Equal(t, st.Addr, got.Addr)
	assert.Equal(t, st.BaseURL, got.BaseURL)
}

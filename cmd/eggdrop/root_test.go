package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/observe-l/eggdrop/internal/tracewire"
	"github.com/observe-l/eggdrop/locate"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestBinaryCmd(t *testing.T) {
	out, logs, err := run(t, "binary", "--total", "100", "--critical", "63")
	require.NoError(t, err)
	require.Contains(t, out, "attempt 1: probe position 50 (range 1-100)")
	require.Contains(t, out, "attempt 7: probe position 64 (range 64-64)")
	require.Contains(t, out, "attempts required to find critical value 63: 7")
	require.Contains(t, logs, "deterministic search finished")
}

func TestStochasticCmdTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	out, _, err := run(t, "stochastic", "--total", "100", "--critical", "75",
		"--alpha", "0.5", "--seed", "3", "--trace-out", path, "--log.format", "json")
	require.NoError(t, err)
	require.Contains(t, out, "certainty:")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := tracewire.ReadAll(f)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	last := recs[len(recs)-1]
	o, err := last.Outcome()
	require.NoError(t, err)
	require.Len(t, recs, o.Drops+1)

	l := locate.NewStochasticLocator(3)
	want, err := l.Locate(100, 75, 0.5)
	require.NoError(t, err)
	require.Equal(t, want, o)
}

func TestDemoCmd(t *testing.T) {
	out, _, err := run(t, "demo", "--seed", "11")
	require.NoError(t, err)
	require.Contains(t, out, "--- Deterministic search on 100 positions ---")
	require.Contains(t, out, "attempts required to find critical value 63: 7")
	require.Contains(t, out, "--- Stochastic search on 100 positions (alpha=0.50, seed=11) ---")
	require.Contains(t, out, "goal: critical value 75")
}

func TestEvalCmdReport(t *testing.T) {
	report := filepath.Join(t.TempDir(), "docs", "reports", "eval.md")
	out, _, err := run(t, "eval", "--trials", "50", "--workers", "2", "--alphas", "0,0.5", "--report", report)
	require.NoError(t, err)
	require.Contains(t, out, "50 trials per alpha")
	require.Contains(t, out, "0.500")
	b, err := os.ReadFile(report)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(b), "# Stochastic egg-drop search"))
}

func TestInvalidInputs(t *testing.T) {
	_, _, err := run(t, "binary", "--total", "10", "--critical", "11")
	require.ErrorIs(t, err, locate.ErrCriticalValueOutOfBounds)

	_, _, err = run(t, "stochastic", "--alpha", "1.5")
	require.ErrorIs(t, err, locate.ErrInvalidProbability)

	_, _, err = run(t, "binary", "--log.level", "chatty")
	require.Error(t, err)
}

func TestConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eggdrop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("total: 16\ncritical: 5\n"), 0o644))
	out, _, err := run(t, "binary", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "--- Deterministic search on 16 positions ---")

	t.Setenv("EGGDROP_CRITICAL", "0")
	out, _, err = run(t, "binary", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "attempts required to find critical value 0: 0")
}

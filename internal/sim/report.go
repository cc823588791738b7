package sim

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/observe-l/eggdrop/locate"
)

var reportHeader = []string{
	"alpha", "trials", "exact", "limited", "remaining", "hit rate",
	"mean drops", "min", "max", "false breaks", "bisection",
}

func reportRow(s Summary) []string {
	return []string{
		fmt.Sprintf("%.3f", s.Scenario.Alpha),
		strconv.Itoa(s.Trials),
		strconv.Itoa(s.ByCertainty[locate.ExactlyFound]),
		strconv.Itoa(s.ByCertainty[locate.LimitedByMaxAttempts]),
		strconv.Itoa(s.ByCertainty[locate.RangeRemaining]),
		fmt.Sprintf("%.2f%%", 100*s.HitRate()),
		fmt.Sprintf("%.2f", s.MeanDrops),
		strconv.Itoa(s.MinDrops),
		strconv.Itoa(s.MaxDrops),
		strconv.Itoa(s.FalseBreak),
		strconv.Itoa(s.Deterministic),
	}
}

// WriteReport renders one row per summary as a text table.
func WriteReport(w io.Writer, sums []Summary) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(reportHeader)
	for _, s := range sums {
		table.Append(reportRow(s))
	}
	table.Render()
}

// WriteMarkdownReport writes a markdown report of a sweep to path, creating
// parent directories as needed.
func WriteMarkdownReport(path string, sums []Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writeMarkdown(f, sums); err != nil {
		return err
	}
	return f.Close()
}

func writeMarkdown(w io.Writer, sums []Summary) error {
	if _, err := fmt.Fprintln(w, "# Stochastic egg-drop search: Monte Carlo evaluation"); err != nil {
		return err
	}
	if len(sums) > 0 {
		sc := sums[0].Scenario
		fmt.Fprintf(w, "\nRange: 1..%d  Critical value: %d  Max attempts: %d  Seed: %d  Workers: %d\n\n",
			sc.TotalSize, sc.CriticalValue, budget(sc.MaxAttempts), sc.Seed, sc.workers())
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetHeader(reportHeader)
	for _, s := range sums {
		table.Append(reportRow(s))
	}
	table.Render()
	return nil
}

func budget(n int) int {
	if n <= 0 {
		return locate.DefaultMaxAttempts
	}
	return n
}

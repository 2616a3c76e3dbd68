// Package report renders the end-of-run summary of a decision run.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/decision"
)

// Tally counts results by kind.
type Tally struct {
	Submitted int
	Skipped   int
	Failed    int
}

// Count tallies results.
func Count(results []decision.Result) Tally {
	var t Tally
	for _, r := range results {
		switch r.Outcome {
		case decision.OutcomeSubmitted:
			t.Submitted++
		case decision.OutcomeFailed:
			t.Failed++
		default:
			t.Skipped++
		}
	}
	return t
}

// String renders the tally as one line.
func (t Tally) String() string {
	return fmt.Sprintf("%d targets: %d submitted, %d skipped, %d failed",
		t.Submitted+t.Skipped+t.Failed, t.Submitted, t.Skipped, t.Failed)
}

// Render returns a table with one row per result followed by the tally.
func Render(results []decision.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Target.ID,
			r.Target.Provider,
			r.Target.WorkerType,
			outcomeStyle(r.Outcome).Render(string(r.Outcome)),
			dash(r.UnattendPath),
			dash(r.TaskID),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleBorder).
		Headers("TARGET", "PROVIDER", "WORKER TYPE", "OUTCOME", "UNATTEND", "TASK").
		Rows(rows...)

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleTitle.Render(Count(results).String()))
	b.WriteString("\n")
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

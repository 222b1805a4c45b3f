package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hexlab-tools/hexvalidate/domain"
)

// TerminalFormatter renders a run summary for humans
type TerminalFormatter struct {
	// Quiet suppresses per-finding detail, leaving only the counts
	Quiet bool

	// Verbose adds per-check durations
	Verbose bool
}

// NewTerminalFormatter creates a terminal formatter
func NewTerminalFormatter(quiet, verbose bool) *TerminalFormatter {
	return &TerminalFormatter{Quiet: quiet, Verbose: verbose}
}

// Write renders the summary block followed by grouped findings for
// every warning or failing check. Colors are turned off when standard
// output is not a terminal; the writer itself is not inspected.
func (f *TerminalFormatter) Write(writer io.Writer, summary *Summary, results []*domain.CheckResult) error {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(writer, "Tasks: %d\n", summary.Total)
	fmt.Fprintf(writer, "Passed: %d\n", summary.Passed)
	fmt.Fprintf(writer, "Warned: %d\n", summary.Warned)
	fmt.Fprintf(writer, "Failed: %d\n", summary.Failed)
	fmt.Fprintf(writer, "Skipped: %d\n", summary.Skipped)

	if f.Verbose {
		fmt.Fprintf(writer, "\nDurations:\n")
		for _, result := range results {
			fmt.Fprintf(writer, "  %s: %dms (%s)\n", result.Name, result.DurationMS, result.Status)
		}
	}

	if f.Quiet || len(summary.Checks) == 0 {
		return nil
	}

	for _, check := range summary.Checks {
		header := yellow
		if check.Status == domain.StatusFail {
			header = red
		}
		fmt.Fprintf(writer, "\n%s %s\n", header(statusMark(check.Status)), check.Check)

		for _, group := range check.Groups {
			paint := severityPainter(group.Severity, red, yellow, green)
			fmt.Fprintf(writer, "  %s %s (%d)\n", paint(strings.ToUpper(string(group.Severity))), group.Code, group.Count)
			for _, finding := range group.Findings {
				fmt.Fprintf(writer, "    %s%s\n", location(finding), finding.Message)
			}
			if group.Suggestion != "" {
				fmt.Fprintf(writer, "    hint: %s\n", group.Suggestion)
			}
		}
	}

	return nil
}

func statusMark(status domain.Status) string {
	if status == domain.StatusFail {
		return "✗"
	}
	return "!"
}

func severityPainter(severity domain.Severity, red, yellow, green func(a ...interface{}) string) func(a ...interface{}) string {
	switch severity {
	case domain.SeverityError:
		return red
	case domain.SeverityWarn:
		return yellow
	default:
		return green
	}
}

// location formats the file:line prefix of a finding, empty when the
// finding is not tied to a file
func location(f domain.Finding) string {
	if f.File == "" {
		return ""
	}
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d: ", f.File, f.Line)
	}
	return f.File + ": "
}

// Package report renders check results as human-readable console
// output.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nomagicln/quickprop/pkg/check"
)

// Reporter writes rendered results to a destination writer, optionally
// styled for terminals.
type Reporter struct {
	w      io.Writer
	styled bool

	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	warnStyle    lipgloss.Style
	argStyle     lipgloss.Style
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithStyles enables color and emphasis in the rendered output.
func WithStyles() Option {
	return func(r *Reporter) {
		r.styled = true
	}
}

// New creates a Reporter writing to w. Output is plain text unless
// WithStyles is given.
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		w:            w,
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failureStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warnStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		argStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report renders res to the reporter's writer.
func (r *Reporter) Report(res check.Result) error {
	var out string
	if r.styled {
		out = r.render(res)
	} else {
		out = Format(res)
	}
	_, err := io.WriteString(r.w, out)
	return err
}

// Format renders res as plain text:
//
//	Ok, passed 100 tests.
//
//	Falsifiable, after 42 tests (3 shrinks) (Seed <state:gamma>):
//	<arg1>
//	...
//
//	Arguments exhausted after 500 discards.
func Format(res check.Result) string {
	var sb strings.Builder
	switch res.Status {
	case check.Success:
		fmt.Fprintf(&sb, "Ok, passed %d tests.\n", res.TestsRun)
	case check.Falsifiable:
		fmt.Fprintf(&sb, "Falsifiable, after %d tests (%d shrinks) (Seed %s):\n",
			res.TestsRun, res.Shrinks, res.Seed)
		for _, arg := range res.Args {
			fmt.Fprintf(&sb, "%v\n", arg)
		}
		if res.Shrinks > 0 {
			sb.WriteString("Before shrinking:\n")
			for _, arg := range res.Original {
				fmt.Fprintf(&sb, "%v\n", arg)
			}
		}
		if res.Err != nil {
			fmt.Fprintf(&sb, "Error: %v\n", res.Err)
		}
	case check.Exhausted:
		fmt.Fprintf(&sb, "Arguments exhausted after %d discards.\n", res.Discards)
	}
	return sb.String()
}

// render is Format with terminal styling applied per line.
func (r *Reporter) render(res check.Result) string {
	var sb strings.Builder
	switch res.Status {
	case check.Success:
		sb.WriteString(r.successStyle.Render(fmt.Sprintf("Ok, passed %d tests.", res.TestsRun)))
		sb.WriteString("\n")
	case check.Falsifiable:
		sb.WriteString(r.failureStyle.Render(fmt.Sprintf("Falsifiable, after %d tests (%d shrinks) (Seed %s):",
			res.TestsRun, res.Shrinks, res.Seed)))
		sb.WriteString("\n")
		for _, arg := range res.Args {
			sb.WriteString(r.argStyle.Render(fmt.Sprintf("%v", arg)))
			sb.WriteString("\n")
		}
		if res.Shrinks > 0 {
			sb.WriteString("Before shrinking:\n")
			for _, arg := range res.Original {
				sb.WriteString(r.argStyle.Render(fmt.Sprintf("%v", arg)))
				sb.WriteString("\n")
			}
		}
		if res.Err != nil {
			sb.WriteString(r.warnStyle.Render(fmt.Sprintf("Error: %v", res.Err)))
			sb.WriteString("\n")
		}
	case check.Exhausted:
		sb.WriteString(r.warnStyle.Render(fmt.Sprintf("Arguments exhausted after %d discards.", res.Discards)))
		sb.WriteString("\n")
	}
	return sb.String()
}

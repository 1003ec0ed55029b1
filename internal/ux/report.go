// Package ux prints the human-readable progress lines of the fixup tools.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.Color("#8BC34A")
	errorColor   = lipgloss.Color("#e53935")
	mutedColor   = lipgloss.Color("#7a8699")
)

// Reporter writes progress lines. Styling is dropped automatically when
// the writer is not a terminal.
type Reporter struct {
	out     io.Writer
	label   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewReporter creates a Reporter for w.
func NewReporter(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		out:     w,
		label:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(successColor).Bold(true),
		failure: r.NewStyle().Foreground(errorColor).Bold(true),
		muted:   r.NewStyle().Foreground(mutedColor).Inline(true).TabWidth(lipgloss.NoTabConversion),
	}
}

// Field prints "label: value".
func (r *Reporter) Field(label string, value interface{}) {
	fmt.Fprintf(r.out, "%s %v\n", r.label.Render(label+":"), value)
}

// Line prints a plain line.
func (r *Reporter) Line(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Success prints a highlighted completion line.
func (r *Reporter) Success(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.success.Render(fmt.Sprintf(format, args...)))
}

// Error prints "Error: <msg>".
func (r *Reporter) Error(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.failure.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Block prints multi-line text, dimmed, one line at a time so lines are
// not padded to a common width.
func (r *Reporter) Block(text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintln(r.out, r.muted.Render(strings.TrimSuffix(line, "\n")))
	}
}

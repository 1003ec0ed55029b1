// Package truncate cuts a text file down to a fixed number of lines.
package truncate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/EHAB0O0/school-activity/internal/logging"
	"github.com/EHAB0O0/school-activity/internal/tactile"
)

// ErrNotFound is returned when the target file does not exist.
var ErrNotFound = errors.New("file not found")

// Preview is what a truncation would do, captured before anything is
// written.
type Preview struct {
	Path          string
	Boundary      int
	OriginalLines int

	// The lines at 1-indexed positions Boundary and Boundary+1, without
	// terminators. The Has flags are false when the file is too short.
	BoundaryLine    string
	HasBoundaryLine bool
	NextLine        string
	HasNextLine     bool

	lines []string
}

// Kept returns how many lines survive the cut.
func (p *Preview) Kept() int {
	return min(p.Boundary, p.OriginalLines)
}

// Result is a completed truncation.
type Result struct {
	*Preview
	Written  bool
	NewLines int // counted by re-reading the file
}

// Truncator truncates files through a tactile.FileEditor.
type Truncator struct {
	editor *tactile.FileEditor
}

// New creates a Truncator. A nil editor gets a default one.
func New(editor *tactile.FileEditor) *Truncator {
	if editor == nil {
		editor = tactile.NewFileEditor()
	}
	return &Truncator{editor: editor}
}

// Inspect checks that path exists and reads it. Nothing is written.
func (t *Truncator) Inspect(ctx context.Context, path string, boundary int) (*Preview, error) {
	if boundary < 0 {
		return nil, fmt.Errorf("boundary must be >= 0, got %d", boundary)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !t.editor.FileExists(path) {
		logging.TruncateWarn("Target missing: %s", path)
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	lines, err := t.editor.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p := &Preview{
		Path:          path,
		Boundary:      boundary,
		OriginalLines: len(lines),
		lines:         lines,
	}
	if boundary >= 1 && boundary-1 < len(lines) {
		p.BoundaryLine, p.HasBoundaryLine = trimEOL(lines[boundary-1]), true
	}
	if boundary < len(lines) {
		p.NextLine, p.HasNextLine = trimEOL(lines[boundary]), true
	}
	logging.TruncateDebug("Inspected %s: %d lines, boundary %d", path, len(lines), boundary)
	return p, nil
}

// Apply overwrites the previewed file with its first Kept() lines and
// re-reads it to count what is there now.
func (t *Truncator) Apply(ctx context.Context, p *Preview) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept := p.lines[:p.Kept()]
	logging.Truncate("Truncating %s from %d to %d lines", p.Path, p.OriginalLines, len(kept))
	if _, err := t.editor.WriteLines(p.Path, kept); err != nil {
		return nil, fmt.Errorf("write %s: %w", p.Path, err)
	}

	after, err := t.editor.ReadLines(p.Path)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", p.Path, err)
	}
	if len(after) != len(kept) {
		logging.TruncateWarn("Line count after write is %d, expected %d", len(after), len(kept))
	}
	return &Result{Preview: p, Written: true, NewLines: len(after)}, nil
}

// Run is Inspect followed by Apply.
func (t *Truncator) Run(ctx context.Context, path string, boundary int) (*Result, error) {
	p, err := t.Inspect(ctx, path, boundary)
	if err != nil {
		return nil, err
	}
	return t.Apply(ctx, p)
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}

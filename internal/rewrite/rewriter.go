package rewrite

import (
	"context"
	"fmt"

	"github.com/EHAB0O0/school-activity/internal/diff"
	"github.com/EHAB0O0/school-activity/internal/logging"
	"github.com/EHAB0O0/school-activity/internal/tactile"
)

// Result describes one rewrite of one file.
type Result struct {
	Path    string
	Matches []Match
	Changed bool // content differs after applying the table
	Written bool // file was overwritten
	Diff    *diff.FileDiff
}

// Rewriter applies a Table to files in place.
type Rewriter struct {
	table  *Table
	editor *tactile.FileEditor
	diff   *diff.Engine
	dryRun bool
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithEditor sets the file editor (and so the working directory).
func WithEditor(e *tactile.FileEditor) Option {
	return func(r *Rewriter) { r.editor = e }
}

// WithDryRun computes the result and diff without writing.
func WithDryRun(dryRun bool) Option {
	return func(r *Rewriter) { r.dryRun = dryRun }
}

// WithDiffEngine overrides the engine used for previews.
func WithDiffEngine(e *diff.Engine) Option {
	return func(r *Rewriter) { r.diff = e }
}

// New creates a Rewriter for table.
func New(table *Table, opts ...Option) *Rewriter {
	r := &Rewriter{
		table:  table,
		editor: tactile.NewFileEditor(),
		diff:   diff.DefaultEngine,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads path, applies the table and overwrites the file only when the
// content changed. On error nothing has been written.
func (r *Rewriter) Run(ctx context.Context, path string) (*Result, error) {
	timer := logging.StartTimer(logging.CategoryRewrite, "Rewrite")
	defer timer.Stop()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	original, err := r.editor.ReadText(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	updated, matches := r.table.Apply(original)
	res := &Result{
		Path:    path,
		Matches: matches,
		Changed: updated != original,
	}
	for _, m := range matches {
		logging.RewriteDebug("%s -> %s (%d occurrences)", m.From, m.To, m.Count)
	}

	if !res.Changed {
		logging.Rewrite("No table keys found in %s", path)
		return res, nil
	}
	res.Diff = r.diff.Compute(path, path, original, updated)

	if r.dryRun {
		logging.Rewrite("Dry run: %d keys matched in %s, not writing", len(matches), path)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.editor.WriteText(path, updated); err != nil {
		logging.RewriteError("Write failed for %s: %v", path, err)
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	res.Written = true
	logging.Rewrite("Rewrote %s: %d keys matched", path, len(matches))
	return res, nil
}

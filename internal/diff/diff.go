// Package diff renders line diffs of a pending rewrite using sergi/go-diff.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/EHAB0O0/school-activity/internal/logging"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged context line
	LineAdded                   // Added line
	LineRemoved                 // Removed line
)

// Line is one line of a hunk, without its terminator.
type Line struct {
	Content string
	Type    LineType
}

// Hunk represents a group of changes
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FileDiff represents changes to a single file
type FileDiff struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Empty reports whether the contents were identical.
func (d *FileDiff) Empty() bool {
	return len(d.Hunks) == 0
}

// Engine computes line diffs.
type Engine struct {
	dmp          *diffmatchpatch.DiffMatchPatch
	contextLines int
}

// NewEngine creates a diff engine emitting contextLines lines of context.
func NewEngine(contextLines int) *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // Disable timeout for accuracy
	if contextLines < 0 {
		contextLines = 0
	}
	return &Engine{dmp: dmp, contextLines: contextLines}
}

// DefaultEngine emits three lines of context.
var DefaultEngine = NewEngine(3)

type operation struct {
	typ     LineType
	oldPos  int // old lines consumed before this op
	newPos  int // new lines consumed before this op
	content string
}

// Compute creates a FileDiff from old and new content.
func (e *Engine) Compute(oldPath, newPath, oldContent, newContent string) *FileDiff {
	fd := &FileDiff{OldPath: oldPath, NewPath: newPath}
	if oldContent == newContent {
		return fd
	}

	// Line-level reduction keeps hunks aligned on line boundaries.
	a, b, lineArray := e.dmp.DiffLinesToChars(oldContent, newContent)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	ops := toOperations(diffs)
	for _, op := range ops {
		switch op.typ {
		case LineAdded:
			fd.Added++
		case LineRemoved:
			fd.Removed++
		}
	}
	fd.Hunks = e.group(ops)
	logging.DiffDebug("Computed diff for %s: %d hunks, +%d -%d", newPath, len(fd.Hunks), fd.Added, fd.Removed)
	return fd
}

func toOperations(diffs []diffmatchpatch.Diff) []operation {
	var ops []operation
	oldPos, newPos := 0, 0
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			op := operation{oldPos: oldPos, newPos: newPos, content: strings.TrimSuffix(line, "\n")}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				op.typ = LineContext
				oldPos++
				newPos++
			case diffmatchpatch.DiffDelete:
				op.typ = LineRemoved
				oldPos++
			case diffmatchpatch.DiffInsert:
				op.typ = LineAdded
				newPos++
			}
			ops = append(ops, op)
		}
	}
	return ops
}

// group merges changes closer than twice the context into one hunk.
func (e *Engine) group(ops []operation) []Hunk {
	var hunks []Hunk
	start, end := -1, -1
	flush := func() {
		if start < 0 {
			return
		}
		lo := max(0, start-e.contextLines)
		hi := min(len(ops), end+e.contextLines+1)
		h := Hunk{OldStart: ops[lo].oldPos + 1, NewStart: ops[lo].newPos + 1}
		for _, op := range ops[lo:hi] {
			h.Lines = append(h.Lines, Line{Content: op.content, Type: op.typ})
			if op.typ != LineAdded {
				h.OldCount++
			}
			if op.typ != LineRemoved {
				h.NewCount++
			}
		}
		if h.OldCount == 0 {
			h.OldStart--
		}
		if h.NewCount == 0 {
			h.NewStart--
		}
		hunks = append(hunks, h)
	}

	for i, op := range ops {
		if op.typ == LineContext {
			continue
		}
		if start >= 0 && i-end-1 > 2*e.contextLines {
			flush()
			start = -1
		}
		if start < 0 {
			start = i
		}
		end = i
	}
	flush()
	return hunks
}

// Unified renders the diff in unified format.
func (d *FileDiff) Unified() string {
	if d.Empty() {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", d.OldPath, d.NewPath)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			switch l.Type {
			case LineAdded:
				sb.WriteByte('+')
			case LineRemoved:
				sb.WriteByte('-')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(l.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

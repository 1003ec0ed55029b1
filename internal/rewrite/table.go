// Package rewrite applies ordered literal substring replacements to a
// source file. It is used to swap Tailwind opacity shorthands for
// arbitrary-value classes the build can resolve.
package rewrite

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidTable is returned when a table could rewrite its own output
// or is otherwise malformed.
var ErrInvalidTable = errors.New("invalid replacement table")

// Replacement is one literal substitution.
type Replacement struct {
	From string
	To   string
}

// Match records a key that occurred at least once.
type Match struct {
	From  string
	To    string
	Count int
}

// Table is an immutable, ordered set of replacements. Longer keys come
// first so a key that is a substring of another never fires inside it.
type Table struct {
	entries []Replacement
}

// NewTable validates entries and orders them by key length, longest
// first. Keys of equal length keep their given order.
//
// Keys must be non-empty and unique, and no key may appear inside any
// replacement value; the last rule is what makes a rewrite idempotent.
func NewTable(entries []Replacement) (*Table, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.From == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidTable)
		}
		if _, dup := seen[e.From]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidTable, e.From)
		}
		seen[e.From] = struct{}{}
	}
	for _, e := range entries {
		for _, other := range entries {
			if strings.Contains(other.To, e.From) {
				return nil, fmt.Errorf("%w: key %q occurs in replacement %q", ErrInvalidTable, e.From, other.To)
			}
		}
	}

	ordered := make([]Replacement, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].From) > len(ordered[j].From)
	})
	return &Table{entries: ordered}, nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in application order.
func (t *Table) Entries() []Replacement {
	out := make([]Replacement, len(t.entries))
	copy(out, t.entries)
	return out
}

// Apply replaces, entry by entry, every non-overlapping occurrence of the
// key scanning left to right. Later entries see the output of earlier
// ones. Matches are returned in application order.
func (t *Table) Apply(text string) (string, []Match) {
	var matches []Match
	for _, e := range t.entries {
		n := strings.Count(text, e.From)
		if n == 0 {
			continue
		}
		text = strings.ReplaceAll(text, e.From, e.To)
		matches = append(matches, Match{From: e.From, To: e.To, Count: n})
	}
	return text, matches
}

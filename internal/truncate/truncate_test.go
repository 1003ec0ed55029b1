package truncate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EHAB0O0/school-activity/internal/tactile"
)

func lines(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "  <div key=\"%d\" />\n", i)
	}
	return sb.String()
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SettingsPage.jsx")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_TruncatesToBoundary(t *testing.T) {
	original := lines(2000)
	path := writeFile(t, original)

	res, err := New(nil).Run(context.Background(), path, 1002)
	require.NoError(t, err)

	assert.Equal(t, 2000, res.OriginalLines)
	assert.Equal(t, 1002, res.Kept())
	assert.Equal(t, 1002, res.NewLines)
	assert.True(t, res.Written)
	assert.Equal(t, `  <div key="1002" />`, res.BoundaryLine)
	assert.Equal(t, `  <div key="1003" />`, res.NextLine)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := strings.Join(tactile.SplitLines(original)[:1002], "")
	assert.Equal(t, want, string(data))
}

func TestRun_ShortFileUnchanged(t *testing.T) {
	original := lines(10) + "tail without newline"
	path := writeFile(t, original)

	res, err := New(nil).Run(context.Background(), path, 1002)
	require.NoError(t, err)

	assert.Equal(t, 11, res.OriginalLines)
	assert.Equal(t, 11, res.NewLines)
	assert.False(t, res.HasBoundaryLine)
	assert.False(t, res.HasNextLine)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestRun_ExactlyAtBoundary(t *testing.T) {
	path := writeFile(t, lines(5))

	res, err := New(nil).Run(context.Background(), path, 5)
	require.NoError(t, err)
	assert.True(t, res.HasBoundaryLine)
	assert.False(t, res.HasNextLine)
	assert.Equal(t, 5, res.NewLines)
}

func TestRun_ZeroBoundaryEmptiesFile(t *testing.T) {
	path := writeFile(t, lines(3))

	res, err := New(nil).Run(context.Background(), path, 0)
	require.NoError(t, err)
	assert.False(t, res.HasBoundaryLine)
	assert.True(t, res.HasNextLine)
	assert.Equal(t, 0, res.NewLines)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestRun_MissingFileNoWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SettingsPage.jsx")

	var writes int
	editor := tactile.NewFileEditor()
	editor.SetAuditCallback(func(ev tactile.FileAuditEvent) {
		if ev.Type == tactile.FileOpWrite {
			writes++
		}
	})

	_, err := New(editor).Run(context.Background(), path, 1002)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	assert.Zero(t, writes)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInspect_DoesNotWrite(t *testing.T) {
	original := lines(20)
	path := writeFile(t, original)

	p, err := New(nil).Inspect(context.Background(), path, 4)
	require.NoError(t, err)
	assert.Equal(t, 20, p.OriginalLines)
	assert.Equal(t, 4, p.Kept())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestInspect_NegativeBoundary(t *testing.T) {
	path := writeFile(t, lines(2))
	_, err := New(nil).Inspect(context.Background(), path, -1)
	assert.Error(t, err)
}

func TestInspect_CRLFDisplayTrimmed(t *testing.T) {
	path := writeFile(t, "a\r\nb\r\nc\r\n")
	p, err := New(nil).Inspect(context.Background(), path, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", p.BoundaryLine)
	assert.Equal(t, "b", p.NextLine)
}

// Package tactile performs the file reads and writes for the fixup tools.
// Every operation is logged and reported to an optional audit callback.
package tactile

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EHAB0O0/school-activity/internal/logging"
)

// FileOpType defines the types of file operations.
type FileOpType string

const (
	FileOpStat  FileOpType = "stat"
	FileOpRead  FileOpType = "read"
	FileOpWrite FileOpType = "write"
)

// FileAuditEvent represents an audit event for file operations.
type FileAuditEvent struct {
	Type      FileOpType `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Path      string     `json:"path"`
	SessionID string     `json:"session_id"`
	Bytes     int        `json:"bytes,omitempty"`
	LineCount int        `json:"line_count,omitempty"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
	OldHash   string     `json:"old_hash,omitempty"`
	NewHash   string     `json:"new_hash,omitempty"`
}

// FileResult represents the result of a write.
type FileResult struct {
	Path      string `json:"path"`
	Bytes     int    `json:"bytes"`
	LineCount int    `json:"line_count"`
	OldHash   string `json:"old_hash,omitempty"`
	NewHash   string `json:"new_hash"`
	Changed   bool   `json:"changed"`
}

// FileEditor handles file reads and writes with audit logging.
type FileEditor struct {
	mu sync.RWMutex

	auditCallback func(FileAuditEvent)

	// Stamped on every audit event of one run.
	sessionID string

	// Base for relative paths.
	workingDir string
}

// NewFileEditor creates a FileEditor with a fresh session ID.
func NewFileEditor() *FileEditor {
	return NewFileEditorWithSession(uuid.NewString())
}

// NewFileEditorWithSession creates a FileEditor with the given session ID.
func NewFileEditorWithSession(sessionID string) *FileEditor {
	return &FileEditor{
		sessionID:  sessionID,
		workingDir: ".",
	}
}

// SessionID returns the session stamped on audit events.
func (e *FileEditor) SessionID() string {
	return e.sessionID
}

// SetAuditCallback sets the callback for file audit events.
func (e *FileEditor) SetAuditCallback(callback func(FileAuditEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.auditCallback = callback
}

// SetWorkingDir sets the working directory for relative paths.
func (e *FileEditor) SetWorkingDir(dir string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workingDir = dir
}

// WorkingDir returns the base for relative paths.
func (e *FileEditor) WorkingDir() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.workingDir
}

func (e *FileEditor) emitAudit(event FileAuditEvent) {
	e.mu.RLock()
	cb := e.auditCallback
	e.mu.RUnlock()

	event.Timestamp = time.Now()
	event.SessionID = e.sessionID
	if cb != nil {
		cb(event)
	}
}

// ResolvePath resolves a path relative to the working directory.
func (e *FileEditor) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.WorkingDir(), path)
}

func computeHash(content string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
}

// FileExists reports whether anything exists at path.
func (e *FileEditor) FileExists(path string) bool {
	_, err := os.Stat(e.ResolvePath(path))
	if err != nil && !os.IsNotExist(err) {
		logging.TactileWarn("Failed to stat file: %s - %v", path, err)
	}
	e.emitAudit(FileAuditEvent{Type: FileOpStat, Path: path, Success: err == nil})
	return err == nil
}

// ReadText reads the whole file as one string.
func (e *FileEditor) ReadText(path string) (string, error) {
	timer := logging.StartTimer(logging.CategoryTactile, "File read")
	defer timer.Stop()

	absPath := e.ResolvePath(path)
	logging.TactileDebug("Reading file: %s", absPath)

	data, err := os.ReadFile(absPath)
	if err != nil {
		logging.TactileError("File read failed: %s - %v", path, err)
		e.emitAudit(FileAuditEvent{Type: FileOpRead, Path: path, Error: err.Error()})
		return "", err
	}

	content := string(data)
	e.emitAudit(FileAuditEvent{
		Type:      FileOpRead,
		Path:      path,
		Bytes:     len(data),
		LineCount: len(SplitLines(content)),
		Success:   true,
		NewHash:   computeHash(content),
	})
	return content, nil
}

// ReadLines reads a file as lines, each keeping its terminator.
func (e *FileEditor) ReadLines(path string) ([]string, error) {
	content, err := e.ReadText(path)
	if err != nil {
		return nil, err
	}
	lines := SplitLines(content)
	logging.TactileDebug("File read completed: %s (%d lines)", path, len(lines))
	return lines, nil
}

// WriteText replaces the file content atomically: the data goes to a
// temporary file in the same directory which is then renamed over path.
// Existing permissions are preserved.
func (e *FileEditor) WriteText(path, content string) (*FileResult, error) {
	timer := logging.StartTimer(logging.CategoryTactile, "File write")
	defer timer.Stop()

	absPath := e.ResolvePath(path)
	logging.Tactile("Writing file: %s (%d bytes)", absPath, len(content))

	var oldHash string
	mode := os.FileMode(0644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
		if old, err := os.ReadFile(absPath); err == nil {
			oldHash = computeHash(string(old))
		}
	}

	if err := writeFileAtomic(absPath, []byte(content), mode); err != nil {
		logging.TactileError("File write failed: %s - %v", path, err)
		e.emitAudit(FileAuditEvent{Type: FileOpWrite, Path: path, Error: err.Error(), OldHash: oldHash})
		return nil, err
	}

	newHash := computeHash(content)
	result := &FileResult{
		Path:      path,
		Bytes:     len(content),
		LineCount: len(SplitLines(content)),
		OldHash:   oldHash,
		NewHash:   newHash,
		Changed:   oldHash != newHash,
	}
	e.emitAudit(FileAuditEvent{
		Type:      FileOpWrite,
		Path:      path,
		Bytes:     result.Bytes,
		LineCount: result.LineCount,
		Success:   true,
		OldHash:   oldHash,
		NewHash:   newHash,
	})
	logging.TactileDebug("File written successfully: %s (hash=%s)", path, newHash[:16])
	return result, nil
}

// WriteLines writes lines verbatim; terminators must already be present.
func (e *FileEditor) WriteLines(path string, lines []string) (*FileResult, error) {
	return e.WriteText(path, strings.Join(lines, ""))
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	committed = true
	return nil
}

// SplitLines splits text into lines that keep their "\n" terminator.
// A trailing segment without a terminator is still a line, so
// strings.Join(SplitLines(s), "") == s for every s.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kbukum/transcriptor/logger"
)

// Workspace is a per-request temporary directory. Every intermediate file a
// request creates lives inside it, so Close removes them all at once.
type Workspace struct {
	dir string
	log *logger.Logger
}

// NewWorkspace creates a fresh uniquely named directory under root
// (os.TempDir() when root is empty).
func NewWorkspace(root, prefix string, log *logger.Logger) (*Workspace, error) {
	if log == nil {
		log = logger.Nop()
	}
	if prefix == "" {
		prefix = "transcriptor"
	}
	id := uuid.NewString()[:8]
	dir, err := os.MkdirTemp(root, fmt.Sprintf("%s-%s-*", prefix, id))
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{
		dir: dir,
		log: log.WithComponent("media.workspace").WithFields(logger.Fields(logger.FieldPath, dir)),
	}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// Path returns the absolute path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, filepath.Base(name))
}

// WriteFile stores data as name inside the workspace and returns its path.
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	p := w.Path(name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return p, nil
}

// Remove deletes one file. Failures are logged, never returned.
func (w *Workspace) Remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		w.log.Warn("failed to remove intermediate file", logger.MergeWithError(
			logger.Fields(logger.FieldPath, path), err))
	}
}

// Close removes the workspace and everything in it. It is safe to call
// more than once. Failures are logged, never returned.
func (w *Workspace) Close() {
	if err := os.RemoveAll(w.dir); err != nil {
		w.log.Warn("failed to remove workspace", logger.ErrorFields("cleanup", err))
		return
	}
	w.log.Debug("workspace removed")
}

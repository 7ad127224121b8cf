// Package workspace provides request-scoped ephemeral storage for the
// conversion pipeline. Every conversion acquires one Workspace, stages
// its input and output files inside it, and releases it on every exit
// path. Release is idempotent and never propagates an error: a failed
// removal is logged and ignored.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fileforge/convertd/internal/logger"
)

// Workspace is an exclusively owned ephemeral directory plus a list of
// loose temp files created outside it (e.g. downloaded inputs). It is
// destroyed exactly once per request regardless of outcome.
type Workspace struct {
	dir string

	mu       sync.Mutex
	loose    []string
	released bool
}

// Acquire creates a fresh, process-unique working directory.
func Acquire() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "convertd-*")
	if err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}
	logger.Debug("acquired workspace %s", dir)
	return &Workspace{dir: dir}, nil
}

// Dir returns the backing directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path for a named file inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteFile writes content to a named file inside the workspace and
// returns its path.
func (w *Workspace) WriteFile(name string, content []byte) (string, error) {
	path := w.Path(name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// TrackLoose registers a file outside the directory for removal on
// release.
func (w *Workspace) TrackLoose(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loose = append(w.loose, path)
}

// Release removes the directory, everything in it, and all tracked
// loose files. It runs at most once; later calls are no-ops. Removal
// failures (e.g. an already-deleted file) are logged and swallowed so
// cleanup can never mask the request's real outcome.
func (w *Workspace) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.released {
		return
	}
	w.released = true

	if err := os.RemoveAll(w.dir); err != nil {
		logger.Warn("releasing workspace %s: %v", w.dir, err)
	}
	for _, path := range w.loose {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("removing temp file %s: %v", path, err)
		}
	}
	logger.Debug("released workspace %s", w.dir)
}

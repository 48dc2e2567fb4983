package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS hands out per-request scratch directories under a base directory.
// Every directory is single-use and removed by its cleanup func.
type FS struct {
	BaseDir string
}

// New creates an FS rooted at baseDir; empty baseDir uses the OS temp dir.
func New(baseDir string) *FS {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &FS{BaseDir: baseDir}
}

// Create makes a fresh directory for the request. The returned cleanup
// removes the directory and everything in it; callers defer it on every
// exit path.
func (f *FS) Create(requestID string) (string, func(), error) {
	dir := filepath.Join(f.BaseDir, "tubegrab-"+requestID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	return dir, cleanup, nil
}

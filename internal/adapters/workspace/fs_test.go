package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndCleanup(t *testing.T) {
	ws := New(t.TempDir())

	dir, cleanup, err := ws.Create("req-1")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// cleanup removes the directory and its contents
	require.NoError(t, os.WriteFile(filepath.Join(dir, "video.mp4"), []byte("x"), 0o644))
	cleanup()

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateIsolatesRequests(t *testing.T) {
	ws := New(t.TempDir())

	dirA, cleanupA, err := ws.Create("req-a")
	require.NoError(t, err)
	defer cleanupA()
	dirB, cleanupB, err := ws.Create("req-b")
	require.NoError(t, err)
	defer cleanupB()

	assert.NotEqual(t, dirA, dirB)
}

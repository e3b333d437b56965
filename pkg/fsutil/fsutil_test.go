package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/fsutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.ts", "let a = 1;\n")
	content, snap, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "let a = 1;\n", string(content))
	assert.Equal(t, path, snap.Path)
	assert.Equal(t, int64(len(content)), snap.Size)
	assert.Equal(t, os.FileMode(0o600), snap.Mode.Perm())
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.js"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(ctx, t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrNotRegularFile)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.ReadFile(canceled, writeFile(t, "a.js", ""))
	require.ErrorIs(t, err, context.Canceled)
}

func TestChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "a.js", "a;\n")
	_, snap, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	changed, err := fsutil.Changed(ctx, snap)
	require.NoError(t, err)
	assert.False(t, changed)

	// Same size, different content and a later timestamp.
	require.NoError(t, os.WriteFile(path, []byte("b;\n"), 0o600))
	later := snap.ModTime.Add(time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err = fsutil.Changed(ctx, snap)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, os.Remove(path))
	changed, err = fsutil.Changed(ctx, snap)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = fsutil.Changed(ctx, nil)
	require.ErrorIs(t, err, fsutil.ErrNilSnapshot)
}

package fsutil_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/fsutil"
)

func TestCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "a.js", "let a=1\n")
	original, snap, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	written, err := fsutil.Commit(ctx, snap, original, original, fsutil.CommitOptions{})
	require.NoError(t, err)
	assert.False(t, written)

	written, err = fsutil.Commit(ctx, snap, original, []byte("let a = 1;\n"), fsutil.CommitOptions{Backup: true})
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1;\n", string(content))

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "let a=1\n", string(backup))
}

func TestCommitRefusesExternalChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "a.js", "a\n")
	original, snap, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("edited\n"), 0o600))

	_, err = fsutil.Commit(ctx, snap, original, []byte("a;\n"), fsutil.CommitOptions{})
	require.ErrorIs(t, err, fsutil.ErrChangedOnDisk)

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	written, err := fsutil.Commit(ctx, snap, original, []byte("a;\n"), fsutil.CommitOptions{Force: true})
	require.NoError(t, err)
	assert.True(t, written)
}

func TestBackups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, "a.ts", "first\n")

	created, err := fsutil.CreateBackup(ctx, path)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("second\n"), 0o600))
	created, err = fsutil.CreateBackup(ctx, path)
	require.NoError(t, err)
	assert.False(t, created, "an existing backup is kept")

	restored, err := fsutil.RestoreBackup(ctx, path)
	require.NoError(t, err)
	assert.True(t, restored)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(content))
	assert.NoFileExists(t, fsutil.BackupPath(path))

	restored, err = fsutil.RestoreBackup(ctx, path)
	require.NoError(t, err)
	assert.False(t, restored)
}

package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	rels := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func projectTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/a.js":                  "a();\n",
		"src/b.ts":                  "b();\n",
		"src/nested/c.tsx":          "c();\n",
		"src/data.json":             "{}\n",
		"legacy/out.js":             "out();\n",
		"README.md":                 "# Title\n",
		"notes.txt":                 "text\n",
		"node_modules/pkg/index.js": "module.exports = 1;\n",
		".cache/d.js":               "d();\n",
	})
	return dir
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		paths   []string
		mode    runner.Mode
		include []string
		ignore  []string
		want    []string
	}{
		{
			name: "lint walks supported files",
			mode: runner.ModeLint,
			want: []string{"legacy/out.js", "src/a.js", "src/b.ts", "src/data.json", "src/nested/c.tsx"},
		},
		{
			name: "formatting picks up markdown",
			mode: runner.ModeFormat,
			want: []string{"README.md", "legacy/out.js", "src/a.js", "src/b.ts", "src/data.json", "src/nested/c.tsx"},
		},
		{
			name:   "ignored directory",
			mode:   runner.ModeLint,
			ignore: []string{"legacy"},
			want:   []string{"src/a.js", "src/b.ts", "src/data.json", "src/nested/c.tsx"},
		},
		{
			name:   "ignored extension",
			mode:   runner.ModeLint,
			ignore: []string{"*.json", "src/nested/**"},
			want:   []string{"legacy/out.js", "src/a.js", "src/b.ts"},
		},
		{
			name:    "include globs",
			mode:    runner.ModeLint,
			include: []string{"src/*.ts", "**/*.tsx"},
			want:    []string{"src/b.ts", "src/nested/c.tsx"},
		},
		{
			name:  "explicit files and deduplication",
			mode:  runner.ModeLint,
			paths: []string{"src/nested", "src/nested/c.tsx", "src/a.js", "notes.txt"},
			want:  []string{"src/a.js", "src/nested/c.tsx"},
		},
		{
			name:   "explicit file still honours ignore",
			mode:   runner.ModeLint,
			paths:  []string{"legacy/out.js", "src/a.js"},
			ignore: []string{"legacy/**"},
			want:   []string{"src/a.js"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := projectTree(t)
			cfg := config.NewConfig()
			cfg.Include = testCase.include
			cfg.Ignore = testCase.ignore

			files, err := runner.Discover(context.Background(), runner.Options{
				Paths:      testCase.paths,
				WorkingDir: dir,
				Mode:       testCase.mode,
				Config:     cfg,
			})
			require.NoError(t, err)
			assert.Equal(t, testCase.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_GlobsAreRelativeToRoot(t *testing.T) {
	t.Parallel()

	dir := projectTree(t)
	cfg := config.NewConfig()
	cfg.Ignore = []string{"src/nested/**"}

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: filepath.Join(dir, "src"),
		Root:       dir,
		Mode:       runner.ModeLint,
		Config:     cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "b.ts", "data.json"}, relPaths(t, filepath.Join(dir, "src"), files))
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := projectTree(t)

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat missing")

	cfg := config.NewConfig()
	cfg.Ignore = []string{"src/["}
	_, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ignore")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"real/a.js": "a();\n", "project/b.js": "b();\n"})
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "project", "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	tests := []struct {
		name   string
		follow bool
		want   int
	}{
		{name: "not followed", follow: false, want: 1},
		{name: "followed", follow: true, want: 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:     filepath.Join(dir, "project"),
				FollowSymlinks: testCase.follow,
			})
			require.NoError(t, err)
			assert.Len(t, files, testCase.want)
		})
	}
}

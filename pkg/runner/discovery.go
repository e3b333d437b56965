package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/langdetect"
)

// alwaysSkippedDirs are never descended into, whatever the configuration.
//
//nolint:gochecknoglobals // Read-only lookup table.
var alwaysSkippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
	".svn":         true,
}

// SkippedDir reports whether a directory with this base name is never
// descended into. Hidden directories are skipped along with VCS metadata
// and installed packages.
func SkippedDir(name string) bool {
	return alwaysSkippedDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// matchers holds the compiled include and ignore globs of a run.
type matchers struct {
	root     string
	include  *config.PathMatcher
	ignore   *config.PathMatcher
	markdown bool
}

func newMatchers(root string, cfg *config.Config, markdown bool) (*matchers, error) {
	include, err := config.NewPathMatcher(cfg.Include)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	ignore, err := config.NewPathMatcher(cfg.Ignore)
	if err != nil {
		return nil, fmt.Errorf("ignore: %w", err)
	}
	return &matchers{root: root, include: include, ignore: ignore, markdown: markdown}, nil
}

// rel returns path relative to the project root, slash-separated.
func (m *matchers) rel(file string) string {
	rel, err := filepath.Rel(m.root, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

func (m *matchers) skipDir(dir string) bool {
	rel := m.rel(dir)
	return rel != "." && m.ignore.MatchDir(rel)
}

// matchFile applies the language, include and ignore filters. Vendored
// files are only skipped during directory walks.
func (m *matchers) matchFile(file string, walking bool) bool {
	lang := langdetect.FromPath(file)
	if !SupportedLanguage(lang) && !(m.markdown && lang.IsMarkdown()) {
		return false
	}
	rel := m.rel(file)
	if walking && langdetect.IsVendored(rel) {
		return false
	}
	if m.ignore.Match(rel) {
		return false
	}
	if dir := path.Dir(rel); dir != "." && !strings.HasPrefix(rel, "../") && m.ignore.MatchDir(dir) {
		return false
	}
	return m.include.Empty() || m.include.Match(rel)
}

// Discover finds supported source files under opts.Paths. Markdown files
// are included when the run formats. It returns a deterministically sorted
// list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	root := workDir
	if opts.Root != "" {
		if root, err = filepath.Abs(opts.Root); err != nil {
			return nil, fmt.Errorf("resolve root: %w", err)
		}
	}
	match, err := newMatchers(root, opts.config(), opts.mode().Formats())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(file string) {
		if _, ok := seen[file]; !ok {
			seen[file] = struct{}{}
			files = append(files, file)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if match.matchFile(absPath, false) {
				add(absPath)
			}
			continue
		}
		discovered, err := walkDirectory(ctx, absPath, match, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks a directory and returns matching files.
func walkDirectory(ctx context.Context, root string, match *matchers, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			name := entry.Name()
			if SkippedDir(name) || match.skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root, so this
				// cannot recurse through the link itself.
				subFiles, err := walkDirectory(ctx, realPath, match, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if match.matchFile(path, true) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

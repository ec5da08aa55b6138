package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// Discover resolves opts.Paths into a deterministically sorted list of
// files to check. Files named directly are taken regardless of
// extension; directories expand recursively to the configured
// extensions; patterns with glob metacharacters expand against the
// filesystem. Paths that cannot be read are returned separately.
func Discover(ctx context.Context, opts Options) ([]string, []UnreadableFile, error) {
	fsys := opts.effectiveFS()

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	var unreadable []UnreadableFile

	add := func(path string) {
		if _, dup := seen[path]; !dup {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.Paths {
		select {
		case <-ctx.Done():
			return nil, nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		if isGlobPattern(inputPath) {
			matched, err := expandGlob(fsys, workDir, inputPath, excludes)
			if err != nil {
				return nil, nil, err
			}
			for _, m := range matched {
				add(m)
			}
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := fsys.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) || os.IsPermission(err) {
				unreadable = append(unreadable, UnreadableFile{Path: inputPath, Err: err})
				continue
			}
			return nil, nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			found, err := walkDirectory(fsys, absPath, workDir, opts.effectiveExtensions(), excludes)
			if err != nil {
				return nil, nil, err
			}
			for _, f := range found {
				add(f)
			}
		} else {
			add(absPath)
		}
	}

	sort.Strings(files)
	sort.Slice(unreadable, func(i, j int) bool { return unreadable[i].Path < unreadable[j].Path })
	return files, unreadable, nil
}

// isGlobPattern reports whether path carries glob metacharacters.
func isGlobPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// expandGlob walks the tree under workDir and collects files whose
// relative path matches pattern.
func expandGlob(fsys afero.Fs, workDir, pattern string, excludes []glob.Glob) ([]string, error) {
	matcher, err := glob.Compile(filepath.ToSlash(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	root := workDir
	if filepath.IsAbs(pattern) {
		root = string(filepath.Separator)
	}

	var files []string
	walkErr := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		rel := relSlash(workDir, path)
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if matchesAny(excludes, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		candidate := rel
		if filepath.IsAbs(pattern) {
			candidate = filepath.ToSlash(path)
		}
		if matcher.Match(candidate) && !matchesAny(excludes, rel) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("expand %s: %w", pattern, walkErr)
	}
	return files, nil
}

// walkDirectory recursively collects files with matching extensions.
func walkDirectory(fsys afero.Fs, root, workDir string, extensions []string, excludes []glob.Glob) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		rel := relSlash(workDir, path)
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if matchesAny(excludes, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if !hasExtension(path, extensions) || matchesAny(excludes, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}
	return files, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchesAny(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func relSlash(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

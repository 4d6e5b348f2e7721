// pkg/batch/candidates.go
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Candidate is an archive discovered under the source root
type Candidate struct {
	// Absolute path of the archive
	Path string

	// Path relative to the source root, empty if it could not be computed
	RelPath string
}

// hasExtension reports whether name ends with ext, ignoring case
func hasExtension(name, ext string) bool {
	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}

// collectCandidates walks srcRoot and returns every regular file (or
// symlink to one) carrying ext, sorted by relative path. srcRoot and
// dstRoot must already be free of symlinks. An unreadable root is fatal;
// unreadable subtrees are recorded in result.Errors and skipped.
func collectCandidates(srcRoot, dstRoot, ext string, matcher *ignoreMatcher, result *Result) ([]Candidate, error) {
	info, err := os.Stat(srcRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceRoot, srcRoot)
	}

	var candidates []Candidate

	err = filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == srcRoot {
				return err
			}
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(srcRoot, path)
		if relErr != nil {
			relPath = ""
		}

		if d.IsDir() {
			if path == srcRoot {
				return nil
			}
			// Never descend into our own output when it lives inside the source
			if path == dstRoot {
				return filepath.SkipDir
			}
			if relPath != "" && matcher.ShouldIgnoreDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !hasExtension(d.Name(), ext) || !isRegularFile(path, d) {
			return nil
		}
		if relPath != "" && matcher.ShouldIgnore(relPath) {
			return nil
		}

		candidates = append(candidates, Candidate{
			Path:    path,
			RelPath: relPath,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRoot, err)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].RelPath < candidates[j].RelPath
	})

	return candidates, nil
}

// isRegularFile accepts regular files and symlinks to regular files
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// resolvePath follows symlinks in the longest existing prefix of path,
// so it can be compared with paths found under a resolved root
func resolvePath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(resolvePath(parent), filepath.Base(path))
}

// destinationFor mirrors the candidate's relative parent under dstRoot and
// names the folder after the archive without its extension. A candidate
// whose relative path is unknown or escapes the source root is placed
// directly under dstRoot; fellBack reports that case.
func destinationFor(c Candidate, dstRoot, ext string) (dest string, fellBack bool) {
	relPath := c.RelPath
	if relPath == "" || !filepath.IsLocal(relPath) {
		relPath = filepath.Base(c.Path)
		fellBack = true
	}

	base := filepath.Base(relPath)
	stem := base
	if hasExtension(base, ext) {
		stem = base[:len(base)-len(ext)]
	}

	return filepath.Join(dstRoot, filepath.Dir(relPath), stem), fellBack
}

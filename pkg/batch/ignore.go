// pkg/batch/ignore.go
package batch

import (
	"io/fs"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreMatcher excludes candidates using gitignore syntax.
// Patterns given on the command line apply from the source root; ignore
// files found in the tree apply from their own directory downwards.
type ignoreMatcher struct {
	excludes *ignore.GitIgnore            // Patterns passed in Options.Excludes
	matchers map[string]*ignore.GitIgnore // Key: relative dir path ("" = root)
}

// newIgnoreMatcher compiles excludes and, if fileName is not empty, every
// fileName found under baseDir. Returns nil when there is nothing to match.
func newIgnoreMatcher(baseDir string, excludes []string, fileName string) (*ignoreMatcher, error) {
	baseDir = filepath.Clean(baseDir)
	im := &ignoreMatcher{
		matchers: make(map[string]*ignore.GitIgnore),
	}

	if len(excludes) > 0 {
		im.excludes = ignore.CompileIgnoreLines(excludes...)
	}

	if fileName != "" {
		err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable paths are reported by the candidate walk
				return nil
			}
			if d.IsDir() || d.Name() != fileName {
				return nil
			}

			relDir, err := filepath.Rel(baseDir, filepath.Dir(path))
			if err != nil {
				return nil
			}
			if relDir == "." {
				relDir = ""
			}

			matcher, err := ignore.CompileIgnoreFile(path)
			if err != nil {
				// Skip unreadable ignore files silently
				return nil
			}
			im.matchers[filepath.ToSlash(relDir)] = matcher
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if im.excludes == nil && len(im.matchers) == 0 {
		return nil, nil
	}
	return im, nil
}

// ShouldIgnore checks if a file at relPath (relative to the source root) is excluded
func (im *ignoreMatcher) ShouldIgnore(relPath string) bool {
	if im == nil {
		return false
	}

	relPath = filepath.ToSlash(relPath)

	if im.excludes != nil && im.excludes.MatchesPath(relPath) {
		return true
	}

	for _, dirPath := range buildHierarchy(relPath) {
		matcher, exists := im.matchers[dirPath]
		if !exists {
			continue
		}

		pathToCheck := relPath
		if dirPath != "" {
			pathToCheck = strings.TrimPrefix(relPath, dirPath+"/")
		}
		if matcher.MatchesPath(pathToCheck) {
			return true
		}
	}

	return false
}

// ShouldIgnoreDir checks if a whole directory can be pruned.
// Only directory patterns ("build/") prune; "*.arc" must not prune a
// directory that happens to be named "foo.arc".
func (im *ignoreMatcher) ShouldIgnoreDir(relPath string) bool {
	if im == nil {
		return false
	}

	matchesWithSlash := im.ShouldIgnore(relPath + "/")
	matchesWithoutSlash := im.ShouldIgnore(relPath)

	return matchesWithSlash && !matchesWithoutSlash
}

// buildHierarchy lists directory paths from the root to the file's parent.
// For "A/B/x.arc" it returns ["", "A", "A/B"].
func buildHierarchy(relPath string) []string {
	hierarchy := []string{""}

	parentDir := filepath.ToSlash(filepath.Dir(relPath))
	if parentDir == "." || parentDir == "" {
		return hierarchy
	}

	current := ""
	for _, part := range strings.Split(parentDir, "/") {
		if part == "" {
			continue
		}
		if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}
		hierarchy = append(hierarchy, current)
	}

	return hierarchy
}

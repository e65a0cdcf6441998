package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/primerlint/pkg/jsx/parser"
)

// ErrBadPattern is returned for malformed include or exclude globs.
var ErrBadPattern = errors.New("invalid glob pattern")

// Default discovery patterns.
var (
	DefaultInclude = []string{"**/*.{js,jsx,mjs,cjs,ts,tsx,mts,cts}"}
	DefaultExclude = []string{"**/node_modules/**", "**/dist/**", "**/build/**", "**/*.d.ts"}
)

// Discovery selects source files under a set of roots. Patterns are
// doublestar globs matched against slash-separated paths relative to the
// root being walked.
type Discovery struct {
	Include []string
	Exclude []string
}

// NewDiscovery returns a Discovery with the given patterns, falling back
// to the defaults for empty lists.
func NewDiscovery(include, exclude []string) (Discovery, error) {
	d := Discovery{Include: include, Exclude: exclude}
	if len(d.Include) == 0 {
		d.Include = DefaultInclude
	}
	if len(d.Exclude) == 0 {
		d.Exclude = DefaultExclude
	}
	for _, p := range append(append([]string(nil), d.Include...), d.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return Discovery{}, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
	}
	return d, nil
}

// Discover returns the source files under roots, sorted and without
// duplicates. A root that is a file is returned as is when the parser
// supports its extension.
func (d Discovery) Discover(roots ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", root, err)
		}
		if !info.IsDir() {
			if parser.Supports(root) {
				add(filepath.Clean(root))
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if entry.IsDir() {
				if path != root && d.skipDir(entry.Name(), rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Matches(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether the slash-separated relative path rel is a
// source file selected by the patterns.
func (d Discovery) Matches(rel string) bool {
	if !parser.Supports(rel) || matchAny(d.Exclude, rel) {
		return false
	}
	return matchAny(d.Include, rel)
}

// Selects reports whether Discover, walking a root, would return the file
// at the slash-separated relative path rel.
func (d Discovery) Selects(rel string) bool {
	parts := strings.Split(rel, "/")
	for i := 0; i < len(parts)-1; i++ {
		if d.skipDir(parts[i], strings.Join(parts[:i+1], "/")) {
			return false
		}
	}
	return d.Matches(rel)
}

func (d Discovery) skipDir(name, rel string) bool {
	if name == "node_modules" || (len(name) > 1 && name[0] == '.') {
		return true
	}
	// A pattern like "dist/**" excludes the whole directory.
	return matchAny(d.Exclude, rel+"/")
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

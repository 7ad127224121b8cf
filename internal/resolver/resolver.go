// Package resolver locates input files from the loose paths callers
// supply. Callers frequently pass bare filenames, wrong-case names, or
// paths copied from another machine, so resolution tries progressively
// fuzzier matches across a set of likely directories before giving up.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fileforge/convertd/internal/logger"
)

// ErrNotFound reports that no candidate file could be located.
var ErrNotFound = fmt.Errorf("input file not found")

// Resolver finds files by name across a set of search directories.
type Resolver struct {
	searchDirs []string
}

// New creates a Resolver searching the default locations: the working
// directory, the system temp dir, an uploads dir under the working
// directory, and the user's Downloads and Desktop folders.
func New() *Resolver {
	dirs := []string{"."}
	if wd, err := os.Getwd(); err == nil {
		dirs[0] = wd
		dirs = append(dirs, filepath.Join(wd, "uploads"))
	}
	dirs = append(dirs, os.TempDir(), "/tmp")
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Downloads"), filepath.Join(home, "Desktop"))
	}
	return &Resolver{searchDirs: dedupe(dirs)}
}

// NewWithDirs creates a Resolver searching only the given directories.
func NewWithDirs(dirs ...string) *Resolver {
	return &Resolver{searchDirs: dedupe(dirs)}
}

// Resolve returns an existing path for the requested file. An absolute
// or relative path that exists is returned unchanged. Otherwise the
// basename is looked up in every search directory, trying the exact
// name, case variants, and finally a wildcard match on the stem.
func (r *Resolver) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFound)
	}
	if fileExists(path) {
		return path, nil
	}

	base := filepath.Base(path)
	for _, dir := range r.searchDirs {
		if found, ok := r.lookupIn(dir, base); ok {
			logger.Debug("resolved %s to %s", path, found)
			return found, nil
		}
	}
	return "", fmt.Errorf("%w: %s (searched %d locations)", ErrNotFound, path, len(r.searchDirs))
}

// lookupIn tries the name variants for base inside dir.
func (r *Resolver) lookupIn(dir, base string) (string, bool) {
	for _, name := range nameVariants(base) {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate, true
		}
	}

	// Last resort: any file in dir whose name contains the stem.
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "", false
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*"+stem+"*"))
	if err != nil {
		return "", false
	}
	for _, m := range matches {
		if fileExists(m) {
			return m, true
		}
	}
	return "", false
}

// nameVariants lists the exact name plus common case variants of the
// name and its extension.
func nameVariants(base string) []string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	variants := []string{
		base,
		strings.ToLower(base),
		strings.ToUpper(base),
	}
	if ext != "" {
		variants = append(variants,
			stem+strings.ToLower(ext),
			stem+strings.ToUpper(ext),
			strings.ToLower(stem)+ext,
		)
	}
	return dedupe(variants)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Package fs provides file system adapters for source artifacts.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// skippedDirs are never walked.
var skippedDirs = map[string]struct{}{
	".git":         {},
	".jj":          {},
	"node_modules": {},
	".annocache":   {},
}

// Walker provides directory walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root, skipping VCS, dependency and cache
// directories plus any entry whose name matches one of ignores.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped
			}
			if skip, action := w.shouldSkip(d, ignores); skip {
				return action
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Dirs yields root and every directory below it, with the same skip rules as
// WalkFiles. A skipped root yields nothing.
func (w *Walker) Dirs(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if skip, action := w.shouldSkip(d, ignores); skip {
				return action
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip reports whether d is skipped and the WalkDir result to return for it.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()
	if d.IsDir() {
		if _, ok := skippedDirs[name]; ok {
			return true, filepath.SkipDir
		}
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}
	return false, nil
}

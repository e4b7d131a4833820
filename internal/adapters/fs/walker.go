// Package fs provides file system adapters for scanning vendor directories,
// walking, hashing and copying dependency trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// vcsDirs are version control metadata directories never treated as dependency content.
var vcsDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
	".jj":  {},
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every non-directory entry below root in lexical order,
// skipping version control metadata and entries matching one of ignores.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root {
				if skip, action := w.skip(d, ignores); skip {
					return action
				}
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

// skip reports whether d is excluded from the walk, and what WalkDir should do about it.
func (w *Walker) skip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if _, ok := vcsDirs[name]; ok && d.IsDir() {
		return true, filepath.SkipDir
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

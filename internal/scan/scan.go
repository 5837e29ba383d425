// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan finds directories of page images and lists their contents
// in page order.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HasImageExt reports whether name ends in one of exts, ignoring case.
// Entries in exts are expected to carry a leading dot.
func HasImageExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// FindImageDirectories walks root and returns every directory, root included,
// that directly contains at least one file matching exts. Directories are
// returned in lexical walk order, each once.
//
// A missing root, or a root that is not a directory, yields an empty result.
// Subdirectories that cannot be read are skipped. A root that is a symlink
// to a directory is followed; returned paths keep root as their prefix.
func FindImageDirectories(root string, exts []string) []string {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	// WalkDir does not follow a symlinked root, so walk its target.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil
	}

	var dirs []string
	_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != walkRoot {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if dirHasImage(path, exts) {
			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return nil
			}
			dirs = append(dirs, filepath.Join(root, rel))
		}
		return nil
	})
	return dirs
}

func dirHasImage(dir string, exts []string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && HasImageExt(e.Name(), exts) {
			return true
		}
	}
	return false
}

// ListImages returns the full paths of the files in dir matching exts,
// without descending into subdirectories. Paths are sorted by plain byte
// order of the file name, so "10.jpg" sorts before "2.jpg". Callers that
// need numeric order must zero-pad their file names.
func ListImages(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !HasImageExt(e.Name(), exts) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming derives a collection title from where an image directory
// sits under the scan root.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// ResolveName returns the collection name for dir relative to root.
//
// Chapter and volume folders are usually numbered, so when the last path
// segment is all digits the segment above it names the collection:
// root/Foo/1 -> Foo, root/Foo/Bar/3 -> Bar, root/Foo -> Foo.
//
// When there is no segment above a numeric one (root/7), or dir is root
// itself, the root directory's own base name is used.
func ResolveName(dir, root string) (string, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s against %s: %w", dir, root, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not inside %s", dir, root)
	}

	var segments []string
	if rel != "." {
		segments = strings.Split(filepath.ToSlash(rel), "/")
	}

	switch {
	case len(segments) == 0:
		return rootName(root)
	case !isNumeric(segments[len(segments)-1]):
		return segments[len(segments)-1], nil
	case len(segments) >= 2:
		return segments[len(segments)-2], nil
	default:
		return rootName(root)
	}
}

func rootName(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." || name == "" {
		return "", fmt.Errorf("cannot derive a collection name from root %s", root)
	}
	return name, nil
}

// isNumeric reports whether s is made only of decimal digits in any
// script, so full-width chapter numbers such as "１２" count.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

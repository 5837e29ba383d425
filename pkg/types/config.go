// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// DefaultRoot is the download directory the binder scans when no root is configured.
const DefaultRoot = "/home/runner/work/jmcomic/download"

// DefaultJPEGQuality is the quality used when re-encoding normalized pages.
const DefaultJPEGQuality = 95

// DefaultExtensions lists the image extensions picked up by the scanner.
var DefaultExtensions = []string{".jpg", ".webp"}

// BinderConfig holds settings for a bind run.
type BinderConfig struct {
	// Root is the directory tree to scan. PDFs are written directly under it.
	Root string `json:"root" yaml:"root"`

	// Extensions are the image file extensions to collect, matched case-insensitively.
	Extensions []string `json:"extensions" yaml:"extensions"`

	// JPEGQuality is the encoding quality (1-100) for page images.
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`

	// HistoryDB is the SQLite run ledger path. Empty disables the ledger.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`

	// ReportPath is where a YAML run report is written. Empty disables it.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`
}

// DefaultBinderConfig returns the configuration used when nothing is overridden.
func DefaultBinderConfig() BinderConfig {
	return BinderConfig{
		Root:        DefaultRoot,
		Extensions:  append([]string(nil), DefaultExtensions...),
		JPEGQuality: DefaultJPEGQuality,
	}
}

// Normalize lowercases extensions and ensures each has a leading dot.
// It returns an error for settings that cannot produce a usable run.
func (c *BinderConfig) Normalize() error {
	if c.Root == "" {
		return fmt.Errorf("root directory is not set")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality %d out of range 1-100", c.JPEGQuality)
	}

	exts := make([]string, 0, len(c.Extensions))
	seen := make(map[string]bool)
	for _, e := range c.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		exts = append(exts, e)
	}
	if len(exts) == 0 {
		return fmt.Errorf("no image extensions configured")
	}
	c.Extensions = exts
	return nil
}

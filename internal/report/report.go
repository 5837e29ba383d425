// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a YAML summary of a bind run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manga-binder/internal/convert"
)

// Report is the YAML document written after a run.
type Report struct {
	Root        string    `yaml:"root"`
	GeneratedAt time.Time `yaml:"generated_at"`
	Converted   int       `yaml:"converted"`
	Skipped     int       `yaml:"skipped"`
	Failed      int       `yaml:"failed"`
	Collections []Entry   `yaml:"collections"`
}

// Entry describes one collection in the report.
type Entry struct {
	Name   string `yaml:"name"`
	Dir    string `yaml:"dir"`
	Output string `yaml:"output,omitempty"`
	Status string `yaml:"status"`
	Reason string `yaml:"reason,omitempty"`
	Pages  int    `yaml:"pages"`
	Error  string `yaml:"error,omitempty"`
}

// Build converts a batch result into a Report.
func Build(root string, result convert.BatchResult) Report {
	r := Report{
		Root:        root,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Converted:   result.Converted,
		Skipped:     result.Skipped,
		Failed:      result.Failed,
		Collections: make([]Entry, len(result.Results)),
	}
	for i, res := range result.Results {
		r.Collections[i] = Entry{
			Name:   res.Collection.Name,
			Dir:    res.Collection.Dir,
			Output: res.Collection.OutputPath,
			Status: string(res.Status),
			Reason: string(res.Reason),
			Pages:  res.Pages,
			Error:  res.ErrorText(),
		}
	}
	return r
}

// Write marshals the run report for result to path, creating parent
// directories as needed.
func Write(path, root string, result convert.BatchResult) error {
	data, err := yaml.Marshal(Build(root, result))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/manga-binder/internal/convert"
	"github.com/pdiddy/manga-binder/pkg/types"
)

func TestWrite(t *testing.T) {
	result := convert.BatchResult{
		Converted: 1,
		Skipped:   1,
		Results: []types.ConversionResult{
			{
				Collection: types.Collection{Dir: "/r/A/1", Name: "A", OutputPath: "/r/A.pdf"},
				Status:     types.ConversionDone,
				Pages:      3,
			},
			{
				Collection: types.Collection{Dir: "/r/B", Name: "B", OutputPath: "/r/B.pdf"},
				Status:     types.ConversionFailed,
				Reason:     types.ReasonNoImages,
				Err:        errors.New("no images"),
			},
		},
	}

	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	if err := Write(path, "/r", result); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"root: /r",
		"converted: 1",
		"skipped: 1",
		"failed: 0",
		"name: A",
		"status: converted",
		"pages: 3",
		"reason: no_images",
		"error: no images",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q:\n%s", want, content)
		}
	}
	if strings.Count(content, "- name:") != 2 {
		t.Errorf("expected 2 collection entries:\n%s", content)
	}
}

func TestBuild_EmptyRun(t *testing.T) {
	r := Build("/r", convert.BatchResult{})
	if len(r.Collections) != 0 {
		t.Errorf("collections = %d, want 0", len(r.Collections))
	}
	if r.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be set")
	}
}

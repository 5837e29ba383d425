// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manga-binder/pkg/types"
)

func TestBinderConfig_Defaults(t *testing.T) {
	cfg, err := binderConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, types.DefaultRoot, cfg.Root)
	assert.Equal(t, []string{".jpg", ".webp"}, cfg.Extensions)
	assert.Equal(t, types.DefaultJPEGQuality, cfg.JPEGQuality)
	assert.Empty(t, cfg.HistoryDB)
	assert.Empty(t, cfg.ReportPath)
}

func TestBinderConfig_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("root", "/srv/comics")
	v.Set("extensions", []string{"JPG"})
	v.Set("jpeg_quality", 70)
	v.Set("history_db", "/tmp/h.db")
	v.Set("report", "/tmp/r.yaml")

	cfg, err := binderConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/comics", cfg.Root)
	assert.Equal(t, []string{".jpg"}, cfg.Extensions)
	assert.Equal(t, 70, cfg.JPEGQuality)
	assert.Equal(t, "/tmp/h.db", cfg.HistoryDB)
	assert.Equal(t, "/tmp/r.yaml", cfg.ReportPath)
}

func TestBinderConfig_ExtensionsFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"comma separated", ".jpg,.webp", []string{".jpg", ".webp"}},
		{"comma with spaces", "JPG, webp", []string{".jpg", ".webp"}},
		{"space separated", ".jpg .webp", []string{".jpg", ".webp"}},
		{"single", "webp", []string{".webp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MANGA_BINDER_EXTENSIONS", tt.value)
			v := viper.New()
			v.SetEnvPrefix("MANGA_BINDER")
			v.AutomaticEnv()

			cfg, err := binderConfig(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Extensions)
		})
	}
}

func TestBinderConfig_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("jpeg_quality", 0)

	_, err := binderConfig(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func writeJPEG(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	img := image.NewGray(image.Rect(0, 0, 4, 6))
	img.SetGray(1, 1, color.Gray{Y: 200})
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestBindThenHistory(t *testing.T) {
	root := t.TempDir()
	writeJPEG(t, filepath.Join(root, "Foo", "1"), "001.jpg")
	writeJPEG(t, filepath.Join(root, "Foo", "1"), "002.jpg")
	state := t.TempDir()
	dbPath := filepath.Join(state, "history.db")
	reportPath := filepath.Join(state, "report.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"bind", "--root", root, "--history-db", dbPath, "--report", reportPath})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.FileExists(t, filepath.Join(root, "Foo.pdf"))
	assert.FileExists(t, reportPath)
	assert.Contains(t, out.String(), "Batch summary: 1 converted")
	assert.Contains(t, out.String(), "recorded run 1")

	out.Reset()
	rootCmd.SetArgs([]string{"history", "--history-db", dbPath, "--run", "1"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Foo")
	assert.Contains(t, out.String(), "converted")
}

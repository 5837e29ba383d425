// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBinderConfig(t *testing.T) {
	cfg := DefaultBinderConfig()
	assert.Equal(t, DefaultRoot, cfg.Root)
	assert.Equal(t, []string{".jpg", ".webp"}, cfg.Extensions)
	assert.Equal(t, 95, cfg.JPEGQuality)

	// The returned slice must not alias the package default.
	cfg.Extensions[0] = ".png"
	assert.Equal(t, ".jpg", DefaultExtensions[0])
}

func TestBinderConfig_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BinderConfig
		want    []string
		wantErr string
	}{
		{
			name: "lowercases and adds dots",
			cfg:  BinderConfig{Root: "/r", Extensions: []string{"JPG", ".WebP", " jpg "}, JPEGQuality: 80},
			want: []string{".jpg", ".webp"},
		},
		{
			name:    "empty root",
			cfg:     BinderConfig{Extensions: []string{".jpg"}, JPEGQuality: 80},
			wantErr: "root directory",
		},
		{
			name:    "quality too high",
			cfg:     BinderConfig{Root: "/r", Extensions: []string{".jpg"}, JPEGQuality: 101},
			wantErr: "out of range",
		},
		{
			name:    "quality zero",
			cfg:     BinderConfig{Root: "/r", Extensions: []string{".jpg"}, JPEGQuality: 0},
			wantErr: "out of range",
		},
		{
			name:    "no usable extensions",
			cfg:     BinderConfig{Root: "/r", Extensions: []string{"", "."}, JPEGQuality: 80},
			wantErr: "no image extensions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Normalize()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Extensions)
		})
	}
}

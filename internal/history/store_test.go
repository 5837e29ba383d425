// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manga-binder/internal/convert"
	"github.com/pdiddy/manga-binder/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() convert.BatchResult {
	return convert.BatchResult{
		Converted: 1,
		Failed:    1,
		Results: []types.ConversionResult{
			{
				Collection: types.Collection{Dir: "/r/A/1", Name: "A", OutputPath: "/r/A.pdf"},
				Status:     types.ConversionDone,
				Pages:      12,
			},
			{
				Collection: types.Collection{Dir: "/r/B", Name: "B", OutputPath: "/r/B.pdf"},
				Status:     types.ConversionFailed,
				Reason:     types.ReasonDecode,
				Err:        errors.New("decoding image /r/B/002.jpg: unexpected EOF"),
			},
		},
	}
}

func TestRecordAndCollections(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	id, err := s.Record(ctx, "/r", started, started.Add(time.Minute), sampleResult())
	require.NoError(t, err)
	assert.Positive(t, id)

	cols, err := s.Collections(ctx, id)
	require.NoError(t, err)
	require.Len(t, cols, 2)

	assert.Equal(t, CollectionRecord{
		Name: "A", Dir: "/r/A/1", Output: "/r/A.pdf", Status: "converted", Pages: 12,
	}, cols[0])
	assert.Equal(t, "B", cols[1].Name)
	assert.Equal(t, "failed", cols[1].Status)
	assert.Equal(t, "decode", cols[1].Reason)
	assert.Contains(t, cols[1].Error, "unexpected EOF")
}

func TestRuns_NewestFirstWithLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		_, err := s.Record(ctx, "/r", start, start.Add(time.Minute), sampleResult())
		require.NoError(t, err)
	}

	runs, err := s.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.True(t, runs[0].StartedAt.Equal(base.Add(2*time.Hour)))
	assert.Equal(t, 1, runs[0].Converted)
	assert.Equal(t, 1, runs[0].Failed)

	all, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecord_EmptyRun(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now()

	id, err := s.Record(ctx, "/missing", now, now, convert.BatchResult{})
	require.NoError(t, err)

	cols, err := s.Collections(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(ctx, "/r", time.Now(), time.Now(), sampleResult())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

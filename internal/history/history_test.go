package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *History {
	h, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	return h
}

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", DefaultDir)

	h, err := Open(dir)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, filepath.Join(dir, FileName), h.Path())
	_, err = os.Stat(h.Path())
	assert.NoError(t, err)
}

func TestHistory_RecordAndList(t *testing.T) {
	h := openTemp(t)

	records, err := h.List()
	require.NoError(t, err)
	assert.Empty(t, records, "new history should be empty")

	first := Record{
		Variant:     "release",
		Task:        "renameApkAfterRelease",
		From:        "/out/app-release.apk",
		To:          "/out/Demo [2.3.1].apk",
		AppName:     "Demo",
		VersionName: "2.3.1",
		VersionCode: 23,
		Timestamp:   time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	second := first
	second.Variant = "freeRelease"
	second.Timestamp = time.Time{}

	require.NoError(t, h.Record(first))
	require.NoError(t, h.Record(second))

	records, err = h.List()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "release", records[0].Variant)
	assert.True(t, first.Timestamp.Equal(records[0].Timestamp))
	assert.Equal(t, "/out/Demo [2.3.1].apk", records[0].To)
	assert.Equal(t, 23, records[0].VersionCode)

	assert.Equal(t, "freeRelease", records[1].Variant)
	assert.False(t, records[1].Timestamp.IsZero(), "zero timestamp should be filled in")
}

func TestHistory_Latest(t *testing.T) {
	h := openTemp(t)

	require.NoError(t, h.Record(Record{Variant: "release", To: "a.apk"}))
	require.NoError(t, h.Record(Record{Variant: "debug", To: "b.apk"}))
	require.NoError(t, h.Record(Record{Variant: "release", To: "c.apk"}))

	rec, err := h.Latest("release")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "c.apk", rec.To)

	rec, err = h.Latest("staging")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestHistory_ClearAndStats(t *testing.T) {
	h := openTemp(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, h.Record(Record{Variant: "release"}))
	}

	count, size, err := h.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Greater(t, size, int64(0))

	require.NoError(t, h.Clear())

	count, _, err = h.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Usable after clearing
	require.NoError(t, h.Record(Record{Variant: "release"}))
	records, err := h.List()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHistory_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	h, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, h.Record(Record{Variant: "release", To: "Demo.apk"}))
	require.NoError(t, h.Close())

	h, err = Open(dir)
	require.NoError(t, err)
	defer h.Close()

	records, err := h.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Demo.apk", records[0].To)
}

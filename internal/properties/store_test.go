package properties

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// writeProps writes content to path and pins its modification time
func writeProps(t require.TestingT, path, content string, mtime time.Time) {
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)

	err = os.Chtimes(path, mtime, mtime)
	require.NoError(t, err)
}

func TestStore_LoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.properties")
	content := `# Android SDK location
sdk.dir=/opt/android-sdk
! bang comments are comments too

  app.name = Demo App
api.key: abc123
`
	writeProps(t, path, content, time.Unix(1_700_000_000, 0))

	store := NewStore()
	props, err := store.Load(path)
	require.NoError(t, err)

	assert.Equal(t, Properties{
		"sdk.dir":  "/opt/android-sdk",
		"app.name": "Demo App",
		"api.key":  "abc123",
	}, props)
}

func TestStore_LoadKeepsReferencesVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.properties")
	writeProps(t, path, "base=/opt\nsdk.dir=${base}/sdk\n", time.Unix(1_700_000_000, 0))

	props, err := NewStore().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${base}/sdk", props["sdk.dir"])
}

func TestStore_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.properties")
	store := NewStore()

	props, err := store.Load(path)
	require.NoError(t, err)
	assert.Nil(t, props)

	entry, ok := store.Lookup(path)
	require.True(t, ok, "missing file should be recorded")
	assert.False(t, entry.Exists)
	assert.Nil(t, entry.Properties)

	// Second lookup stays absent
	props, err = store.Load(path)
	require.NoError(t, err)
	assert.Nil(t, props)

	// Creating the file invalidates the absent record
	writeProps(t, path, "key=value", time.Unix(1_700_000_000, 0))

	props, err = store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "value", props["key"])
}

func TestStore_FileRemovedAfterLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.properties")
	writeProps(t, path, "key=value", time.Unix(1_700_000_000, 0))

	store := NewStore()
	props, err := store.Load(path)
	require.NoError(t, err)
	assert.NotNil(t, props)

	require.NoError(t, os.Remove(path))

	props, err = store.Load(path)
	require.NoError(t, err)
	assert.Nil(t, props)

	entry, ok := store.Lookup(path)
	require.True(t, ok)
	assert.False(t, entry.Exists)
}

func TestStore_ReloadsWhenStampChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.properties")
	first := time.Unix(1_700_000_000, 0)
	writeProps(t, path, "version=1", first)

	store := NewStore()
	props, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1", props["version"])

	writeProps(t, path, "version=2", first.Add(time.Second))

	props, err = store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2", props["version"], "changed stamp should trigger a reload")
}

func TestStore_StaleWhenOnlyContentChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.properties")
	stamp := time.Unix(1_700_000_000, 0)
	writeProps(t, path, "version=1", stamp)

	store := NewStore()
	_, err := store.Load(path)
	require.NoError(t, err)

	// Same stamp, different content: the cached value is served
	writeProps(t, path, "version=2", stamp)

	props, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1", props["version"])
}

func TestStore_ParseFailureKeepsPreviousEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.properties")
	stamp := time.Unix(1_700_000_000, 0)
	writeProps(t, path, "key=good", stamp)

	store := NewStore()
	_, err := store.Load(path)
	require.NoError(t, err)

	writeProps(t, path, `key=\uZZZZ`, stamp.Add(time.Second))

	_, err = store.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	entry, ok := store.Lookup(path)
	require.True(t, ok)
	assert.Equal(t, "good", entry.Properties["key"])
	assert.Equal(t, stamp.UnixNano(), entry.Stamp)
}

func TestStore_DirectoryIsAnError(t *testing.T) {
	dir := t.TempDir()

	_, err := NewStore().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestStore_OneEntryPerPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gradle.properties")
	writeProps(t, path, "a=1", time.Unix(1_700_000_000, 0))

	store := NewStore()
	_, err := store.Load(path)
	require.NoError(t, err)

	// Unclean spelling of the same path shares the entry
	_, err = store.Load(filepath.Join(dir, ".", "gradle.properties"))
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
}

func TestStore_ConcurrentLoads(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 4)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("p%d.properties", i))
		writeProps(t, paths[i], fmt.Sprintf("index=%d", i), time.Unix(1_700_000_000, 0))
	}

	store := NewStore()

	var wg sync.WaitGroup
	for n := 0; n < 32; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			path := paths[n%len(paths)]

			props, err := store.Load(path)
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprint(n%len(paths)), props["index"])
		}(n)
	}

	wg.Wait()
	assert.Equal(t, len(paths), store.Len())
}

func TestStore_LoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.properties")
	base := time.Unix(1_700_000_000, 0)
	store := NewStore()
	round := 0

	rapid.Check(t, func(t *rapid.T) {
		want := rapid.MapOf(
			rapid.StringMatching(`[a-z][a-z0-9.]{0,8}`),
			rapid.StringMatching(`[A-Za-z0-9._/-]{0,12}`),
		).Draw(t, "props")

		keys := make([]string, 0, len(want))
		for k := range want {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "%s=%s\n", k, want[k])
		}

		// A fresh stamp per round guarantees the store sees a change
		round++
		writeProps(t, path, b.String(), base.Add(time.Duration(round)*time.Second))

		got, err := store.Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}

		if len(got) != len(want) {
			t.Fatalf("got %d keys, want %d", len(got), len(want))
		}

		for k, v := range want {
			if got[k] != v {
				t.Fatalf("key %q: got %q, want %q", k, got[k], v)
			}
		}
	})
}

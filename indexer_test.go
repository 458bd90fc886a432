package aionxml

import (
	"encoding/json"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

const skillsDocument = `<skills version="2">
  <weather type="skill">
    <version>1.0</version>
    <author>blueShard</author>
  </weather>
  <clock type="skill">
    <version>0.3</version>
    <widget>nested</widget>
  </clock>
</skills>`

func writeTestDocument(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func newTestIndexer(t *testing.T, data string) *Indexer {
	t.Helper()
	ix, err := NewIndexer(Config{}, writeTestDocument(t, data))
	require.NoError(t, err)
	return ix
}

func TestIndexerQuery(t *testing.T) {
	t.Run("all in traversal order", func(t *testing.T) {
		ix := newTestIndexer(t, skillsDocument)
		result := ix.Query(All)
		require.Equal(t, []string{"skills", "weather", "clock", "version", "author", "widget"}, result.Keys())

		root, _ := result.Get("skills")
		require.Len(t, root, 1)
		require.Equal(t, ParentInfo{Attrs: Attrs{}}, root[0].Parent)
		require.Equal(t, []string{"weather", "clock"}, root[0].ChildrenTags)
		require.Equal(t, Attrs{"version": "2"}, root[0].Attrs)

		versions, _ := result.Get("version")
		require.Len(t, versions, 2)
		require.Equal(t, "weather", versions[0].Parent.Tag)
		require.Equal(t, "1.0", versions[0].Text)
		require.Equal(t, "clock", versions[1].Parent.Tag)
		require.Equal(t, Attrs{"type": "skill"}, versions[1].Parent.Attrs)
	})
	t.Run("single tag", func(t *testing.T) {
		ix := newTestIndexer(t, skillsDocument)
		result := ix.Query("version")
		require.Equal(t, []string{"version"}, result.Keys())
		entries, _ := result.Get("version")
		require.Len(t, entries, 2)
	})
	t.Run("requested but absent", func(t *testing.T) {
		ix := newTestIndexer(t, skillsDocument)
		result := ix.Query("missing", "author")
		require.Equal(t, []string{"missing", "author"}, result.Keys())
		missing, ok := result.Get("missing")
		require.True(t, ok)
		require.Empty(t, missing)
		_, ok = result.Get("version")
		require.False(t, ok)
	})
	t.Run("root shorthand", func(t *testing.T) {
		ix := newTestIndexer(t, skillsDocument)
		key, entries, err := ix.Query(Root).At(0)
		require.NoError(t, err)
		require.Equal(t, "skills", key)
		require.Len(t, entries, 1)
		require.Empty(t, entries[0].Parent.Tag)
	})
	t.Run("descends below matches", func(t *testing.T) {
		ix := newTestIndexer(t, "<r><a><a>inner</a></a></r>")
		entries, _ := ix.Query("a").Get("a")
		require.Len(t, entries, 2)
		require.Equal(t, "a", entries[1].Parent.Tag)
		require.Equal(t, "inner", entries[1].Text)
	})
	t.Run("requested tags come first with all", func(t *testing.T) {
		ix := newTestIndexer(t, skillsDocument)
		result := ix.Query("author", All)
		require.Equal(t, []string{"author", "skills", "weather", "clock", "version", "widget"}, result.Keys())
	})
	t.Run("no tags", func(t *testing.T) {
		ix := newTestIndexer(t, skillsDocument)
		require.Zero(t, ix.Query().Len())
	})
	t.Run("stable positional order", func(t *testing.T) {
		ix := newTestIndexer(t, skillsDocument)
		first := ix.Query(All)
		second := ix.Query(All)
		require.Equal(t, first.Keys(), second.Keys())
		for pos := range first.Len() {
			k1, _, err := first.At(pos)
			require.NoError(t, err)
			k2, _, err := second.At(pos)
			require.NoError(t, err)
			require.Equal(t, k1, k2)
		}
	})
	t.Run("entries are snapshots", func(t *testing.T) {
		ix := newTestIndexer(t, skillsDocument)
		entries, _ := ix.Query("weather").Get("weather")
		entries[0].Attrs["type"] = "changed"
		again, _ := ix.Query("weather").Get("weather")
		require.Equal(t, "skill", again[0].Attrs["type"])
	})
	t.Run("json keeps order", func(t *testing.T) {
		ix := newTestIndexer(t, "<r><b/><a/></r>")
		data, err := json.Marshal(ix.Query(All))
		require.NoError(t, err)
		require.Equal(t,
			`{"r":[{"tag":"r","text":"","has_text":false,"attrib":{},"parent":{"tag":"","text":"","has_text":false,"attrib":{}},"children":["b","a"]}],`+
				`"b":[{"tag":"b","text":"","has_text":false,"attrib":{},"parent":{"tag":"r","text":"","has_text":false,"attrib":{}},"children":[]}],`+
				`"a":[{"tag":"a","text":"","has_text":false,"attrib":{},"parent":{"tag":"r","text":"","has_text":false,"attrib":{}},"children":[]}]}`,
			string(data))
	})
}

func TestIndexerExists(t *testing.T) {
	ix := newTestIndexer(t, skillsDocument)
	require.True(t, ix.Exists("weather"))
	require.True(t, ix.Exists("clock"))
	// widget exists in the tree, but not directly under the root.
	require.False(t, ix.Exists("widget"))
	require.False(t, ix.Exists("version"))
	require.False(t, ix.Exists("skills"))
}

func TestIndexerLoadErrors(t *testing.T) {
	_, err := NewIndexer(Config{}, writeTestDocument(t, "<broken>"))
	require.True(t, IsMalformed(err))

	_, err = NewIndexer(Config{}, filepath.Join(t.TempDir(), "missing.xml"))
	require.True(t, IsStorageUnavailable(err))
}

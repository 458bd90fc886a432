package aionxml

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestBuilder(t *testing.T) {
	t.Run("build and find", func(t *testing.T) {
		b := NewBuilder(Config{}, "catalog", nil)
		b.AddRootChild("widget", Attr("id", "1"))
		ix := b.Query(All)
		entries, ok := ix.Get("widget")
		require.True(t, ok)
		require.Len(t, entries, 1)
		require.Equal(t, "catalog", entries[0].Parent.Tag)
		require.Equal(t, Attrs{"id": "1"}, entries[0].Attrs)
	})
	t.Run("bulk add across matches", func(t *testing.T) {
		b := NewBuilder(Config{}, "root", nil)
		b.AddRootChild("group", Attr("n", "1"))
		b.AddRootChild("group", Attr("n", "2"))
		require.NoError(t, b.AddChild("group", "item", Text("x")))
		for _, group := range b.Root().Children {
			require.Len(t, group.Children, 1)
			require.Equal(t, "item", group.Children[0].Tag)
			require.Equal(t, "x", group.Children[0].Text)
		}
	})
	t.Run("parent filter narrows", func(t *testing.T) {
		b := NewBuilder(Config{}, "root", nil)
		b.AddRootChild("group", Attr("n", "1"))
		b.AddRootChild("group", Attr("n", "2"))
		require.NoError(t, b.AddChild("group", "item", ParentAttrs(Attrs{"n": "2"})))
		require.Empty(t, b.Root().Children[0].Children)
		require.Len(t, b.Root().Children[1].Children, 1)

		require.NoError(t, b.AddChild("group", "other", ParentAttrs(Attrs{"n": "3"})))
		require.NotContains(t, b.KnownTags(), "other")
	})
	t.Run("nested parents", func(t *testing.T) {
		b := NewBuilder(Config{}, "root", nil)
		b.AddRootChild("a")
		require.NoError(t, b.AddChild("a", "b"))
		require.NoError(t, b.AddChild("b", "c", Text("deep")))
		out, err := b.Serialize(false)
		require.NoError(t, err)
		require.Equal(t, "<root><a><b><c>deep</c></b></a></root>", out)
	})
	t.Run("strict parent check", func(t *testing.T) {
		b := NewBuilder(Config{}, "root", nil)
		b.AddRootChild("known")
		err := b.AddChild("never_created_tag", "x")
		var unknown *UnknownParentError
		require.ErrorAs(t, err, &unknown)
		require.Equal(t, "never_created_tag", unknown.Tag)
		require.Equal(t, []string{"root", "known"}, unknown.Known)
		require.Empty(t, b.Root().Children[0].Children)
	})
	t.Run("attribute maps are not shared", func(t *testing.T) {
		shared := Attrs{"k": "v"}
		b := NewBuilder(Config{}, "root", shared)
		first := b.AddRootChild("a", Attributes(shared))
		second := b.AddRootChild("b")
		first.Attrs["k"] = "changed"
		require.Equal(t, "v", shared["k"])
		require.Equal(t, "v", b.Root().Attrs["k"])
		require.Empty(t, second.Attrs)
	})
	t.Run("persist and round trip", func(t *testing.T) {
		b := NewBuilder(Config{}, "catalog", Attrs{"locale": "en_US"})
		b.AddRootChild("widget", Attr("id", "1"), Text("first"))
		b.AddRootChild("widget", Attr("id", "2"))
		b.AddRootChild("gadget")
		require.NoError(t, b.AddChild("widget", "part", Text("bolt"), Attr("size", "m")))
		require.NoError(t, b.AddChild("part", "note", Text("zinc")))

		for _, pretty := range []bool{false, true} {
			path := filepath.Join(t.TempDir(), "catalog.xml")
			require.NoError(t, b.Persist(path, Truncate, pretty))
			ix, err := NewIndexer(Config{}, path)
			require.NoError(t, err)

			want := b.Query(All)
			got := ix.Query(All)
			require.Equal(t, want.Keys(), got.Keys())
			if diff := cmp.Diff(want, got, cmp.AllowUnexported(Index{}), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (pretty=%v) (-want +got):\n%s", pretty, diff)
			}
		}
	})
	t.Run("persist append", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.xml")
		require.NoError(t, os.WriteFile(path, []byte("<!-- header -->\n"), 0o644))
		b := NewBuilder(Config{}, "root", nil)
		require.NoError(t, b.Persist(path, Append, false))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "<!-- header -->\n<root></root>", string(data))
	})
}

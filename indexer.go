package aionxml

import (
	"go.uber.org/zap"
	"slices"
)

// Indexer answers tag queries over a document loaded once from storage.
type Indexer struct {
	cfg  Config
	path string
	root *Element
}

func NewIndexer(cfg Config, path string) (*Indexer, error) {
	root, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	cfg.logger().Debug("document loaded",
		zap.String("path", path),
		zap.String("root", root.Tag))
	return &Indexer{cfg: cfg, path: path, root: root}, nil
}

func (ix *Indexer) Path() string {
	return ix.path
}

func (ix *Indexer) RootTag() string {
	return ix.root.Tag
}

// Query re-derives an index from the loaded tree on every call.
func (ix *Indexer) Query(tags ...string) *Index {
	return BuildIndex(ix.root, tags...)
}

// Exists reports whether tag is a direct child of the root. Only the first entry of the
// root bucket is inspected; deeper occurrences do not count.
func (ix *Indexer) Exists(tag string) bool {
	_, entries, err := ix.Query(Root).At(0)
	if err != nil || len(entries) == 0 {
		return false
	}
	return slices.Contains(entries[0].ChildrenTags, tag)
}

func (ix *Indexer) Serialize(pretty bool) (string, error) {
	return RenderString(ix.root, pretty)
}

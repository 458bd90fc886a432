package aionxml

import (
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"iter"
	"slices"
)

// ParentInfo describes the parent of an indexed element. It is empty for the root.
type ParentInfo struct {
	Tag     string `json:"tag" yaml:"tag"`
	Text    string `json:"text" yaml:"text"`
	HasText bool   `json:"has_text" yaml:"has_text"`
	Attrs   Attrs  `json:"attrib" yaml:"attrib"`
}

// IndexEntry is a read-only snapshot of one occurrence of a tag.
type IndexEntry struct {
	Tag          string     `json:"tag" yaml:"tag"`
	Text         string     `json:"text" yaml:"text"`
	HasText      bool       `json:"has_text" yaml:"has_text"`
	Attrs        Attrs      `json:"attrib" yaml:"attrib"`
	Parent       ParentInfo `json:"parent" yaml:"parent"`
	ChildrenTags []string   `json:"children" yaml:"children"`
}

// Index maps tags to their entries and remembers the order in which tags were first seen,
// so buckets can be addressed by key or by position.
type Index struct {
	keys    []string
	buckets map[string][]IndexEntry
}

func NewIndex() *Index {
	return &Index{buckets: make(map[string][]IndexEntry)}
}

func (ix *Index) ensure(tag string) {
	if _, ok := ix.buckets[tag]; ok {
		return
	}
	ix.keys = append(ix.keys, tag)
	ix.buckets[tag] = []IndexEntry{}
}

func (ix *Index) add(entry IndexEntry) {
	ix.ensure(entry.Tag)
	ix.buckets[entry.Tag] = append(ix.buckets[entry.Tag], entry)
}

func (ix *Index) Get(tag string) ([]IndexEntry, bool) {
	entries, ok := ix.buckets[tag]
	return entries, ok
}

func (ix *Index) Has(tag string) bool {
	_, ok := ix.buckets[tag]
	return ok
}

func (ix *Index) Keys() []string {
	return slices.Clone(ix.keys)
}

func (ix *Index) Len() int {
	return len(ix.keys)
}

// At returns the bucket at position pos in first-seen order.
func (ix *Index) At(pos int) (string, []IndexEntry, error) {
	if pos < 0 || pos >= len(ix.keys) {
		return "", nil, errors.Wrapf(ErrIndexOutOfRange, "position %d of %d", pos, len(ix.keys))
	}
	key := ix.keys[pos]
	return key, ix.buckets[key], nil
}

func (ix *Index) All() iter.Seq2[string, []IndexEntry] {
	return func(yield func(string, []IndexEntry) bool) {
		for _, key := range ix.keys {
			if !yield(key, ix.buckets[key]) {
				return
			}
		}
	}
}

// Entries yields every entry, bucket by bucket.
func (ix *Index) Entries() iter.Seq[IndexEntry] {
	return func(yield func(IndexEntry) bool) {
		for _, key := range ix.keys {
			for _, entry := range ix.buckets[key] {
				if !yield(entry) {
					return
				}
			}
		}
	}
}

// Where keeps the entries for which expression evaluates to true. Keys are kept even
// when their bucket ends up empty.
func (ix *Index) Where(expression string) (*Index, error) {
	expr, err := CompileExpression(expression)
	if err != nil {
		return nil, err
	}
	filtered := NewIndex()
	for key, entries := range ix.All() {
		filtered.ensure(key)
		for idx := range entries {
			ok, err := Eval[bool](expr, entryParameters{entry: &entries[idx]})
			if err != nil {
				return nil, err
			}
			if ok {
				filtered.buckets[key] = append(filtered.buckets[key], entries[idx])
			}
		}
	}
	return filtered, nil
}

func (ix *Index) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for idx, key := range ix.keys {
		if idx > 0 {
			buf.WriteByte(',')
		}
		keyData, err := json.Marshal(key)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		entriesData, err := json.Marshal(ix.buckets[key])
		if err != nil {
			return nil, errors.WithStack(err)
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		buf.Write(entriesData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type queued struct {
	elem   *Element
	parent *Element
}

// BuildIndex walks root breadth-first and records an entry for every element whose tag
// was requested. Tags may contain Root, which names the actual root tag, and All, which
// indexes every tag. Requested tags that never occur still get an empty bucket.
func BuildIndex(root *Element, tags ...string) *Index {
	ix := NewIndex()
	if root == nil {
		return ix
	}
	all := false
	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		switch tag {
		case All:
			all = true
			continue
		case Root:
			tag = root.Tag
		}
		wanted[tag] = true
		ix.ensure(tag)
	}
	if !all && len(wanted) == 0 {
		return ix
	}
	queue := []queued{{elem: root}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if all || wanted[current.elem.Tag] {
			ix.add(newIndexEntry(current.elem, current.parent))
		}
		for _, child := range current.elem.Children {
			queue = append(queue, queued{elem: child, parent: current.elem})
		}
	}
	return ix
}

func newIndexEntry(elem, parent *Element) IndexEntry {
	entry := IndexEntry{
		Tag:          elem.Tag,
		Text:         elem.Text,
		HasText:      elem.HasText,
		Attrs:        elem.Attrs.Clone(),
		Parent:       ParentInfo{Attrs: Attrs{}},
		ChildrenTags: elem.ChildTags(),
	}
	if parent != nil {
		entry.Parent = ParentInfo{
			Tag:     parent.Tag,
			Text:    parent.Text,
			HasText: parent.HasText,
			Attrs:   parent.Attrs.Clone(),
		}
	}
	return entry
}

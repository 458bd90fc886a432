package aionxml

import (
	"iter"
	"maps"
	"slices"
	"weak"
)

type Attrs map[string]string

func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Equal reports whether both maps hold the same pairs. A nil map equals an empty one.
func (a Attrs) Equal(other Attrs) bool {
	return maps.Equal(a, other)
}

// Contains reports whether every pair of subset is present in a.
func (a Attrs) Contains(subset Attrs) bool {
	for key, value := range subset {
		current, ok := a[key]
		if !ok || current != value {
			return false
		}
	}
	return true
}

func (a Attrs) Merge(other Attrs) {
	for key, value := range other {
		a[key] = value
	}
}

func (a Attrs) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

func (a Attrs) Clone() Attrs {
	clone := make(Attrs, len(a))
	maps.Copy(clone, a)
	return clone
}

// Element is one node of a document tree. A child belongs to exactly one parent.
type Element struct {
	Parent   weak.Pointer[Element]
	Tag      string
	Text     string
	HasText  bool
	Attrs    Attrs
	Children []*Element
}

func NewElement(tag string) *Element {
	return &Element{
		Tag:   tag,
		Attrs: make(Attrs),
	}
}

func (elem *Element) SetText(text string) {
	elem.Text = text
	elem.HasText = true
}

func (elem *Element) ClearText() {
	elem.Text = ""
	elem.HasText = false
}

func (elem *Element) ParentElement() *Element {
	return elem.Parent.Value()
}

func (elem *Element) Append(child *Element) {
	if child == nil {
		panic(DetachedElementError)
	}
	child.Parent = weak.Make(elem)
	elem.Children = append(elem.Children, child)
}

func (elem *Element) AppendNew(tag string) *Element {
	child := NewElement(tag)
	elem.Append(child)
	return child
}

// RemoveChildren detaches every direct child tagged tag and returns how many were removed.
func (elem *Element) RemoveChildren(tag string) int {
	kept := elem.Children[:0]
	removed := 0
	for _, child := range elem.Children {
		if child.Tag == tag {
			child.Parent = weak.Pointer[Element]{}
			removed++
			continue
		}
		kept = append(kept, child)
	}
	clear(elem.Children[len(kept):])
	elem.Children = kept
	return removed
}

func (elem *Element) ChildTags() []string {
	tags := make([]string, len(elem.Children))
	for idx, child := range elem.Children {
		tags[idx] = child.Tag
	}
	return tags
}

// Iter yields elem and its descendants in document order, keeping only those tagged tag.
// An empty tag yields every element.
func (elem *Element) Iter(tag string) iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		elem.walk(tag, yield)
	}
}

func (elem *Element) walk(tag string, yield func(*Element) bool) bool {
	if tag == "" || elem.Tag == tag {
		if !yield(elem) {
			return false
		}
	}
	for _, child := range elem.Children {
		if !child.walk(tag, yield) {
			return false
		}
	}
	return true
}

func (elem *Element) Copy(target *Element) {
	if target == nil {
		panic(DetachedElementError)
	}
	target.Tag = elem.Tag
	target.Text = elem.Text
	target.HasText = elem.HasText
	target.Attrs = elem.Attrs.Clone()
	target.Children = make([]*Element, len(elem.Children))
	for idx, current := range elem.Children {
		target.Children[idx] = current.Clone()
		target.Children[idx].Parent = weak.Make(target)
	}
}

func (elem *Element) Clone() *Element {
	copyElem := new(Element)
	elem.Copy(copyElem)
	return copyElem
}

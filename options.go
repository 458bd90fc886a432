package aionxml

import (
	"go.uber.org/zap"
	"os"
)

const (
	// Root resolves to the tag of the document's actual root element.
	Root = "<root>"
	// All requests an index of every tag in the document.
	All = "<all>"
)

const DefaultPerm os.FileMode = 0o644

type WriteMode int

const (
	Truncate WriteMode = iota
	Append
)

func (m WriteMode) String() string {
	if m == Append {
		return "append"
	}
	return "truncate"
}

// Config is handed to every component at construction. The zero value is usable.
type Config struct {
	Logger *zap.Logger
	// Compact selects single-line output for auto-persist and Persist defaults.
	Compact bool
	Perm    os.FileMode
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c Config) perm() os.FileMode {
	if c.Perm == 0 {
		return DefaultPerm
	}
	return c.Perm
}

type elementSpec struct {
	text         string
	hasText      bool
	attrs        Attrs
	parentAttrs  Attrs
	parentFilter bool
}

type ElementOption func(*elementSpec)

func Text(text string) ElementOption {
	return func(spec *elementSpec) {
		spec.text = text
		spec.hasText = true
	}
}

func Attr(key, value string) ElementOption {
	return func(spec *elementSpec) {
		spec.attrs[key] = value
	}
}

func Attributes(attrs Attrs) ElementOption {
	return func(spec *elementSpec) {
		spec.attrs.Merge(attrs)
	}
}

// ParentAttrs restricts matched parents to those whose attributes equal attrs exactly.
// ParentAttrs(nil) therefore only matches parents without attributes.
func ParentAttrs(attrs Attrs) ElementOption {
	return func(spec *elementSpec) {
		spec.parentAttrs = attrs.Clone()
		spec.parentFilter = true
	}
}

func newElementSpec(opts []ElementOption) *elementSpec {
	spec := &elementSpec{attrs: make(Attrs)}
	for _, opt := range opts {
		opt(spec)
	}
	return spec
}

func (spec *elementSpec) matchParent(parent *Element) bool {
	if !spec.parentFilter {
		return true
	}
	return parent.Attrs.Equal(spec.parentAttrs)
}

func (spec *elementSpec) newElement(tag string) *Element {
	elem := NewElement(tag)
	elem.Attrs = spec.attrs.Clone()
	if spec.hasText {
		elem.SetText(spec.text)
	}
	return elem
}

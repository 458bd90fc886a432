package aionxml

import (
	"go.uber.org/zap"
	"slices"
)

// Builder assembles a new document in memory. Parents are addressed by tag and every
// matching element receives the new child.
type Builder struct {
	cfg   Config
	root  *Element
	known []string
}

func NewBuilder(cfg Config, rootTag string, rootAttrs Attrs) *Builder {
	root := NewElement(rootTag)
	root.Attrs = rootAttrs.Clone()
	return &Builder{
		cfg:   cfg,
		root:  root,
		known: []string{rootTag},
	}
}

func (b *Builder) Root() *Element {
	return b.root
}

func (b *Builder) KnownTags() []string {
	return slices.Clone(b.known)
}

func (b *Builder) register(tag string) {
	if !slices.Contains(b.known, tag) {
		b.known = append(b.known, tag)
	}
}

// AddRootChild appends a new element directly under the root. ParentAttrs is ignored.
func (b *Builder) AddRootChild(tag string, opts ...ElementOption) *Element {
	spec := newElementSpec(opts)
	child := spec.newElement(tag)
	b.root.Append(child)
	b.register(tag)
	b.cfg.logger().Debug("root child added", zap.String("tag", tag))
	return child
}

// AddChild appends a new element under every element tagged parentTag, narrowed by
// ParentAttrs when given. It fails with *UnknownParentError when parentTag was never
// created by this builder.
func (b *Builder) AddChild(parentTag, tag string, opts ...ElementOption) error {
	if !slices.Contains(b.known, parentTag) {
		return &UnknownParentError{Tag: parentTag, Known: b.KnownTags()}
	}
	spec := newElementSpec(opts)
	parents := make([]*Element, 0, 1)
	for parent := range b.root.Iter(parentTag) {
		if spec.matchParent(parent) {
			parents = append(parents, parent)
		}
	}
	for _, parent := range parents {
		parent.Append(spec.newElement(tag))
	}
	if len(parents) > 0 {
		b.register(tag)
	}
	b.cfg.logger().Debug("child added",
		zap.String("parent", parentTag),
		zap.String("tag", tag),
		zap.Int("matches", len(parents)))
	return nil
}

func (b *Builder) Query(tags ...string) *Index {
	return BuildIndex(b.root, tags...)
}

func (b *Builder) Serialize(pretty bool) (string, error) {
	return RenderString(b.root, pretty)
}

func (b *Builder) Persist(path string, mode WriteMode, pretty bool) error {
	data, err := RenderBytes(b.root, pretty)
	if err != nil {
		return err
	}
	if err := WriteDocument(path, data, mode, b.cfg.perm()); err != nil {
		return err
	}
	b.cfg.logger().Debug("document persisted",
		zap.String("path", path),
		zap.Stringer("mode", mode),
		zap.Bool("pretty", pretty))
	return nil
}

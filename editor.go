package aionxml

import (
	"go.uber.org/zap"
)

// Editor mutates a stored document. With autoPersist every mutating call is followed by a
// full rewrite of the file; otherwise changes live only in memory until Persist.
type Editor struct {
	cfg         Config
	path        string
	root        *Element
	autoPersist bool
}

func NewEditor(cfg Config, path string, autoPersist bool) (*Editor, error) {
	root, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	cfg.logger().Debug("document loaded for editing",
		zap.String("path", path),
		zap.Bool("auto_persist", autoPersist))
	return &Editor{
		cfg:         cfg,
		path:        path,
		root:        root,
		autoPersist: autoPersist,
	}, nil
}

func (ed *Editor) Path() string {
	return ed.path
}

func (ed *Editor) Root() *Element {
	return ed.root
}

func (ed *Editor) Query(tags ...string) *Index {
	return BuildIndex(ed.root, tags...)
}

// Preview applies fn to a detached copy of the tree and returns the copy, leaving the
// editor untouched. Auto-persist is suppressed for the copy.
func (ed *Editor) Preview(fn func(*Editor) error) (*Element, error) {
	shadow := &Editor{cfg: ed.cfg, path: ed.path, root: ed.root.Clone()}
	if err := fn(shadow); err != nil {
		return nil, err
	}
	return shadow.root, nil
}

// parents resolves parentTag to the elements it addresses. Root, or the root's own tag,
// addresses the root element only when rootOnly is set.
func (ed *Editor) parents(parentTag string, spec *elementSpec, rootOnly bool) []*Element {
	if parentTag == Root {
		parentTag = ed.root.Tag
	}
	matched := make([]*Element, 0, 1)
	if rootOnly && parentTag == ed.root.Tag {
		if spec.matchParent(ed.root) {
			matched = append(matched, ed.root)
		}
		return matched
	}
	for parent := range ed.root.Iter(parentTag) {
		if spec.matchParent(parent) {
			matched = append(matched, parent)
		}
	}
	return matched
}

// Add appends a new element under every matching parent and returns how many were added.
func (ed *Editor) Add(parentTag, tag string, opts ...ElementOption) (int, error) {
	spec := newElementSpec(opts)
	parents := ed.parents(parentTag, spec, true)
	for _, parent := range parents {
		parent.Append(spec.newElement(tag))
	}
	ed.cfg.logger().Debug("element added",
		zap.String("parent", parentTag),
		zap.String("tag", tag),
		zap.Int("matches", len(parents)))
	return len(parents), ed.afterEdit()
}

// Remove detaches every direct child tagged tag from every matching parent.
func (ed *Editor) Remove(parentTag, tag string, opts ...ElementOption) (int, error) {
	spec := newElementSpec(opts)
	removed := 0
	for _, parent := range ed.parents(parentTag, spec, false) {
		removed += parent.RemoveChildren(tag)
	}
	ed.cfg.logger().Debug("elements removed",
		zap.String("parent", parentTag),
		zap.String("tag", tag),
		zap.Int("removed", removed))
	return removed, ed.afterEdit()
}

// Update sets the text (when given) and merges the attributes of every direct child
// tagged tag under every matching parent. Attributes not mentioned are left untouched.
func (ed *Editor) Update(parentTag, tag string, opts ...ElementOption) (int, error) {
	spec := newElementSpec(opts)
	updated := 0
	for _, parent := range ed.parents(parentTag, spec, false) {
		for _, child := range parent.Children {
			if child.Tag != tag {
				continue
			}
			if spec.hasText {
				child.SetText(spec.text)
			}
			if child.Attrs == nil {
				child.Attrs = make(Attrs, len(spec.attrs))
			}
			child.Attrs.Merge(spec.attrs)
			updated++
		}
	}
	ed.cfg.logger().Debug("elements updated",
		zap.String("parent", parentTag),
		zap.String("tag", tag),
		zap.Int("updated", updated))
	return updated, ed.afterEdit()
}

func (ed *Editor) afterEdit() error {
	if !ed.autoPersist {
		return nil
	}
	return ed.Persist(Truncate, !ed.cfg.Compact)
}

func (ed *Editor) Serialize(pretty bool) (string, error) {
	return RenderString(ed.root, pretty)
}

func (ed *Editor) Persist(mode WriteMode, pretty bool) error {
	data, err := RenderBytes(ed.root, pretty)
	if err != nil {
		return err
	}
	if err := WriteDocument(ed.path, data, mode, ed.cfg.perm()); err != nil {
		return err
	}
	ed.cfg.logger().Debug("document persisted",
		zap.String("path", ed.path),
		zap.Stringer("mode", mode),
		zap.Bool("pretty", pretty))
	return nil
}

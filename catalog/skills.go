package catalog

import (
	"aionxml"
	"github.com/pkg/errors"
)

// Skills lists the installed skills: the tags directly under the skill catalog root.
func Skills(cfg aionxml.Config, path string) ([]string, error) {
	return rootChildren(cfg, path)
}

// SkillInfo collects the fields of skill name. Each value is parsed with ParseValue, and
// "skill_name" is always present.
func SkillInfo(cfg aionxml.Config, path, name string) (map[string]any, error) {
	ix, err := aionxml.NewIndexer(cfg, path)
	if err != nil {
		return nil, err
	}
	if !ix.Exists(name) {
		return nil, errors.Wrapf(ErrNotFound, "skill %q", name)
	}
	info := map[string]any{"skill_name": name}
	for entry := range ix.Query(aionxml.All).Entries() {
		if entry.Parent.Tag != name {
			continue
		}
		info[entry.Tag] = ParseValue(entry.Text)
	}
	return info, nil
}

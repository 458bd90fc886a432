package catalog

import (
	"aionxml"
	"github.com/pkg/errors"
	"maps"
	"slices"
)

// Plugin is one run-before or run-after hook registered for a skill.
type Plugin struct {
	Skill      string            `json:"skill" yaml:"skill"`
	Name       string            `json:"name" yaml:"name"`
	Method     string            `json:"method" yaml:"method"`
	RootPlugin string            `json:"root_plugin" yaml:"root_plugin"`
	Fields     map[string]string `json:"fields" yaml:"fields"`
}

var skillMarker = aionxml.Attrs{"type": "skill"}

// Plugins reads a plugin catalog. Elements carrying type="skill" group plugins, their
// children are the plugins, and the children of a plugin are its text fields. The
// result is keyed by skill and then by plugin name.
func Plugins(_ aionxml.Config, path string) (map[string]map[string]*Plugin, error) {
	root, err := aionxml.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	skills := make(map[string]map[string]*Plugin)
	for elem := range root.Iter("") {
		if !elem.Attrs.Contains(skillMarker) {
			continue
		}
		if _, ok := skills[elem.Tag]; !ok {
			skills[elem.Tag] = make(map[string]*Plugin)
		}
		for _, child := range elem.Children {
			plugin := &Plugin{
				Skill:      elem.Tag,
				Name:       child.Tag,
				Method:     child.Attrs["method"],
				RootPlugin: child.Attrs["root_plugin"],
				Fields:     make(map[string]string, len(child.Children)),
			}
			for _, field := range child.Children {
				plugin.Fields[field.Tag] = field.Text
			}
			skills[elem.Tag][plugin.Name] = plugin
		}
	}
	return skills, nil
}

// PluginInfo looks a plugin up by name across all skills. When several skills register
// a plugin with the same name the first skill in sorted order wins.
func PluginInfo(cfg aionxml.Config, path, name string) (*Plugin, error) {
	skills, err := Plugins(cfg, path)
	if err != nil {
		return nil, err
	}
	for _, skill := range slices.Sorted(maps.Keys(skills)) {
		if plugin, ok := skills[skill][name]; ok {
			return plugin, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "plugin %q", name)
}

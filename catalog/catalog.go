// Package catalog implements the catalog documents used around the runtime: activation
// phrases, language entries, skills and plugins. A catalog is a document whose root's
// direct children are named entries; deeper children are fields of those entries.
package catalog

import (
	"aionxml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"path/filepath"
	"strings"
)

const (
	PhraseAlphabet = "abcdefghijklmnopqrstuvwxyz-_"
	EntryAlphabet  = "abcdefghijklmnopqrstuvwxyz_"
)

var (
	ErrEntryExists = errors.New("entry already exists")
	ErrFileExists  = errors.New("catalog file already exists")
	ErrInvalidName = errors.New("invalid entry name")
	ErrNotFound    = errors.New("entry not found")
)

// Paths derives catalog locations from the runtime's data directory.
type Paths struct {
	DataDir string
}

func (p Paths) SkillsFile() string {
	return filepath.Join(p.DataDir, "skills", "skills.xml")
}

func (p Paths) RunAfterFile() string {
	return filepath.Join(p.DataDir, "plugins", "run_after", "run_after.xml")
}

func (p Paths) RunBeforeFile() string {
	return filepath.Join(p.DataDir, "plugins", "run_before", "run_before.xml")
}

func PhraseFile(dir, locale string) string {
	return filepath.Join(dir, locale+".acph")
}

func LanguageFile(dir, locale string) string {
	return filepath.Join(dir, locale+".lng")
}

// NormalizeName replaces spaces with underscores and rejects any character whose lower
// case form is not in allowed.
func NormalizeName(name, allowed string) (string, error) {
	if name == "" {
		return "", errors.Wrap(ErrInvalidName, "empty name")
	}
	normalized := normalizeSpaces(name)
	for _, char := range normalized {
		if !strings.ContainsRune(allowed, toLower(char)) {
			return "", errors.Wrapf(ErrInvalidName, "letter %q in %q must be in %q", char, name, allowed)
		}
	}
	return normalized, nil
}

func normalizeSpaces(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

func toLower(char rune) rune {
	if char >= 'A' && char <= 'Z' {
		return char + ('a' - 'A')
	}
	return char
}

// ParseValue turns the stored string form of a field back into a native value: ints,
// floats, True/False, None, and flow lists or maps. Anything else stays a string.
func ParseValue(text string) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(trimmed), &doc); err != nil || len(doc.Content) != 1 {
		return text
	}
	root := doc.Content[0]
	if root.Kind != yaml.ScalarNode && trimmed[0] != '[' && trimmed[0] != '{' {
		return text
	}
	if !literalScalars(root) {
		return text
	}
	var value any
	if err := root.Decode(&value); err != nil {
		return text
	}
	switch value.(type) {
	case nil, int, float64, bool, []any, map[string]any:
		return value
	}
	return text
}

// literalScalars restricts plain scalars to the literal spellings catalogs store:
// booleans are True or False and null is None. None is rewritten to a plain YAML null.
func literalScalars(node *yaml.Node) bool {
	switch node.Kind {
	case yaml.AliasNode, yaml.DocumentNode:
		return false
	case yaml.ScalarNode:
		if node.Style != 0 {
			return true
		}
		switch node.Tag {
		case "!!bool":
			return node.Value == "True" || node.Value == "False"
		case "!!null":
			return false
		case "!!str":
			if node.Value == "None" {
				node.Tag, node.Value = "", "null"
			}
		}
		return true
	}
	for _, child := range node.Content {
		if !literalScalars(child) {
			return false
		}
	}
	return true
}

func rootChildren(cfg aionxml.Config, path string) ([]string, error) {
	ix, err := aionxml.NewIndexer(cfg, path)
	if err != nil {
		return nil, err
	}
	_, entries, err := ix.Query(aionxml.Root).At(0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []string{}, nil
	}
	return entries[0].ChildrenTags, nil
}

func persistPretty(cfg aionxml.Config) bool {
	return !cfg.Compact
}

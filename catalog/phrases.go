package catalog

import (
	"aionxml"
	"github.com/pkg/errors"
	"maps"
	"slices"
)

// CreatePhraseFile writes a new activation phrase catalog for locale. phrases maps a skill
// to its phrase → method table.
func CreatePhraseFile(cfg aionxml.Config, path, locale string, phrases map[string]map[string]string) error {
	b := aionxml.NewBuilder(cfg, locale, nil)
	for _, skill := range slices.Sorted(maps.Keys(phrases)) {
		table := phrases[skill]
		for _, phrase := range slices.Sorted(maps.Keys(table)) {
			name, err := NormalizeName(phrase, PhraseAlphabet)
			if err != nil {
				return err
			}
			b.AddRootChild(name, aionxml.Attr("skill", skill), aionxml.Attr("method", table[phrase]))
		}
	}
	return b.Persist(path, aionxml.Truncate, persistPretty(cfg))
}

// AddPhrases registers phrases for skill. Nothing is written when one of them already exists.
func AddPhrases(cfg aionxml.Config, path, skill string, phrases map[string]string) error {
	existing, err := rootChildren(cfg, path)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(phrases))
	for _, phrase := range slices.Sorted(maps.Keys(phrases)) {
		name, err := NormalizeName(phrase, PhraseAlphabet)
		if err != nil {
			return err
		}
		if slices.Contains(existing, name) {
			return errors.Wrapf(ErrEntryExists, "activation phrase %q", phrase)
		}
		names[name] = phrases[phrase]
	}
	ed, err := aionxml.NewEditor(cfg, path, false)
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(names)) {
		if _, err := ed.Add(aionxml.Root, name, aionxml.Attr("skill", skill), aionxml.Attr("method", names[name])); err != nil {
			return err
		}
	}
	return ed.Persist(aionxml.Truncate, persistPretty(cfg))
}

func DeletePhrases(cfg aionxml.Config, path string, phrases []string) error {
	ed, err := aionxml.NewEditor(cfg, path, false)
	if err != nil {
		return err
	}
	for _, phrase := range phrases {
		if _, err := ed.Remove(aionxml.Root, normalizeSpaces(phrase)); err != nil {
			return err
		}
	}
	return ed.Persist(aionxml.Truncate, persistPretty(cfg))
}

// PhraseExists reports whether phrase is registered directly under the catalog root.
func PhraseExists(cfg aionxml.Config, path, phrase string) (bool, error) {
	ix, err := aionxml.NewIndexer(cfg, path)
	if err != nil {
		return false, err
	}
	return ix.Exists(normalizeSpaces(phrase)), nil
}

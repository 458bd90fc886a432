package catalog

import (
	"aionxml"
	"github.com/pkg/errors"
	"maps"
	"os"
	"slices"
	"strings"
)

func entryTag(pkg, entry string) (string, error) {
	name, err := NormalizeName(entry, EntryAlphabet)
	if err != nil {
		return "", err
	}
	return pkg + "." + name, nil
}

// CreateLanguageFile writes a language catalog for locale with one root child per
// package entry. It refuses to overwrite an existing file.
func CreateLanguageFile(cfg aionxml.Config, path, locale string, entries map[string]map[string]string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(ErrFileExists, "language file %s", path)
	}
	b := aionxml.NewBuilder(cfg, locale, nil)
	for _, pkg := range slices.Sorted(maps.Keys(entries)) {
		table := entries[pkg]
		for _, entry := range slices.Sorted(maps.Keys(table)) {
			tag, err := entryTag(pkg, entry)
			if err != nil {
				return err
			}
			b.AddRootChild(tag, aionxml.Text(table[entry]))
		}
	}
	return b.Persist(path, aionxml.Truncate, persistPretty(cfg))
}

func AddLanguageEntries(cfg aionxml.Config, path, pkg string, entries map[string]string) error {
	existing, err := rootChildren(cfg, path)
	if err != nil {
		return err
	}
	tags := make(map[string]string, len(entries))
	for _, entry := range slices.Sorted(maps.Keys(entries)) {
		tag, err := entryTag(pkg, entry)
		if err != nil {
			return err
		}
		if slices.Contains(existing, tag) {
			return errors.Wrapf(ErrEntryExists, "language entry %q", tag)
		}
		tags[tag] = entries[entry]
	}
	ed, err := aionxml.NewEditor(cfg, path, false)
	if err != nil {
		return err
	}
	for _, tag := range slices.Sorted(maps.Keys(tags)) {
		if _, err := ed.Add(aionxml.Root, tag, aionxml.Text(tags[tag])); err != nil {
			return err
		}
	}
	return ed.Persist(aionxml.Truncate, persistPretty(cfg))
}

func DeleteLanguageEntries(cfg aionxml.Config, path, pkg string, entries []string) error {
	ed, err := aionxml.NewEditor(cfg, path, false)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := ed.Remove(aionxml.Root, pkg+"."+normalizeSpaces(entry)); err != nil {
			return err
		}
	}
	return ed.Persist(aionxml.Truncate, persistPretty(cfg))
}

func LanguageEntryExists(cfg aionxml.Config, path, pkg, entry string) (bool, error) {
	ix, err := aionxml.NewIndexer(cfg, path)
	if err != nil {
		return false, err
	}
	return ix.Exists(pkg + "." + normalizeSpaces(entry)), nil
}

// LanguageEntries returns the text of every entry of pkg keyed by entry name.
func LanguageEntries(cfg aionxml.Config, path, pkg string) (map[string]string, error) {
	ix, err := aionxml.NewIndexer(cfg, path)
	if err != nil {
		return nil, err
	}
	prefix := pkg + "."
	result := make(map[string]string)
	for entry := range ix.Query(aionxml.All).Entries() {
		name, ok := strings.CutPrefix(entry.Tag, prefix)
		if !ok || name == "" || entry.Parent.Tag != ix.RootTag() {
			continue
		}
		result[name] = entry.Text
	}
	return result, nil
}

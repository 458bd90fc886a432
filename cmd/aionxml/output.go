package main

import (
	"aionxml"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"maps"
	"slices"
	"strings"
)

func parseAttrs(values []string) (aionxml.Attrs, error) {
	attrs := make(aionxml.Attrs, len(values))
	for _, value := range values {
		key, val, ok := strings.Cut(value, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid attribute %q, expected key=value", value)
		}
		attrs[key] = val
	}
	return attrs, nil
}

func checkFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	}
	return errors.Errorf("invalid output format: %s (valid: text, json, yaml)", format)
}

func writeIndex(w io.Writer, ix *aionxml.Index, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(ix, "", "  ")
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		node, err := indexNode(ix)
		if err != nil {
			return err
		}
		return writeYAML(w, node)
	}
	for key, entries := range ix.All() {
		if _, err := fmt.Fprintf(w, "%s (%d)\n", key, len(entries)); err != nil {
			return err
		}
		for _, entry := range entries {
			line := fmt.Sprintf("  parent=%s attrs=%s children=%s", orDash(entry.Parent.Tag), formatAttrs(entry.Attrs), strings.Join(entry.ChildrenTags, ","))
			if entry.HasText {
				line += fmt.Sprintf(" text=%q", entry.Text)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// indexNode keeps the key order of ix, which a plain map would lose.
func indexNode(ix *aionxml.Index) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for key, entries := range ix.All() {
		value := &yaml.Node{}
		if err := value.Encode(entries); err != nil {
			return nil, errors.Wrapf(err, "failed to encode %q", key)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
	}
	return node, nil
}

func writeYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(enc.Close())
}

func writeValue(w io.Writer, value map[string]any, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		return writeYAML(w, value)
	}
	for _, key := range slices.Sorted(maps.Keys(value)) {
		if _, err := fmt.Fprintf(w, "%s: %v\n", key, value[key]); err != nil {
			return err
		}
	}
	return nil
}

func formatAttrs(attrs aionxml.Attrs) string {
	parts := make([]string, 0, len(attrs))
	for _, key := range attrs.Keys() {
		parts = append(parts, key+"="+attrs[key])
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

package main

import (
	"aionxml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"strings"
)

// childSpec is the --child syntax: [PARENT/]TAG[=TEXT]. Without a parent the child is
// added under the root.
type childSpec struct {
	parent  string
	tag     string
	text    string
	hasText bool
}

func parseChild(value string) (childSpec, error) {
	var spec childSpec
	name, text, hasText := strings.Cut(value, "=")
	spec.text, spec.hasText = text, hasText
	spec.tag = name
	if parent, tag, ok := strings.Cut(name, "/"); ok {
		spec.parent, spec.tag = parent, tag
		if parent == "" {
			return spec, errors.Errorf("invalid child %q, empty parent", value)
		}
	}
	if spec.tag == "" || strings.Contains(spec.tag, "/") {
		return spec, errors.Errorf("invalid child %q, expected [PARENT/]TAG[=TEXT]", value)
	}
	return spec, nil
}

func newBuildCmd(c *cli) *cobra.Command {
	var (
		rootTag   string
		rootAttrs []string
		children  []string
		appendTo  bool
	)
	cmd := &cobra.Command{
		Use:   "build FILE",
		Short: "Create a document from a root tag and a list of children",
		Long: `Builds a new document and writes it to FILE. Children are created in the
order given; a child naming a PARENT is added under every element with that tag.

Example:
  aionxml build skills.xml --root skills --child 'weather' --child 'weather/version=1.0'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := parseAttrs(rootAttrs)
			if err != nil {
				return err
			}
			b := aionxml.NewBuilder(c.docConfig(), rootTag, attrs)
			for _, value := range children {
				spec, err := parseChild(value)
				if err != nil {
					return err
				}
				var opts []aionxml.ElementOption
				if spec.hasText {
					opts = append(opts, aionxml.Text(spec.text))
				}
				if spec.parent == "" {
					b.AddRootChild(spec.tag, opts...)
					continue
				}
				if err := b.AddChild(spec.parent, spec.tag, opts...); err != nil {
					return err
				}
			}
			mode := aionxml.Truncate
			if appendTo {
				mode = aionxml.Append
			}
			if err := b.Persist(args[0], mode, c.pretty()); err != nil {
				return err
			}
			c.logger.Info("document built",
				zap.String("path", args[0]),
				zap.Stringer("mode", mode),
				zap.Strings("tags", b.KnownTags()))
			return nil
		},
	}
	cmd.Flags().StringVar(&rootTag, "root", "", "tag of the root element")
	cmd.Flags().StringArrayVar(&rootAttrs, "root-attr", nil, "attribute of the root as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&children, "child", nil, "child to create as [PARENT/]TAG[=TEXT] (repeatable)")
	cmd.Flags().BoolVar(&appendTo, "append", false, "append to FILE instead of replacing it")
	_ = cmd.MarkFlagRequired("root")
	return cmd
}

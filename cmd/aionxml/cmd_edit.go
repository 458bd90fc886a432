package main

import (
	"aionxml"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type editOp struct {
	name  string
	short string
	apply func(ed *aionxml.Editor, parent, tag string, opts ...aionxml.ElementOption) (int, error)
}

var (
	addOp = editOp{
		name:  "add",
		short: "Append a new TAG element under every matching PARENT",
		apply: (*aionxml.Editor).Add,
	}
	removeOp = editOp{
		name:  "remove",
		short: "Remove every TAG child of every matching PARENT",
		apply: (*aionxml.Editor).Remove,
	}
	updateOp = editOp{
		name:  "update",
		short: "Set the text and merge the attributes of every TAG child of every matching PARENT",
		apply: (*aionxml.Editor).Update,
	}
)

func newEditCmd(c *cli, op editOp) *cobra.Command {
	var (
		text        string
		attrs       []string
		parentAttrs []string
		dryRun      bool
	)
	cmd := &cobra.Command{
		Use:   op.name + " FILE PARENT TAG",
		Short: op.short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, parent, tag := args[0], args[1], args[2]
			var opts []aionxml.ElementOption
			if cmd.Flags().Changed("text") {
				opts = append(opts, aionxml.Text(text))
			}
			parsed, err := parseAttrs(attrs)
			if err != nil {
				return err
			}
			opts = append(opts, aionxml.Attributes(parsed))
			if cmd.Flags().Changed("parent-attr") {
				filter, err := parseAttrs(parentAttrs)
				if err != nil {
					return err
				}
				opts = append(opts, aionxml.ParentAttrs(filter))
			}

			ed, err := aionxml.NewEditor(c.docConfig(), path, false)
			if err != nil {
				return err
			}
			if dryRun {
				return previewEdit(cmd, c, ed, func(shadow *aionxml.Editor) error {
					_, err := op.apply(shadow, parent, tag, opts...)
					return err
				})
			}
			count, err := op.apply(ed, parent, tag, opts...)
			if err != nil {
				return err
			}
			if err := ed.Persist(aionxml.Truncate, c.pretty()); err != nil {
				return err
			}
			c.logger.Info("document edited",
				zap.String("op", op.name),
				zap.String("path", path),
				zap.Int("count", count))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d element(s)\n", op.name, count)
			return err
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text of the element")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "attribute of the element as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&parentAttrs, "parent-attr", nil, "only touch parents carrying exactly these attributes (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a diff instead of writing the file")
	return cmd
}

func previewEdit(cmd *cobra.Command, c *cli, ed *aionxml.Editor, fn func(*aionxml.Editor) error) error {
	before, err := ed.Serialize(true)
	if err != nil {
		return err
	}
	preview, err := ed.Preview(fn)
	if err != nil {
		return err
	}
	after, err := aionxml.RenderString(preview, true)
	if err != nil {
		return err
	}
	return writeDiff(cmd.OutOrStdout(), before, after)
}

package main

import (
	"aionxml"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newQueryCmd(c *cli) *cobra.Command {
	var (
		where  string
		output string
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "query FILE [TAG...]",
		Short: "Index a document by tag",
		Long: `Prints every occurrence of the requested tags together with its text,
attributes, parent and child tags. Without tags the whole document is indexed.

Example:
  aionxml query skills.xml version author
  aionxml query skills.xml '<all>' --where 'parent == "weather"' --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = c.cfg.Output.Format
			}
			if err := checkFormat(output); err != nil {
				return err
			}
			path, tags := args[0], args[1:]
			if len(tags) == 0 {
				tags = []string{aionxml.All}
			}
			run := func() error {
				ix, err := aionxml.NewIndexer(c.docConfig(), path)
				if err != nil {
					return err
				}
				result := ix.Query(tags...)
				if where != "" {
					if result, err = result.Where(where); err != nil {
						return err
					}
				}
				return writeIndex(cmd.OutOrStdout(), result, output)
			}
			if err := run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchFile(cmd.Context(), c.logger, path, func() error {
				if err := run(); err != nil {
					c.logger.Warn("query failed", zap.String("path", path), zap.Error(err))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&where, "where", "", "keep only entries matching this expression")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: text, json or yaml")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the query whenever the file changes")
	return cmd
}

func newExistsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "exists FILE TAG",
		Short: "Report whether TAG is a direct child of the root",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := aionxml.NewIndexer(c.docConfig(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ix.Exists(args[1]))
			return err
		},
	}
}

func newFmtCmd(c *cli) *cobra.Command {
	var compact, write bool
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Re-render a document in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := aionxml.ReadDocument(args[0])
			if err != nil {
				return err
			}
			pretty := c.pretty()
			if cmd.Flags().Changed("compact") {
				pretty = !compact
			}
			data, err := aionxml.RenderBytes(root, pretty)
			if err != nil {
				return err
			}
			if !write {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := aionxml.WriteDocument(args[0], data, aionxml.Truncate, aionxml.DefaultPerm); err != nil {
				return err
			}
			c.logger.Info("document formatted", zap.String("path", args[0]), zap.Bool("pretty", pretty))
			return nil
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "render without indentation")
	cmd.Flags().BoolVar(&write, "write", false, "rewrite the file instead of printing")
	return cmd
}

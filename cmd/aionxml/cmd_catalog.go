package main

import (
	"aionxml/aion"
	"aionxml/catalog"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSkillsCmd(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "skills [NAME]",
		Short: "List installed skills or show the fields of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = c.cfg.Output.Format
			}
			if err := checkFormat(output); err != nil {
				return err
			}
			path := catalog.Paths{DataDir: c.cfg.DataPath}.SkillsFile()
			if len(args) == 0 {
				skills, err := catalog.Skills(c.docConfig(), path)
				if err != nil {
					return err
				}
				for _, skill := range skills {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), skill); err != nil {
						return err
					}
				}
				return nil
			}
			info, err := catalog.SkillInfo(c.docConfig(), path, args[0])
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), info, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: text, json or yaml")
	return cmd
}

func newRuntimeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "runtime",
		Short: "Report whether an aion runtime is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := aion.Detect(c.cfg.RuntimeGlob)
			logger := aion.NewLogger(rt, c.logger)
			inst, ok := rt.(*aion.Installation)
			if !ok {
				logger.Info(cmd.Context(), "no runtime installed")
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "unavailable")
				return err
			}
			logger.Info(cmd.Context(), "runtime detected at "+inst.Dir)
			c.logger.Debug("runtime", zap.String("glob", c.cfg.RuntimeGlob), zap.String("dir", inst.Dir))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "available", inst.Dir)
			return err
		},
	}
}

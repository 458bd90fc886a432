package main

import (
	"aionxml"
	"aionxml/internal/config"
	"aionxml/internal/logging"
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"syscall"
)

type cli struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func (c *cli) docConfig() aionxml.Config {
	return aionxml.Config{Logger: c.logger, Compact: c.cfg.Output.Compact}
}

func (c *cli) pretty() bool {
	return !c.cfg.Output.Compact
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "aionxml",
		Short: "Build, query and edit small XML documents",
		Long: `aionxml reads, indexes and rewrites the XML documents used as catalogs
by the aion runtime: skills, plugins, activation phrases and language files.

Tags are addressed by name. "<root>" names the root element of a document and
"<all>" indexes every tag.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging, c.verbose)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newQueryCmd(c),
		newExistsCmd(c),
		newFmtCmd(c),
		newBuildCmd(c),
		newSkillsCmd(c),
		newRuntimeCmd(c),
	)
	for _, op := range []editOp{addOp, removeOp, updateOp} {
		rootCmd.AddCommand(newEditCmd(c, op))
	}
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

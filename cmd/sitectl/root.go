package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootConfig struct {
	debug bool
}

// NewRootCmd assembles the sitectl command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sitectl",
		Short:         "Operate the blog site: domain helpers, edge rule evaluation and content publishing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !rootConfig.debug {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVar(&rootConfig.debug, "debug", false, "Verbose development logging")

	rootCmd.AddCommand(newZoneCmd())
	rootCmd.AddCommand(newEdgeCmd())
	rootCmd.AddCommand(newPublishCmd())
	return rootCmd
}

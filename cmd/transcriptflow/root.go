package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "transcriptflow",
		Short:         "Transcript preprocessing and LLM streaming pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newProcessCommand(&configFlag))
	rootCmd.AddCommand(newSummarizeCommand(&configFlag))
	rootCmd.AddCommand(newPreprocessCommand(&configFlag))
	rootCmd.AddCommand(newWatchCommand(&configFlag))

	return rootCmd
}

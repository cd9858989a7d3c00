package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
)

func newSummarizeCommand(configFlag *string) *cobra.Command {
	var exportDocx bool

	cmd := &cobra.Command{
		Use:   "summarize <file>",
		Short: "Summarize a transcript in two stages: per segment, then merged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("docx") {
				cfg.Summary.ExportDocx = exportDocx
			}
			log := logger.New(cfg.Logging.Level)

			transformer, err := newTransformer(cfg, log, true)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			proc := processor.New(cfg, transformer, log)
			finalPath, err := proc.Summarize(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Final summary written to %s\n", finalPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&exportDocx, "docx", false, "Also export the final summary as a docx document")
	return cmd
}

package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
)

func newProcessCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "process <file>",
		Short: "Refine a transcript through the LLM, segment by segment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Logging.Level)

			transformer, err := newTransformer(cfg, log, true)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			proc := processor.New(cfg, transformer, log)
			outputPath, err := proc.Refine(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Processed transcript written to %s\n", outputPath)
			return nil
		},
	}
}

package main

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
	"github.com/nguyentantai21042004/transcript-flow/internal/watcher"
)

func newWatchCommand(configFlag *string) *cobra.Command {
	var inputDir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and process new transcript files as they appear",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			if inputDir != "" {
				cfg.Watch.Input = inputDir
			}
			log := logger.New(cfg.Logging.Level)

			transformer, err := newTransformer(cfg, log, true)
			if err != nil {
				return err
			}
			proc := processor.New(cfg, transformer, log)

			handler := func(ctx context.Context, filePath string) error {
				// Outputs land in the watched tree when output points there;
				// never feed them back through the pipeline.
				if strings.Contains(filePath, "_processed") || strings.Contains(filePath, "_summar") {
					return nil
				}
				_, err := proc.Refine(ctx, filePath)
				return err
			}

			w, err := watcher.New(cfg.Watch.Input, handler, log, cfg.Watch.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "Directory to watch (overrides config)")
	return cmd
}

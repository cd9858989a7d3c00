package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/preprocess"
)

func newPreprocessCommand(configFlag *string) *cobra.Command {
	var (
		modeFlag  string
		minSpaces int
		maxSpaces int
		startTime string
		endTime   string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "preprocess <file>",
		Short: "Clean, segment, or slice a transcript without calling the LLM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			mode, err := preprocess.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			opts := preprocess.Options{
				Mode:      mode,
				MinSpaces: cfg.Segmenting.MinSpaces,
				MaxSpaces: cfg.Segmenting.MaxSpaces,
				StartTime: startTime,
				EndTime:   endTime,
				OutputDir: cfg.Paths.Output,
			}
			if cmd.Flags().Changed("min") {
				opts.MinSpaces = minSpaces
			}
			if cmd.Flags().Changed("max") {
				opts.MaxSpaces = maxSpaces
			}
			if outputDir != "" {
				opts.OutputDir = outputDir
			}

			outputPath, err := preprocess.Run(args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Output written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "with-time", "Preprocess mode: plain, with-time, or slice")
	cmd.Flags().IntVar(&minSpaces, "min", 0, "Minimum spaces per segment")
	cmd.Flags().IntVar(&maxSpaces, "max", 0, "Maximum spaces per segment")
	cmd.Flags().StringVar(&startTime, "start", "", "Slice start time (e.g. 01:30, 90s, 00:01:30,000)")
	cmd.Flags().StringVar(&endTime, "end", "", "Slice end time")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (overrides config)")

	return cmd
}

package summary

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/llm"
	"github.com/nguyentantai21042004/transcript-flow/internal/preprocess"
	"github.com/nguyentantai21042004/transcript-flow/internal/progress"
)

// Merge combines per-segment summaries into a single final summary.
// It reads the streamed summaries file, drops progress markers, and
// sends the numbered parts through the transformer with mergePrompt.
func Merge(ctx context.Context, transformer llm.Transformer, mergePrompt, segmentsPath, outputPath string, format preprocess.FormatType) error {
	data, err := os.ReadFile(segmentsPath)
	if err != nil {
		return fmt.Errorf("read segment summaries: %w", err)
	}

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if progress.IsMarkerLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	var summaries []string
	for _, block := range strings.Split(strings.Join(kept, "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		summaries = append(summaries, block)
	}
	if len(summaries) == 0 {
		return fmt.Errorf("no segment summaries found in %s", segmentsPath)
	}

	content := BuildMergeContent(summaries, format != preprocess.FormatPlain)
	merged, err := transformer.Transform(ctx, mergePrompt, content)
	if err != nil {
		return fmt.Errorf("merge summaries: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(strings.TrimSpace(merged)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write final summary: %w", err)
	}
	return nil
}

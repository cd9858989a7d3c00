package processor

import "context"

// Processor drives the full transcript pipeline: segment an input file,
// stream each segment through the configured LLM, and write the results.
type Processor interface {
	// Refine rewrites a raw transcript into polished text and returns the
	// output file path.
	Refine(ctx context.Context, inputPath string) (string, error)
	// Summarize produces per-segment summaries plus a merged final
	// summary and returns the final summary path.
	Summarize(ctx context.Context, inputPath string) (string, error)
}

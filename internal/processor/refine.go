package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/preprocess"
	"github.com/nguyentantai21042004/transcript-flow/internal/progress"
	"github.com/nguyentantai21042004/transcript-flow/internal/summary"
)

func (p *implProcessor) Refine(ctx context.Context, inputPath string) (string, error) {
	format, segments, err := p.segmentInput(inputPath)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("no content to process in %s", inputPath)
	}
	p.logger.Info(ctx, "Detected format %s, %d segments", format, len(segments))

	outputPath, err := p.outputPath(inputPath, "_processed.md")
	if err != nil {
		return "", err
	}

	prompt, err := config.LoadPrompt(p.cfg.Prompts.Refine)
	if err != nil {
		return "", err
	}

	startIndex, status, err := progress.Load(outputPath, len(segments))
	if err != nil {
		return "", err
	}
	if status == progress.StatusComplete {
		p.logger.Info(ctx, "Output %s already complete, nothing to do", outputPath)
		return outputPath, nil
	}
	if startIndex > 0 {
		p.logger.Info(ctx, "Resuming from segment %d/%d (status %s)", startIndex+1, len(segments), status)
	}

	err = p.writer.Run(ctx, segments, outputPath, startIndex, status, summary.ContentHook(format),
		func(ctx context.Context, content string) (string, error) {
			return p.transformer.Transform(ctx, prompt, content)
		})
	if err != nil {
		return "", fmt.Errorf("process %s: %w", inputPath, err)
	}
	return outputPath, nil
}

// segmentInput detects the input format and splits the file into the
// segments the streaming stage will feed to the LLM.
func (p *implProcessor) segmentInput(inputPath string) (preprocess.FormatType, []string, error) {
	format, err := preprocess.DetectFile(inputPath)
	if err != nil {
		return format, nil, err
	}

	min, max := p.cfg.Segmenting.MinSpaces, p.cfg.Segmenting.MaxSpaces

	switch format {
	case preprocess.FormatSRT:
		cues, err := preprocess.LoadSRTFile(inputPath)
		if err != nil {
			return format, nil, err
		}
		return format, preprocess.SegmentCuesWithTime(cues, min, max), nil
	case preprocess.FormatSRTTimestamp:
		content, err := preprocess.ReadFileContent(inputPath)
		if err != nil {
			return format, nil, err
		}
		return format, preprocess.SegmentWithSRTTimestamps(content, min, max), nil
	case preprocess.FormatTimestamp:
		content, err := preprocess.ReadFileContent(inputPath)
		if err != nil {
			return format, nil, err
		}
		return format, preprocess.SegmentWithTimeRanges(content, min, max), nil
	default:
		content, err := preprocess.ReadFileContent(inputPath)
		if err != nil {
			return format, nil, err
		}
		clean := preprocess.NormalizeWhitespace(content)
		return format, preprocess.SegmentBySpaces(clean, min, max), nil
	}
}

// outputPath derives the output file name from the input stem and makes
// sure the output directory exists.
func (p *implProcessor) outputPath(inputPath, suffix string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(p.cfg.Paths.Output, stem+suffix), nil
}

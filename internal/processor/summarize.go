package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/progress"
	"github.com/nguyentantai21042004/transcript-flow/internal/summary"
)

func (p *implProcessor) Summarize(ctx context.Context, inputPath string) (string, error) {
	format, segments, err := p.segmentInput(inputPath)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("no content to summarize in %s", inputPath)
	}
	p.logger.Info(ctx, "Detected format %s, %d segments", format, len(segments))

	segmentsPath, err := p.outputPath(inputPath, "_segment_summaries.md")
	if err != nil {
		return "", err
	}
	finalPath, err := p.outputPath(inputPath, "_final_summary.md")
	if err != nil {
		return "", err
	}

	summaryPrompt, err := config.LoadPrompt(p.cfg.Prompts.Summary)
	if err != nil {
		return "", err
	}
	mergePrompt, err := config.LoadPrompt(p.cfg.Prompts.Merge)
	if err != nil {
		return "", err
	}

	startIndex, status, err := progress.Load(segmentsPath, len(segments))
	if err != nil {
		return "", err
	}
	if status == progress.StatusComplete {
		p.logger.Info(ctx, "Segment summaries %s already complete, merging only", segmentsPath)
	} else {
		if startIndex > 0 {
			p.logger.Info(ctx, "Resuming from segment %d/%d (status %s)", startIndex+1, len(segments), status)
		}
		err = p.writer.Run(ctx, segments, segmentsPath, startIndex, status, summary.ContentHook(format),
			func(ctx context.Context, content string) (string, error) {
				return p.transformer.Transform(ctx, summaryPrompt, content)
			})
		if err != nil {
			return "", fmt.Errorf("summarize %s: %w", inputPath, err)
		}
	}

	p.logger.Info(ctx, "Merging %d segment summaries", len(segments))
	if err := summary.Merge(ctx, p.transformer, mergePrompt, segmentsPath, finalPath, format); err != nil {
		return "", err
	}

	if p.cfg.Summary.ExportDocx {
		base := filepath.Base(inputPath)
		title := strings.TrimSuffix(base, filepath.Ext(base))
		docxPath := strings.TrimSuffix(finalPath, ".md") + ".docx"
		if err := summary.ExportDocx(title, finalPath, docxPath); err != nil {
			return "", err
		}
		p.logger.Info(ctx, "Exported %s", docxPath)
	}

	return finalPath, nil
}

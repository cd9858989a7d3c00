// Package stream writes per-segment transform results to a single output
// file as they arrive, keeping a resume marker at the tail so an interrupted
// run can pick up where it left off.
package stream

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/progress"
)

// Transform hands one segment's content to the external transform service
// and blocks until it returns. An error means the service gave up after its
// own bounded retries.
type Transform func(ctx context.Context, content string) (string, error)

// ContentHook optionally rewrites a segment before it is sent. The stored
// output always uses the original segment text.
type ContentHook func(segment string, index int) string

const failedFallbackHeader = "[transform failed, original text retained]"

// Writer owns the output file for the duration of a run.
type Writer struct {
	logger logger.Logger
}

// New creates a Writer.
func New(log logger.Logger) *Writer {
	return &Writer{logger: log}
}

// Run processes segments[startIndex:] sequentially. Before each external
// call a processing marker is flushed to disk, so a crash mid-call leaves
// the file identifying that segment as the one to retry. A failed segment is
// recorded with a failed marker plus a fallback block and the run continues;
// after every segment has been attempted the trailing marker is replaced
// with a complete marker.
func (w *Writer) Run(ctx context.Context, segments []string, outputPath string, startIndex int, startStatus progress.Status, hook ContentHook, transform Transform) error {
	total := len(segments)

	flags := os.O_RDWR
	if startStatus == progress.StatusNew {
		flags |= os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(outputPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	// A resumed run carries a stale marker from the interrupted one; drop it
	// together with anything written after it (the failure fallback for the
	// segment being retried).
	if startStatus == progress.StatusProcessing || startStatus == progress.StatusFailed {
		content, err := readAll(f)
		if err != nil {
			return err
		}
		lines := trimTrailingEmpty(progress.StripLastMarkerAndAfter(splitLines(content)))
		if err := writeLines(f, lines); err != nil {
			return err
		}
	}

	for i := startIndex; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.logger.Info(ctx, "Processing segment %d/%d...", i+1, total)

		marker := progress.Marker{Index: i, Total: total, Status: progress.StatusProcessing}
		if err := appendRaw(f, "\n"+marker.Encode()); err != nil {
			return err
		}

		content := segments[i]
		if hook != nil {
			content = hook(content, i)
		}

		result, terr := transform(ctx, content)
		if terr != nil {
			if ctx.Err() != nil {
				return terr
			}
			w.logger.Warn(ctx, "Segment %d/%d failed: %v", i+1, total, terr)
			if err := w.recordFailure(f, i, total, segments[i]); err != nil {
				return err
			}
			continue
		}

		if err := w.appendResult(f, result); err != nil {
			return err
		}
		w.logger.Info(ctx, "Segment %d/%d done", i+1, total)
	}

	return w.finalize(f, total)
}

// appendResult replaces the trailing processing marker with the segment's
// result, blank-line separated from prior content.
func (w *Writer) appendResult(f *os.File, result string) error {
	content, err := readAll(f)
	if err != nil {
		return err
	}
	lines := trimTrailingEmpty(progress.StripTrailingMarkers(splitLines(content)))
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, result)
	return writeLines(f, lines)
}

// recordFailure replaces the trailing processing marker with a failed marker
// followed by a fallback block holding the original segment text.
func (w *Writer) recordFailure(f *os.File, index, total int, segment string) error {
	content, err := readAll(f)
	if err != nil {
		return err
	}
	lines := trimTrailingEmpty(progress.StripTrailingMarkers(splitLines(content)))
	lines = append(lines, progress.Marker{Index: index, Total: total, Status: progress.StatusFailed}.Encode())
	if err := writeLines(f, lines); err != nil {
		return err
	}
	return appendRaw(f, "\n\n"+failedFallbackHeader+"\n\n"+segment)
}

// finalize strips any trailing marker and appends the complete marker.
// Complete means every segment was attempted once, not that all succeeded.
func (w *Writer) finalize(f *os.File, total int) error {
	content, err := readAll(f)
	if err != nil {
		return err
	}
	lines := trimTrailingEmpty(progress.StripTrailingMarkers(splitLines(content)))
	if err := writeLines(f, lines); err != nil {
		return err
	}
	marker := progress.Marker{Index: total, Total: total, Status: progress.StatusComplete}
	return appendRaw(f, "\n"+marker.Encode())
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// trimTrailingEmpty drops blank lines from the end of a line list so the
// blank-line separator between segments stays single.
func trimTrailingEmpty(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func readAll(f *os.File) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek output: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read output: %w", err)
	}
	return string(data), nil
}

// writeLines rewrites the whole file in place and forces it to disk.
func writeLines(f *os.File, lines []string) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate output: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek output: %w", err)
	}
	if _, err := f.WriteString(strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	return nil
}

// appendRaw writes to the end of the file and forces it to disk.
func appendRaw(f *os.File, s string) error {
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek output: %w", err)
	}
	if _, err := f.WriteString(s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	return nil
}

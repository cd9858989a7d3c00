package summary

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/preprocess"
	"github.com/nguyentantai21042004/transcript-flow/internal/stream"
)

// ExtractSegmentContent splits a time-annotated segment into its
// time-range header and body. Segments produced from plain text carry
// no header and pass through unchanged.
func ExtractSegmentContent(segment string) string {
	first, rest, found := strings.Cut(segment, "\n")
	first = strings.TrimSpace(first)
	if !found || !strings.HasPrefix(first, "【") {
		return segment
	}
	return fmt.Sprintf("Time range: %s\n\nContent:\n%s", first, strings.TrimSpace(rest))
}

// ContentHook returns the per-segment content shaper for the given
// source format.
func ContentHook(format preprocess.FormatType) stream.ContentHook {
	if format == preprocess.FormatPlain {
		return nil
	}
	return func(segment string, index int) string {
		return ExtractSegmentContent(segment)
	}
}

// BuildMergeContent assembles the intermediate summaries into one
// document for the merge pass, numbering each part.
func BuildMergeContent(summaries []string, withTime bool) string {
	var b strings.Builder
	for i, s := range summaries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if withTime {
			fmt.Fprintf(&b, "## Part %d\n\n%s", i+1, strings.TrimSpace(s))
		} else {
			fmt.Fprintf(&b, "Part %d:\n%s", i+1, strings.TrimSpace(s))
		}
	}
	return b.String()
}

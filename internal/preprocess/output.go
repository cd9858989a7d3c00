package preprocess

import (
	"fmt"
	"os"
	"strings"
)

var divider = strings.Repeat("=", 60)

// SavePlainText writes the plain-extraction output layout.
func SavePlainText(text, outputPath, inputName string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nPlain text extraction\n%s\n\n", divider, divider)
	b.WriteString(text)
	fmt.Fprintf(&b, "\n\n%s\nDone\n%s\n", divider, divider)
	fmt.Fprintf(&b, "Total characters: %d\n", len([]rune(text)))
	fmt.Fprintf(&b, "Source file: %s\n", inputName)

	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// SaveTimeSegments writes numbered segment blocks.
func SaveTimeSegments(segments []string, outputPath string) error {
	var b strings.Builder
	for i, segment := range segments {
		fmt.Fprintf(&b, "%s\nSegment %d\n%s\n", divider, i+1, divider)
		b.WriteString(segment)
		b.WriteString("\n\n")
	}

	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// SaveSlicedCues writes the slice output: header with the requested range,
// the time-annotated cues, and a footer with the cue count.
func SaveSlicedCues(cues []Cue, outputPath, timeRange, startTime, endTime string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nSubtitle slice\n%s\n", divider, divider)
	fmt.Fprintf(&b, "Time range: %s\n", timeRange)
	fmt.Fprintf(&b, "Requested range: %s --> %s\n", startTime, endTime)
	fmt.Fprintf(&b, "\n%s\nContent\n%s\n\n", divider, divider)

	for _, cue := range cues {
		tr := TimeRange{Start: cue.Start, End: cue.End, Known: true}
		fmt.Fprintf(&b, "%s\n%s\n\n", FormatTimeRange(tr), cue.Text)
	}

	fmt.Fprintf(&b, "%s\nDone\n%s\n", divider, divider)
	fmt.Fprintf(&b, "Sliced cues: %d\n", len(cues))

	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// SliceCues returns the cues strictly inside (startSec, endSec): starting
// after startSec and ending before endSec.
func SliceCues(cues []Cue, startSec, endSec float64) []Cue {
	var out []Cue
	for _, c := range cues {
		if c.Start > startSec && c.End < endSec {
			out = append(out, c)
		}
	}
	return out
}

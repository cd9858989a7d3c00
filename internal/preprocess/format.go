package preprocess

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// FormatType classifies a transcript input into one of four variants.
type FormatType string

const (
	// FormatPlain is text without any recognizable time markers.
	FormatPlain FormatType = "plain"
	// FormatTimestamp carries compact bracket markers like [0.5s --> 2.3s].
	FormatTimestamp FormatType = "timestamp"
	// FormatSRTTimestamp carries bracket markers like
	// [00:00:00.000 --> 00:00:03.080] (comma or dot before milliseconds).
	FormatSRTTimestamp FormatType = "srt_timestamp"
	// FormatSRT is a standard subtitle-cue file.
	FormatSRT FormatType = "srt"
)

// detectSampleLimit bounds how many characters of content detection reads.
const detectSampleLimit = 2000

var (
	timestampPattern    = regexp.MustCompile(`\[(\d+\.\d+)s\s*-->\s*(\d+\.\d+)s\]`)
	srtTimestampPattern = regexp.MustCompile(`\[(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})\]`)
	srtBlockPattern     = regexp.MustCompile(`(?m)^\d+[ \t\r]*\n\d{2}:\d{2}:\d{2},\d{3}\s*-->\s*\d{2}:\d{2}:\d{2},\d{3}`)
)

// DetectFile classifies an input file. A .srt extension short-circuits
// content inspection; otherwise the sampled content decides.
func DetectFile(path string) (FormatType, error) {
	if strings.EqualFold(filepath.Ext(path), ".srt") {
		return FormatSRT, nil
	}
	content, err := ReadFileContent(path)
	if err != nil {
		return FormatPlain, fmt.Errorf("detect format: %w", err)
	}
	return DetectText(content), nil
}

// DetectText classifies raw text by sampling its first characters.
//
// The order is load-bearing: the SRT bracket pattern and the compact bracket
// pattern can partially match overlapping text, and a .txt file carrying
// either bracket notation may also contain lines that look like cue blocks.
func DetectText(text string) FormatType {
	sample := text
	if runes := []rune(sample); len(runes) > detectSampleLimit {
		sample = string(runes[:detectSampleLimit])
	}

	switch {
	case srtTimestampPattern.MatchString(sample):
		return FormatSRTTimestamp
	case timestampPattern.MatchString(sample):
		return FormatTimestamp
	case srtBlockPattern.MatchString(sample):
		return FormatSRT
	default:
		return FormatPlain
	}
}

package preprocess

import "strings"

// Range is a half-open byte span into the buffer it was computed from.
type Range struct {
	Start int
	End   int
}

// SegmentRanges splits text into contiguous ranges bounded by a space-count
// window: each range normally ends just after its maxSpaces-th space, and
// once fewer than minSpaces spaces remain the range absorbs the rest of the
// text. The returned ranges are gapless and cover the whole input, so
// concatenating text[r.Start:r.End] in order reconstructs text exactly.
func SegmentRanges(text string, minSpaces, maxSpaces int) []Range {
	// A window that consumes no spaces cannot advance; absorb everything.
	if maxSpaces < 1 {
		if len(text) == 0 {
			return nil
		}
		return []Range{{Start: 0, End: len(text)}}
	}

	var spacePositions []int
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			spacePositions = append(spacePositions, i)
		}
	}

	var ranges []Range
	start := 0
	i := 0
	for i < len(spacePositions) {
		target := i + maxSpaces
		if target > len(spacePositions) {
			target = len(spacePositions)
		}

		// The final window always runs to the end of the text: either the
		// tail holds fewer than minSpaces spaces, or the target space is the
		// last one and any trailing word belongs to this range.
		end := len(text)
		if len(spacePositions)-i >= minSpaces && target < len(spacePositions) {
			end = spacePositions[target-1] + 1
		}

		ranges = append(ranges, Range{Start: start, End: end})
		start = end
		i = target
	}

	if start < len(text) {
		ranges = append(ranges, Range{Start: start, End: len(text)})
	}
	return ranges
}

// SegmentBySpaces materializes the ranges as trimmed texts, dropping
// segments that are empty after trimming.
func SegmentBySpaces(text string, minSpaces, maxSpaces int) []string {
	var out []string
	for _, r := range SegmentRanges(text, minSpaces, maxSpaces) {
		if s := strings.TrimSpace(text[r.Start:r.End]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

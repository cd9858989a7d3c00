package preprocess

import "strings"

// SegmentWithTimeRanges segments text carrying compact bracket markers,
// prefixing each segment with its resolved time range.
func SegmentWithTimeRanges(text string, minSpaces, maxSpaces int) []string {
	anchors := ExtractTimestamps(text)
	clean := NormalizeWhitespace(timestampPattern.ReplaceAllString(text, " "))
	return annotateRanges(clean, len(text), anchors, minSpaces, maxSpaces)
}

// SegmentWithSRTTimestamps segments text carrying SRT-style bracket markers,
// prefixing each segment with its resolved time range.
func SegmentWithSRTTimestamps(text string, minSpaces, maxSpaces int) []string {
	anchors := ExtractSRTTimestamps(text)
	clean := NormalizeWhitespace(srtTimestampPattern.ReplaceAllString(text, " "))
	return annotateRanges(clean, len(text), anchors, minSpaces, maxSpaces)
}

func annotateRanges(clean string, originalLen int, anchors []Anchor, minSpaces, maxSpaces int) []string {
	var out []string
	for _, r := range SegmentRanges(clean, minSpaces, maxSpaces) {
		segText := strings.TrimSpace(clean[r.Start:r.End])
		if segText == "" {
			continue
		}
		tr := ResolveTimeRange(r, len(clean), originalLen, anchors)
		out = append(out, FormatTimeRange(tr)+"\n"+segText)
	}
	return out
}

// JoinCues concatenates cue texts (newlines flattened) with single spaces
// and returns the buffer plus the cumulative end boundary of each cue.
func JoinCues(cues []Cue) (string, []int) {
	texts := make([]string, len(cues))
	boundaries := make([]int, len(cues))
	length := 0
	for i, c := range cues {
		t := strings.ReplaceAll(c.Text, "\n", " ")
		texts[i] = t
		length += len(t) + 1 // joining space
		boundaries[i] = length
	}
	return strings.Join(texts, " "), boundaries
}

// SegmentCuesWithTime segments the joined cue buffer, prefixing each segment
// with the time range resolved from the covering cues.
func SegmentCuesWithTime(cues []Cue, minSpaces, maxSpaces int) []string {
	full, boundaries := JoinCues(cues)

	var out []string
	for _, r := range SegmentRanges(full, minSpaces, maxSpaces) {
		segText := strings.TrimSpace(full[r.Start:r.End])
		if segText == "" {
			continue
		}
		tr := ResolveCueRange(r, cues, boundaries)
		out = append(out, FormatTimeRange(tr)+"\n"+segText)
	}
	return out
}

// CuesPlainText flattens cues into normalized plain text.
func CuesPlainText(cues []Cue) string {
	texts := make([]string, len(cues))
	for i, c := range cues {
		texts[i] = strings.ReplaceAll(c.Text, "\n", " ")
	}
	return NormalizeWhitespace(strings.Join(texts, " "))
}

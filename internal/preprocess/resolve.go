package preprocess

import (
	"fmt"
	"math"
)

// TimeRange is a resolved segment time span. Known is false when the source
// carried no anchors at all.
type TimeRange struct {
	Start float64
	End   float64
	Known bool
}

// FormatSeconds renders seconds as "2m30.5s", or "42.0s" under a minute.
func FormatSeconds(sec float64) string {
	minutes := int(sec) / 60
	rem := sec - float64(minutes)*60
	if minutes > 0 {
		return fmt.Sprintf("%dm%.1fs", minutes, rem)
	}
	return fmt.Sprintf("%.1fs", rem)
}

// FormatTimeRange renders a human-readable range, or an explicit unknown
// placeholder instead of omitting the field.
func FormatTimeRange(tr TimeRange) string {
	if !tr.Known {
		return "【time unknown】"
	}
	return fmt.Sprintf("【%s - %s】", FormatSeconds(tr.Start), FormatSeconds(tr.End))
}

// ResolveTimeRange maps a segment range over the normalized buffer back onto
// the anchors keyed against the original text. Stripping markers changes
// lengths, so offsets map by linear proportion; the resolver only needs
// anchor-level granularity, not character precision.
func ResolveTimeRange(seg Range, normalizedLen, originalLen int, anchors []Anchor) TimeRange {
	if len(anchors) == 0 {
		return TimeRange{}
	}

	origStart, origEnd := 0, 0
	if normalizedLen > 0 {
		origStart = int(math.Round(float64(seg.Start) / float64(normalizedLen) * float64(originalLen)))
		origEnd = int(math.Round(float64(seg.End) / float64(normalizedLen) * float64(originalLen)))
	}

	start := anchors[len(anchors)-1].Start
	for _, a := range anchors {
		if a.EndPos >= origStart {
			start = a.Start
			break
		}
	}

	end := anchors[0].End
	for _, a := range anchors {
		if a.EndPos > origEnd {
			break
		}
		end = a.End
	}

	return TimeRange{Start: start, End: end, Known: true}
}

// ResolveCueRange resolves a segment range over the space-joined cue buffer.
// Boundaries are exact here (no normalization happened), so the segment's
// start time comes from the first cue whose end boundary passes the segment
// start, and its end time from the first cue whose boundary reaches the
// segment end (falling back to the last cue).
func ResolveCueRange(seg Range, cues []Cue, boundaries []int) TimeRange {
	if len(cues) == 0 {
		return TimeRange{}
	}

	start := cues[0].Start
	for i, b := range boundaries {
		if b > seg.Start {
			start = cues[i].Start
			break
		}
	}

	end := cues[len(cues)-1].End
	for i, b := range boundaries {
		if b >= seg.End {
			end = cues[i].End
			break
		}
	}

	return TimeRange{Start: start, End: end, Known: true}
}

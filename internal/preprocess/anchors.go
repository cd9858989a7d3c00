package preprocess

import (
	"fmt"
	"strconv"
	"strings"
)

// Anchor ties a byte position in the source text to the time range of the
// marker whose textual form ends there. Anchors are produced in match order,
// so the list is always sorted by EndPos ascending.
type Anchor struct {
	EndPos int
	Start  float64
	End    float64
	Raw    string
}

// ExtractTimestamps returns an anchor for every compact bracket marker,
// e.g. [0.5s --> 2.3s].
func ExtractTimestamps(text string) []Anchor {
	var anchors []Anchor
	for _, m := range timestampPattern.FindAllStringSubmatchIndex(text, -1) {
		start, _ := strconv.ParseFloat(text[m[2]:m[3]], 64)
		end, _ := strconv.ParseFloat(text[m[4]:m[5]], 64)
		anchors = append(anchors, Anchor{
			EndPos: m[1],
			Start:  start,
			End:    end,
			Raw:    text[m[0]:m[1]],
		})
	}
	return anchors
}

// ExtractSRTTimestamps returns an anchor for every SRT-style bracket marker,
// e.g. [00:00:00.000 --> 00:00:03.080].
func ExtractSRTTimestamps(text string) []Anchor {
	var anchors []Anchor
	for _, m := range srtTimestampPattern.FindAllStringSubmatchIndex(text, -1) {
		// The pattern guarantees well-formed time tokens.
		start, _ := SRTTimeToSeconds(text[m[2]:m[3]])
		end, _ := SRTTimeToSeconds(text[m[4]:m[5]])
		anchors = append(anchors, Anchor{
			EndPos: m[1],
			Start:  start,
			End:    end,
			Raw:    text[m[0]:m[1]],
		})
	}
	return anchors
}

// SRTTimeToSeconds converts "HH:MM:SS,mmm" (comma or dot before the
// milliseconds) into seconds.
func SRTTimeToSeconds(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid SRT time %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid SRT time %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid SRT time %q", s)
	}
	secMS := strings.SplitN(strings.ReplaceAll(parts[2], ",", "."), ".", 2)
	if len(secMS) != 2 {
		return 0, fmt.Errorf("invalid SRT time %q", s)
	}
	seconds, err := strconv.Atoi(secMS[0])
	if err != nil {
		return 0, fmt.Errorf("invalid SRT time %q", s)
	}
	millis, err := strconv.Atoi(secMS[1])
	if err != nil {
		return 0, fmt.Errorf("invalid SRT time %q", s)
	}
	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000.0, nil
}

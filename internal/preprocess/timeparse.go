package preprocess

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	srtInputPattern    = regexp.MustCompile(`^(\d+):(\d+):(\d+),(\d+)`)
	minSecInputPattern = regexp.MustCompile(`^(\d+):(\d+)`)
	mmSSInputPattern   = regexp.MustCompile(`^(\d+)m(\d+)s`)
	mmInputPattern     = regexp.MustCompile(`^(\d+)m\s*$`)
	ssInputPattern     = regexp.MustCompile(`^(\d+)s\s*$`)
)

// ParseTimeInput parses a flexible time string into seconds. Accepted forms:
// "90" (pure seconds), "2:30" (MM:SS), "00:02:30,500" (subtitle style),
// "2m30s", "2m", "30s".
func ParseTimeInput(s string) (float64, error) {
	s = strings.TrimSpace(s)

	if m := srtInputPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		sec, _ := strconv.Atoi(m[3])
		ms, _ := strconv.Atoi(m[4])
		return float64(h)*3600 + float64(min)*60 + float64(sec) + float64(ms)/1000.0, nil
	}
	if m := minSecInputPattern.FindStringSubmatch(s); m != nil {
		min, _ := strconv.Atoi(m[1])
		sec, _ := strconv.Atoi(m[2])
		return float64(min)*60 + float64(sec), nil
	}
	if m := mmSSInputPattern.FindStringSubmatch(s); m != nil {
		min, _ := strconv.Atoi(m[1])
		sec, _ := strconv.Atoi(m[2])
		return float64(min)*60 + float64(sec), nil
	}
	if m := mmInputPattern.FindStringSubmatch(s); m != nil {
		min, _ := strconv.Atoi(m[1])
		return float64(min) * 60, nil
	}
	if m := ssInputPattern.FindStringSubmatch(s); m != nil {
		sec, _ := strconv.Atoi(m[1])
		return float64(sec), nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	return 0, fmt.Errorf("unparseable time format: %q", s)
}

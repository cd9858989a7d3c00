// Package progress tracks and restores per-segment processing state through
// a single marker line embedded at the tail of the output file itself.
package progress

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Status is the lifecycle stage recorded in a progress marker.
type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
	StatusComplete   Status = "complete"
	StatusUnknown    Status = "unknown"
)

const (
	markerPrefix = "<!-- PROCESSING: segment="
	markerSuffix = "-->"

	// The marker is always the last line and short, so resume inspection
	// only needs the file's tail.
	tailReadBytes = 1024
)

// Marker is the resume checkpoint embedded in an output file.
type Marker struct {
	Index  int
	Total  int
	Status Status
}

// Encode renders the single-line marker grammar:
// <!-- PROCESSING: segment=<int>/<int>, status=<status> -->
func (m Marker) Encode() string {
	return fmt.Sprintf("%s%d/%d, status=%s %s", markerPrefix, m.Index, m.Total, m.Status, markerSuffix)
}

// ParseMarker scans content from its last line backward and returns the
// first line that parses as a marker. A malformed candidate is skipped, not
// fatal.
func ParseMarker(content string) (Marker, bool) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, markerPrefix) || !strings.HasSuffix(line, markerSuffix) {
			continue
		}
		middle := strings.TrimSpace(line[len(markerPrefix) : len(line)-len(markerSuffix)])
		if m, ok := parseMarkerBody(middle); ok {
			return m, true
		}
	}
	return Marker{}, false
}

func parseMarkerBody(body string) (Marker, bool) {
	segmentPart, statusPart, hasStatus := strings.Cut(body, ", ")

	indexStr, totalStr, ok := strings.Cut(strings.TrimSpace(segmentPart), "/")
	if !ok {
		return Marker{}, false
	}
	index, err := strconv.Atoi(strings.TrimSpace(indexStr))
	if err != nil {
		return Marker{}, false
	}
	total, err := strconv.Atoi(strings.TrimSpace(totalStr))
	if err != nil {
		return Marker{}, false
	}

	status := StatusProcessing
	if hasStatus {
		if _, v, ok := strings.Cut(statusPart, "="); ok {
			status = Status(strings.TrimSpace(v))
		}
	}
	return Marker{Index: index, Total: total, Status: status}, true
}

// IsMarkerLine reports whether a line carries the marker prefix.
func IsMarkerLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), markerPrefix)
}

// StripTrailingMarkers removes marker lines from the end of a line list.
// Markers buried mid-file (a failed marker followed by its fallback block)
// are left alone.
func StripTrailingMarkers(lines []string) []string {
	for len(lines) > 0 && IsMarkerLine(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// StripLastMarkerAndAfter drops the last marker line and everything after
// it. Used when resuming: whatever follows the stale marker (typically the
// failure fallback for the segment about to be retried) must not survive
// into the new run's output.
func StripLastMarkerAndAfter(lines []string) []string {
	for i := len(lines) - 1; i >= 0; i-- {
		if IsMarkerLine(lines[i]) {
			return lines[:i]
		}
	}
	return lines
}

// Load inspects outputPath and decides where a run should resume.
//
// A complete marker resumes at totalSegments; failed and processing markers
// resume at their recorded index (the in-flight segment is retried). A file
// with content but no marker falls back to estimating by blank-line
// separated blocks, capped at totalSegments. An empty or absent file starts
// fresh.
func Load(outputPath string, totalSegments int) (int, Status, error) {
	if _, err := os.Stat(outputPath); err != nil {
		if os.IsNotExist(err) {
			return 0, StatusNew, nil
		}
		return 0, StatusNew, fmt.Errorf("stat output: %w", err)
	}

	tail, err := readTail(outputPath, tailReadBytes)
	if err != nil {
		return 0, StatusNew, err
	}

	if m, ok := ParseMarker(tail); ok {
		switch m.Status {
		case StatusComplete:
			return totalSegments, StatusComplete, nil
		case StatusFailed:
			return m.Index, StatusFailed, nil
		default:
			// The marker shows a call in flight when the process stopped;
			// its outcome is unknown, so that segment is retried.
			return m.Index, StatusProcessing, nil
		}
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return 0, StatusNew, fmt.Errorf("read output: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, StatusNew, nil
	}

	// Legacy file without a marker: estimate completed segments from the
	// blank-line separated blocks.
	estimated := strings.Count(content, "\n\n") + 1
	if estimated > totalSegments {
		estimated = totalSegments
	}
	return estimated, StatusUnknown, nil
}

// readTail returns up to limit bytes from the end of the file, decoded
// leniently: bytes from a rune split by the seek offset are dropped.
func readTail(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat output: %w", err)
	}
	if size := info.Size(); size > limit {
		if _, err := f.Seek(size-limit, io.SeekStart); err != nil {
			return "", fmt.Errorf("seek output: %w", err)
		}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read output tail: %w", err)
	}
	for len(data) > 0 && !utf8.RuneStart(data[0]) {
		data = data[1:]
	}
	return string(data), nil
}

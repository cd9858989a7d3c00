package preprocess

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects the preprocess output flavor.
type Mode string

const (
	// ModePlain extracts plain text with all time markers removed.
	ModePlain Mode = "plain"
	// ModeWithTime keeps resolved time ranges on each segment.
	ModeWithTime Mode = "with-time"
	// ModeSlice cuts a time window out of a subtitle-cue file.
	ModeSlice Mode = "slice"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePlain, ModeWithTime, ModeSlice:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q (available: plain, with-time, slice)", s)
	}
}

// Options carries the preprocess run parameters.
type Options struct {
	Mode      Mode
	MinSpaces int
	MaxSpaces int
	StartTime string
	EndTime   string
	OutputDir string
}

// Run routes an input file through the chosen preprocess mode and writes the
// result under opts.OutputDir. It returns the written file's path.
func Run(inputPath string, opts Options) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("input file not found: %s", inputPath)
		}
		return "", fmt.Errorf("stat input: %w", err)
	}
	if opts.MinSpaces > opts.MaxSpaces {
		return "", fmt.Errorf("min spaces (%d) cannot exceed max spaces (%d)", opts.MinSpaces, opts.MaxSpaces)
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	format, err := DetectFile(inputPath)
	if err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	switch format {
	case FormatSRT:
		return runSRT(inputPath, stem, opts)
	case FormatTimestamp, FormatSRTTimestamp:
		return runTimestamped(inputPath, format, stem, opts)
	default:
		return runPlain(inputPath, stem, opts)
	}
}

func runSRT(inputPath, stem string, opts Options) (string, error) {
	cues, err := LoadSRTFile(inputPath)
	if err != nil {
		return "", err
	}

	switch opts.Mode {
	case ModePlain:
		out := filepath.Join(opts.OutputDir, stem+"_plain.txt")
		return out, SavePlainText(CuesPlainText(cues), out, filepath.Base(inputPath))

	case ModeWithTime:
		out := filepath.Join(opts.OutputDir, stem+"_with_time.txt")
		segments := SegmentCuesWithTime(cues, opts.MinSpaces, opts.MaxSpaces)
		return out, SaveTimeSegments(segments, out)

	default: // ModeSlice
		if opts.StartTime == "" || opts.EndTime == "" {
			return "", fmt.Errorf("slice mode requires --start and --end times")
		}
		startSec, err := ParseTimeInput(opts.StartTime)
		if err != nil {
			return "", err
		}
		endSec, err := ParseTimeInput(opts.EndTime)
		if err != nil {
			return "", err
		}
		sliced := SliceCues(cues, startSec, endSec)
		timeRange := FormatTimeRange(TimeRange{Start: startSec, End: endSec, Known: true})
		out := filepath.Join(opts.OutputDir, stem+"_slice.txt")
		return out, SaveSlicedCues(sliced, out, timeRange, opts.StartTime, opts.EndTime)
	}
}

func runTimestamped(inputPath string, format FormatType, stem string, opts Options) (string, error) {
	content, err := ReadFileContent(inputPath)
	if err != nil {
		return "", err
	}

	switch opts.Mode {
	case ModePlain:
		out := filepath.Join(opts.OutputDir, stem+"_plain.txt")
		return out, SavePlainText(RemoveTimestamps(content), out, filepath.Base(inputPath))

	case ModeWithTime:
		var segments []string
		if format == FormatSRTTimestamp {
			segments = SegmentWithSRTTimestamps(content, opts.MinSpaces, opts.MaxSpaces)
		} else {
			segments = SegmentWithTimeRanges(content, opts.MinSpaces, opts.MaxSpaces)
		}
		out := filepath.Join(opts.OutputDir, stem+"_with_time.txt")
		return out, SaveTimeSegments(segments, out)

	default:
		return "", fmt.Errorf("slice mode only supports SRT inputs")
	}
}

func runPlain(inputPath, stem string, opts Options) (string, error) {
	content, err := ReadFileContent(inputPath)
	if err != nil {
		return "", err
	}
	clean := NormalizeWhitespace(content)

	switch opts.Mode {
	case ModePlain:
		out := filepath.Join(opts.OutputDir, stem+"_plain.txt")
		return out, SavePlainText(clean, out, filepath.Base(inputPath))

	case ModeWithTime:
		out := filepath.Join(opts.OutputDir, stem+"_with_time.txt")
		segments := SegmentBySpaces(clean, opts.MinSpaces, opts.MaxSpaces)
		return out, SaveTimeSegments(segments, out)

	default:
		return "", fmt.Errorf("slice mode only supports SRT inputs")
	}
}

package preprocess

import (
	"strings"
	"testing"
)

func TestSegmentRangesCoverage(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		minSpaces int
		maxSpaces int
	}{
		{"even words", "w0 w1 w2 w3 w4 w5 w6 w7 w8 w9", 3, 4},
		{"single word", "hello", 1, 2},
		{"trailing spaces", "a b c   ", 1, 2},
		{"one big window", "a b c d e", 10, 20},
		{"window of one space", "a b c d e", 1, 1},
		{"zero window", "a b c d e", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := SegmentRanges(tt.text, tt.minSpaces, tt.maxSpaces)

			var rebuilt strings.Builder
			prev := 0
			for _, r := range ranges {
				if r.Start != prev {
					t.Errorf("range starts at %d, previous ended at %d", r.Start, prev)
				}
				if r.End <= r.Start {
					t.Errorf("empty or inverted range %+v", r)
				}
				rebuilt.WriteString(tt.text[r.Start:r.End])
				prev = r.End
			}
			if prev != len(tt.text) {
				t.Errorf("last range ends at %d, want %d", prev, len(tt.text))
			}
			if rebuilt.String() != tt.text {
				t.Errorf("concatenated ranges = %q, want %q", rebuilt.String(), tt.text)
			}
		})
	}
}

func TestSegmentRangesEmpty(t *testing.T) {
	if got := SegmentRanges("", 3, 4); len(got) != 0 {
		t.Errorf("SegmentRanges(empty) = %v, want none", got)
	}
}

func TestSegmentRangesZeroWindow(t *testing.T) {
	// maxSpaces of zero must not panic on spaced text; the whole input
	// lands in one range.
	got := SegmentRanges("a b c", 0, 0)
	if len(got) != 1 || got[0] != (Range{Start: 0, End: len("a b c")}) {
		t.Errorf("SegmentRanges(zero window) = %v, want one full range", got)
	}

	if got := SegmentBySpaces("a b c", 0, 0); len(got) != 1 || got[0] != "a b c" {
		t.Errorf("SegmentBySpaces(zero window) = %v, want single full segment", got)
	}

	if got := SegmentRanges("", 0, 0); len(got) != 0 {
		t.Errorf("SegmentRanges(empty, zero window) = %v, want none", got)
	}
}

func TestSegmentBySpaces(t *testing.T) {
	text := "w0 w1 w2 w3 w4 w5 w6 w7 w8 w9"

	got := SegmentBySpaces(text, 3, 4)
	want := []string{"w0 w1 w2 w3", "w4 w5 w6 w7", "w8 w9"}
	if len(got) != len(want) {
		t.Fatalf("SegmentBySpaces() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSegmentBySpacesWindow(t *testing.T) {
	// 7 spaces with a 3..4 window: the first segment consumes 4 spaces,
	// the remaining 3 reach the minimum so the tail forms one segment.
	got := SegmentBySpaces("a b c d e f g h", 3, 4)
	want := []string{"a b c d", "e f g h"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SegmentBySpaces() = %v, want %v", got, want)
	}
}

func TestSegmentBySpacesShortText(t *testing.T) {
	// Fewer spaces than the minimum: everything lands in one segment.
	got := SegmentBySpaces("just three words", 50, 60)
	if len(got) != 1 || got[0] != "just three words" {
		t.Errorf("SegmentBySpaces() = %v, want single full segment", got)
	}
}

func TestSegmentBySpacesTrailingTail(t *testing.T) {
	// A short tail after the last full window must not be dropped.
	words := make([]string, 9)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	got := SegmentBySpaces(text, 4, 4)
	var total int
	for _, s := range got {
		total += len(strings.Fields(s))
	}
	if total != 9 {
		t.Errorf("segments hold %d words, want all 9: %v", total, got)
	}
}

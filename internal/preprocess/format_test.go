package preprocess

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want FormatType
	}{
		{
			name: "plain text",
			text: "just some spoken words with no markers at all",
			want: FormatPlain,
		},
		{
			name: "compact timestamps",
			text: "[0.50s --> 2.30s] hello there [2.30s --> 4.10s] more words",
			want: FormatTimestamp,
		},
		{
			name: "srt style timestamps",
			text: "[00:00:00.000 --> 00:00:03.080] hello there",
			want: FormatSRTTimestamp,
		},
		{
			name: "srt style timestamps with comma millis",
			text: "[00:00:00,000 --> 00:00:03,080] hello there",
			want: FormatSRTTimestamp,
		},
		{
			name: "cue blocks",
			text: "1\n00:00:01,000 --> 00:00:03,000\nhello there\n\n2\n00:00:03,000 --> 00:00:05,000\nmore words\n",
			want: FormatSRT,
		},
		{
			name: "srt timestamps win over compact",
			text: "[00:00:00.000 --> 00:00:03.080] hello [0.50s --> 2.30s] there",
			want: FormatSRTTimestamp,
		},
		{
			name: "bracket markers win over cue-like lines",
			text: "[0.50s --> 2.30s] intro\n1\n00:00:01,000 --> 00:00:03,000\nhello\n",
			want: FormatTimestamp,
		},
		{
			name: "empty",
			text: "",
			want: FormatPlain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectText(tt.text); got != tt.want {
				t.Errorf("DetectText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectTextSampleLimit(t *testing.T) {
	// Markers beyond the sampled prefix must not influence detection.
	text := strings.Repeat("a", 3000) + " [0.50s --> 2.30s] late marker"
	if got := DetectText(text); got != FormatPlain {
		t.Errorf("DetectText() = %v, want %v", got, FormatPlain)
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()

	srtPath := filepath.Join(dir, "video.srt")
	if err := os.WriteFile(srtPath, []byte("not actually cue blocks"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := DetectFile(srtPath)
	if err != nil {
		t.Fatal(err)
	}
	if got != FormatSRT {
		t.Errorf("DetectFile(.srt) = %v, want %v", got, FormatSRT)
	}

	txtPath := filepath.Join(dir, "talk.txt")
	if err := os.WriteFile(txtPath, []byte("[0.50s --> 2.30s] hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = DetectFile(txtPath)
	if err != nil {
		t.Fatal(err)
	}
	if got != FormatTimestamp {
		t.Errorf("DetectFile(.txt) = %v, want %v", got, FormatTimestamp)
	}

	if _, err := DetectFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("DetectFile() expected error for missing file")
	}
}

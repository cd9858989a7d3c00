package summary

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-flow/internal/preprocess"
	"github.com/nguyentantai21042004/transcript-flow/internal/progress"
)

type stubTransformer struct {
	gotPrompt  string
	gotContent string
	result     string
}

func (s *stubTransformer) Transform(ctx context.Context, systemPrompt, content string) (string, error) {
	s.gotPrompt = systemPrompt
	s.gotContent = content
	return s.result, nil
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	segmentsPath := filepath.Join(dir, "segments.md")
	finalPath := filepath.Join(dir, "final.md")

	// Streamed summaries file: blank-line separated blocks plus the
	// trailing complete marker.
	content := "summary one\n\nsummary two\n" +
		progress.Marker{Index: 2, Total: 2, Status: progress.StatusComplete}.Encode()
	if err := os.WriteFile(segmentsPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	stub := &stubTransformer{result: "merged summary"}
	err := Merge(context.Background(), stub, "merge prompt", segmentsPath, finalPath, preprocess.FormatSRT)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}

	if stub.gotPrompt != "merge prompt" {
		t.Errorf("prompt = %q", stub.gotPrompt)
	}
	if !strings.Contains(stub.gotContent, "## Part 1") || !strings.Contains(stub.gotContent, "summary two") {
		t.Errorf("merge input = %q", stub.gotContent)
	}
	if strings.Contains(stub.gotContent, "PROCESSING") {
		t.Errorf("merge input leaked a progress marker: %q", stub.gotContent)
	}

	data, err := os.ReadFile(finalPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "merged summary\n" {
		t.Errorf("final summary = %q", string(data))
	}
}

func TestMergeEmptySummaries(t *testing.T) {
	dir := t.TempDir()
	segmentsPath := filepath.Join(dir, "segments.md")
	if err := os.WriteFile(segmentsPath, []byte("\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stub := &stubTransformer{result: "x"}
	err := Merge(context.Background(), stub, "p", segmentsPath, filepath.Join(dir, "final.md"), preprocess.FormatPlain)
	if err == nil {
		t.Error("Merge() expected error for empty summaries file")
	}
}

package stream

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/progress"
)

func testWriter() *Writer {
	return New(logger.NewWithWriter("error", io.Discard))
}

func upper(ctx context.Context, content string) (string, error) {
	return strings.ToUpper(content), nil
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	segments := []string{"one", "two", "three"}

	err := testWriter().Run(context.Background(), segments, path, 0, progress.StatusNew, nil, upper)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "ONE\n\nTWO\n\nTHREE\n" +
		progress.Marker{Index: 3, Total: 3, Status: progress.StatusComplete}.Encode()
	if got := readFile(t, path); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunFailureKeepsOriginalAndContinues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	segments := []string{"one", "two", "three"}

	transform := func(ctx context.Context, content string) (string, error) {
		if content == "two" {
			return "", fmt.Errorf("service unavailable")
		}
		return strings.ToUpper(content), nil
	}

	err := testWriter().Run(context.Background(), segments, path, 0, progress.StatusNew, nil, transform)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got := readFile(t, path)
	for _, want := range []string{
		"ONE",
		progress.Marker{Index: 1, Total: 3, Status: progress.StatusFailed}.Encode(),
		failedFallbackHeader,
		"two",
		"THREE",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, progress.Marker{Index: 3, Total: 3, Status: progress.StatusComplete}.Encode()) {
		t.Errorf("output does not end with complete marker:\n%s", got)
	}
}

func TestRunResumeAfterFailureDropsStaleFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	segments := []string{"one", "two", "three"}

	// File state of a run that recorded a failure for segment 1 and then
	// stopped before attempting segment 2.
	interrupted := "ONE\n" +
		progress.Marker{Index: 1, Total: 3, Status: progress.StatusFailed}.Encode() +
		"\n\n" + failedFallbackHeader + "\n\ntwo"
	if err := os.WriteFile(path, []byte(interrupted), 0o644); err != nil {
		t.Fatal(err)
	}

	startIndex, status, err := progress.Load(path, len(segments))
	if err != nil {
		t.Fatal(err)
	}
	if startIndex != 1 || status != progress.StatusFailed {
		t.Fatalf("Load() = (%d, %s), want (1, failed)", startIndex, status)
	}

	err = testWriter().Run(context.Background(), segments, path, startIndex, status, nil, upper)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "ONE\n\nTWO\n\nTHREE\n" +
		progress.Marker{Index: 3, Total: 3, Status: progress.StatusComplete}.Encode()
	if got := readFile(t, path); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunResumeAfterCrashMidCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	segments := []string{"one", "two"}

	// A crash mid-call leaves the processing marker as the last line.
	interrupted := "ONE\n" +
		progress.Marker{Index: 1, Total: 2, Status: progress.StatusProcessing}.Encode()
	if err := os.WriteFile(path, []byte(interrupted), 0o644); err != nil {
		t.Fatal(err)
	}

	startIndex, status, err := progress.Load(path, len(segments))
	if err != nil {
		t.Fatal(err)
	}
	if startIndex != 1 || status != progress.StatusProcessing {
		t.Fatalf("Load() = (%d, %s), want (1, processing)", startIndex, status)
	}

	err = testWriter().Run(context.Background(), segments, path, startIndex, status, nil, upper)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "ONE\n\nTWO\n" +
		progress.Marker{Index: 2, Total: 2, Status: progress.StatusComplete}.Encode()
	if got := readFile(t, path); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunMarkerDurableDuringCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	segments := []string{"one", "two"}

	// The on-disk file must already name the in-flight segment while the
	// external call is still running.
	transform := func(ctx context.Context, content string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		m, ok := progress.ParseMarker(string(data))
		if !ok {
			return "", fmt.Errorf("no marker on disk during call for %q", content)
		}
		if m.Status != progress.StatusProcessing {
			return "", fmt.Errorf("marker status = %s during call", m.Status)
		}
		return strings.ToUpper(content), nil
	}

	err := testWriter().Run(context.Background(), segments, path, 0, progress.StatusNew, nil, transform)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestRunContentHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	segments := []string{"raw segment"}

	var sent string
	hook := func(segment string, index int) string {
		return "wrapped: " + segment
	}
	transform := func(ctx context.Context, content string) (string, error) {
		sent = content
		return "result", nil
	}

	err := testWriter().Run(context.Background(), segments, path, 0, progress.StatusNew, hook, transform)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if sent != "wrapped: raw segment" {
		t.Errorf("transform received %q, want hooked content", sent)
	}
	if got := readFile(t, path); !strings.HasPrefix(got, "result") {
		t.Errorf("output = %q, want transform result stored", got)
	}
}

func TestRunCanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testWriter().Run(ctx, []string{"one"}, path, 0, progress.StatusNew, nil, upper)
	if err == nil {
		t.Fatal("Run() expected error for canceled context")
	}
}

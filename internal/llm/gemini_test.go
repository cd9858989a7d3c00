package llm

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

func TestGeminiNoKeys(t *testing.T) {
	g := NewGemini(nil, "gemini-2.5-flash", logger.NewWithWriter("error", io.Discard))
	if _, err := g.Transform(context.Background(), "p", "c"); err == nil {
		t.Error("Transform() expected error without api keys")
	}
}

func TestGeminiRotateKeyConcurrent(t *testing.T) {
	g := NewGemini([]string{"k1", "k2", "k3"}, "gemini-2.5-flash", logger.NewWithWriter("error", io.Discard))

	const rotations = 10
	var wg sync.WaitGroup
	for i := 0; i < rotations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.rotateKey()
		}()
	}
	wg.Wait()

	// Each rotation advances exactly once, so the index is deterministic.
	if g.currentKey != rotations%3 {
		t.Errorf("currentKey = %d after %d rotations, want %d", g.currentKey, rotations, rotations%3)
	}
}

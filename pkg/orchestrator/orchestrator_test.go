package orchestrator

import (
	"context"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/halvorsen/jif/pkg/capture"
	"github.com/halvorsen/jif/pkg/encoder"
)

func TestRunProducesAGif(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.gif")

	c := capture.NewSyntheticCapturer(capture.Config{FPS: 30})
	cfg := Config{
		Capturer: c,
		Region:   &capture.Rect{Width: 8, Height: 8},
		Duration: 150 * time.Millisecond,
		GifConfig: encoder.GifConfig{
			Width: 8, Height: 8, Path: path, UseLocalPalette: true,
		},
	}

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output GIF missing: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("gif.DecodeAll() error = %v", err)
	}
	if len(anim.Image) == 0 {
		t.Fatal("Run() produced a GIF with zero frames")
	}
}

func TestRunRejectsMissingCapturer(t *testing.T) {
	cfg := Config{Duration: time.Second, GifConfig: encoder.GifConfig{Width: 4, Height: 4, Path: "x.gif"}}
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("Run() with no capturer should error")
	}
}

func TestRunRejectsNonPositiveDuration(t *testing.T) {
	c := capture.NewSyntheticCapturer(capture.Config{FPS: 30})
	cfg := Config{Capturer: c, Duration: 0, GifConfig: encoder.GifConfig{Width: 4, Height: 4, Path: "x.gif"}}
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("Run() with zero duration should error")
	}
}

func TestRunStopsOnContextCancellation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cancel.gif")

	c := capture.NewSyntheticCapturer(capture.Config{FPS: 30})
	cfg := Config{
		Capturer: c,
		Region:   &capture.Rect{Width: 4, Height: 4},
		Duration: 10 * time.Second, // much longer than the cancellation below
		GifConfig: encoder.GifConfig{
			Width: 4, Height: 4, Path: path, UseLocalPalette: true,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Run(ctx, cfg)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Run() canceled via context should return the cancellation error")
	}
	if elapsed > 5*time.Second {
		t.Fatalf("Run() took %v to return after context cancellation, want well under the 10s duration", elapsed)
	}
}

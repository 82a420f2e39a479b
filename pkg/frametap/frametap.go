// Package frametap adapts a pkg/capture.Capturer's raw Begin/End/handler
// lifecycle to user code: callers get a generic context value threaded
// through every frame instead of having to close over capturer state
// themselves.
package frametap

import (
	"sync"

	"github.com/halvorsen/jif/pkg/capture"
)

// Handler processes one captured frame, carrying a caller-supplied
// context value. Returning a non-nil error stops the capture loop and
// that error is what Begin ultimately returns.
type Handler[Ctx any] func(ctx Ctx, frame capture.Frame) error

// FrameTap owns a capture.Capturer and drives it on behalf of Handler,
// generalizing the void* userInfo pattern internal/macos/display.go used
// at its cgo callback boundary into a Go generic.
//
// It also owns the duration-bookkeeping shift spec.md §4.1 requires: the
// underlying capturer attaches DurationMs = Tᵢ - Tᵢ₋₁ to the *incoming*
// sample i, but that interval describes how long the *previous* image
// was actually on screen. FrameTap buffers one sample behind and emits
// image i-1 carrying that duration, so sample 1 never reaches Handler on
// its own (there is no prior image yet) and the final buffered image is
// flushed once the capture loop stops.
type FrameTap[Ctx any] struct {
	capturer capture.Capturer
	ctx      Ctx

	// TailDurationMs is the duration assigned to the last buffered image
	// when the capture loop stops. Zero (the default) means "use the
	// duration of the most recently emitted frame", per spec.md §4.1.
	TailDurationMs float64

	mu      sync.Mutex
	handler Handler[Ctx]
	prev    *capture.ImageData
	lastDur float64
	lastErr error
}

// New builds a FrameTap around an existing capturer, immediately applying
// rect as the capture region (nil means full primary display).
func New[Ctx any](c capture.Capturer, ctx Ctx, rect *capture.Rect) *FrameTap[Ctx] {
	c.SetRegion(rect)
	return &FrameTap[Ctx]{capturer: c, ctx: ctx}
}

// SetHandler registers the per-frame callback. Must be called before
// Begin.
func (t *FrameTap[Ctx]) SetHandler(h Handler[Ctx]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = h
}

// Begin starts the underlying capturer's continuous loop, and blocks
// until End is called, the backend fails, or the handler returns an
// error. Panics if no handler has been set — the one deliberate panic in
// this library, matching spec.md §4.2's documented Begin-without-handler
// behavior.
//
// Per spec.md §4.1, the first sample never reaches Handler by itself:
// it is held back and emitted once sample 2 arrives, carrying the
// interval between them. Once the loop stops (for any reason — an
// explicit End, a handler error, or a fatal backend error), the last
// held-back image is flushed to Handler with a tail duration.
func (t *FrameTap[Ctx]) Begin() error {
	t.mu.Lock()
	h := t.handler
	t.mu.Unlock()
	if h == nil {
		panic("frametap: Begin called with no frame handler set")
	}

	t.capturer.SetFrameHandler(func(f capture.Frame) {
		t.mu.Lock()
		prev := t.prev
		img := f.Image
		t.prev = &img
		t.mu.Unlock()

		if prev == nil {
			// sample 1: nothing to emit yet, just buffered above.
			return
		}

		t.mu.Lock()
		t.lastDur = f.DurationMs
		t.mu.Unlock()

		if err := h(t.ctx, capture.Frame{Image: *prev, DurationMs: f.DurationMs}); err != nil {
			t.mu.Lock()
			if t.lastErr == nil {
				t.lastErr = err
			}
			t.mu.Unlock()
			_ = t.capturer.End()
		}
	})

	beginErr := t.capturer.Begin()

	t.mu.Lock()
	prev := t.prev
	t.prev = nil
	tail := t.TailDurationMs
	if tail <= 0 {
		tail = t.lastDur
	}
	lastErr := t.lastErr
	t.mu.Unlock()

	if prev != nil {
		if err := h(t.ctx, capture.Frame{Image: *prev, DurationMs: tail}); err != nil && lastErr == nil {
			lastErr = err
		}
	}

	if beginErr != nil {
		return beginErr
	}
	return lastErr
}

// End stops the capturer; idempotent, matching capture.Capturer.End. The
// final buffered image (if any) is flushed from within Begin once the
// loop actually stops, not here, since Begin is what's guaranteed to
// observe the loop's true end regardless of what triggered it.
func (t *FrameTap[Ctx]) End() error {
	return t.capturer.End()
}

// Package capture defines the platform-independent screen capture surface:
// a one-shot Screenshot call and a continuous Begin/End capture loop that
// delivers frames through a caller-supplied handler. Platform-specific
// backends live behind build tags and internal/platformcap.
package capture

import (
	"fmt"
	"sync"
	"time"

	"github.com/halvorsen/jif/pkg/jiferr"
)

// Rect is a capture region in screen coordinates. Width and Height must be
// >= 1 after rounding; a nil *Rect passed to Screenshot or SetRegion means
// "full primary display".
type Rect struct {
	X, Y, Width, Height float64
}

// Rounded returns the region with every field truncated to an integer,
// the representation every backend actually captures in.
func (r Rect) Rounded() (x, y, w, h int) {
	return int(r.X), int(r.Y), int(r.Width), int(r.Height)
}

// PixelFormat identifies the channel layout of an ImageData's Pix buffer.
type PixelFormat int

const (
	// FormatBGRA8 is 4 bytes/pixel, blue-green-red-alpha order — the
	// layout every platform backend in this package produces natively.
	FormatBGRA8 PixelFormat = iota
	// FormatRGB8 is 3 bytes/pixel, red-green-blue order.
	FormatRGB8
)

// BytesPerPixel returns the stride of one pixel in the given format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatRGB8:
		return 3
	default:
		return 4
	}
}

// ImageData is one captured image: a tightly packed pixel buffer (no row
// padding — backends are responsible for cropping out any source stride)
// plus its dimensions and pixel format.
type ImageData struct {
	Pix    []byte
	Width  int
	Height int
	Format PixelFormat
}

// Frame is one sample delivered to a frame handler: an image plus how long
// it should be displayed for, in milliseconds, before the next frame.
type Frame struct {
	Image      ImageData
	DurationMs float64
}

// FrameHandler receives frames from a running capturer.
type FrameHandler func(Frame)

// Config configures a Capturer before Begin is called.
type Config struct {
	// Region to capture. Nil means the full primary display.
	Region *Rect
	// FPS is the target capture rate for the continuous loop. Values
	// above 60 are capped at 60; zero or negative means 10.
	FPS int
	// DisplayID selects a display in multi-monitor setups. 0 is primary.
	DisplayID uint32
}

// Capturer is the platform capture surface: a synchronous one-shot
// Screenshot, and a continuous Begin/End loop that delivers frames to a
// registered handler.
type Capturer interface {
	// Screenshot captures a single frame synchronously. rect == nil means
	// the full primary display. Returns a freshly allocated, tightly
	// packed BGRA8 buffer.
	Screenshot(rect *Rect) (ImageData, error)

	// Begin starts the continuous capture loop and blocks the calling
	// goroutine until End is called or the backend hits a fatal error.
	Begin() error

	// End stops a running capture loop. Calling End when not running is
	// a no-op that returns nil.
	End() error

	// SetRegion updates the capture region. Must be called before Begin.
	SetRegion(rect *Rect)

	// SetFrameHandler registers the callback invoked for every frame
	// produced by the continuous capture loop. Must be called before
	// Begin.
	SetFrameHandler(h FrameHandler)
}

// NewCapturer builds the platform-appropriate Capturer for cfg.
func NewCapturer(cfg Config) (Capturer, error) {
	return newPlatformCapturer(cfg)
}

// baseCapturer holds the state and bookkeeping common to every backend:
// region/handler mutation guarded by a mutex, and a running flag so End is
// idempotent per spec. Backends embed this and implement their own
// one-shot capture and call beginLoop/endLoop.
type baseCapturer struct {
	mu      sync.Mutex
	cfg     Config
	region  *Rect
	handler FrameHandler

	running  bool
	stopCh   chan struct{}
	droppedN uint64
}

func newBaseCapturer(cfg Config) *baseCapturer {
	return &baseCapturer{cfg: cfg, region: cfg.Region}
}

func (b *baseCapturer) SetRegion(rect *Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.region = rect
}

func (b *baseCapturer) SetFrameHandler(h FrameHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = h
}

func (b *baseCapturer) currentRegion() *Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.region
}

func (b *baseCapturer) currentHandler() FrameHandler {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handler
}

// beginLoop drives the ticker-based capture loop shared by every real
// backend: poll oneShot at cfg.FPS, deliver frames via the registered
// handler, bump droppedN (without aborting) on a nil sample. Returns when
// stopCh closes or oneShot returns a fatal error.
func (b *baseCapturer) beginLoop(oneShot func(*Rect) (ImageData, error)) error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return fmt.Errorf("%w: capturer already running", jiferr.ErrCaptureBackendFailed)
	}
	if b.handler == nil {
		b.mu.Unlock()
		return fmt.Errorf("%w: Begin called with no frame handler set", jiferr.ErrCaptureBackendFailed)
	}
	fps := b.cfg.FPS
	if fps <= 0 {
		fps = 10
	}
	if fps > 60 {
		fps = 60 // minimum frame interval of 1/60 s
	}
	b.running = true
	b.stopCh = make(chan struct{})
	stopCh := b.stopCh
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stopCh:
			return nil
		case now := <-ticker.C:
			rect := b.currentRegion()
			img, err := oneShot(rect)
			if err != nil {
				return fmt.Errorf("%w: %v", jiferr.ErrCaptureBackendFailed, err)
			}
			if img.Pix == nil {
				b.mu.Lock()
				b.droppedN++
				b.mu.Unlock()
				continue
			}
			durMs := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			if h := b.currentHandler(); h != nil {
				h(Frame{Image: img, DurationMs: durMs})
			}
		}
	}
}

// endLoop stops a running beginLoop; a no-op, returning nil, when not
// running — matching the idempotent End() contract.
func (b *baseCapturer) endLoop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running || b.stopCh == nil {
		return nil
	}
	close(b.stopCh)
	b.stopCh = nil
	return nil
}

// DroppedFrames reports how many samples the continuous loop discarded
// because the backend returned a nil image instead of a fatal error.
func (b *baseCapturer) DroppedFrames() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.droppedN
}

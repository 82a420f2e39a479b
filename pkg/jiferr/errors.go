// Package jiferr defines the sentinel error values shared across jif's
// capture, quantize, dither, encoder, and orchestrator packages.
package jiferr

import "errors"

var (
	// ErrPlatformUnsupported is returned by NewCapturer/NewSelector on an
	// OS with no concrete backend.
	ErrPlatformUnsupported = errors.New("jif: platform not supported")

	// ErrCaptureInitFailed is returned when a backend fails to initialize
	// before any frame has been produced.
	ErrCaptureInitFailed = errors.New("jif: capture init failed")

	// ErrCaptureBackendFailed wraps a backend-reported message; use
	// fmt.Errorf("%w: %s", ErrCaptureBackendFailed, msg) to attach detail.
	ErrCaptureBackendFailed = errors.New("jif: capture backend failed")

	// ErrInvalidConfig is returned for invalid Rect, Config, or GifConfig
	// values caught before any work begins.
	ErrInvalidConfig = errors.New("jif: invalid config")

	// ErrQuantizerInvalidInput is returned for malformed quantizer input
	// (bad buffer length, non-positive dimensions). A K out of range is
	// reported as ErrInvalidConfig.
	ErrQuantizerInvalidInput = errors.New("jif: invalid quantizer input")

	ErrGifOpenFailed    = errors.New("jif: gif open failed")
	ErrGifWriteFailed   = errors.New("jif: gif write failed")
	ErrGifCloseFailed   = errors.New("jif: gif close failed")
	ErrGifAllocFailed   = errors.New("jif: gif alloc failed")
	ErrGifInvalidIndex  = errors.New("jif: gif invalid palette index")
	ErrGifUninitialized = errors.New("jif: gif assembler not initialized")

	// ErrQueueEmpty names the empty-queue condition. FrameQueue.Pop does
	// not return it; Pop reports an empty queue as ok == false.
	ErrQueueEmpty = errors.New("jif: queue empty")

	// ErrRegionNotFound is returned by the selector package when a named
	// region does not exist in the saved-region store.
	ErrRegionNotFound = errors.New("jif: region not found")

	// ErrSelectionCanceled is returned when an interactive region pick is
	// aborted by the user (e.g. pressing ESC).
	ErrSelectionCanceled = errors.New("jif: selection canceled")

	// ErrInternal marks a defensively-checked invariant violation that
	// should be unreachable in correct operation.
	ErrInternal = errors.New("jif: internal error")
)

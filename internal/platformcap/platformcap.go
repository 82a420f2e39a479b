// Package platformcap is the shared, OS-agnostic core behind every
// pkg/capture backend: it wraps vova616/screenshot's CaptureRect with the
// stride-to-tight BGRA conversion every backend needs, and dispatches
// "what are the primary display's bounds" to the build-tagged
// bounds_*.go files. It intentionally has no dependency on pkg/capture —
// every pkg/capture backend imports platformcap, not the other way
// around — so it deals in plain rectangles and tight BGRA8 buffers.
package platformcap

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
	"golang.org/x/image/draw"

	"github.com/halvorsen/jif/pkg/jiferr"
)

// Result is one captured image: a tightly packed BGRA8 buffer plus its
// dimensions.
type Result struct {
	Pix    []byte
	Width  int
	Height int
}

// CaptureOnce takes a single screenshot of the given region (x, y, w, h
// in screen coordinates) and returns a tightly packed BGRA8 image. With
// hasRegion false the coordinates are ignored and the full primary
// display is captured; with hasRegion true, w and h must both be >= 1.
func CaptureOnce(x, y, w, h int, hasRegion bool) (Result, error) {
	bounds, err := resolveBounds(x, y, w, h, hasRegion)
	if err != nil {
		return Result{}, err
	}

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", jiferr.ErrCaptureBackendFailed, err)
	}
	if img == nil {
		return Result{}, nil
	}

	return toTightBGRA(img), nil
}

func resolveBounds(x, y, w, h int, hasRegion bool) (image.Rectangle, error) {
	if !hasRegion {
		px, py, pw, ph, err := PrimaryDisplayBounds()
		if err != nil {
			return image.Rectangle{}, err
		}
		return image.Rect(px, py, px+pw, py+ph), nil
	}

	if w < 1 || h < 1 {
		return image.Rectangle{}, fmt.Errorf("%w: region %dx%d must be at least 1x1 after rounding", jiferr.ErrInvalidConfig, w, h)
	}
	return image.Rect(x, y, x+w, y+h), nil
}

// toTightBGRA converts the RGBA image vova616/screenshot returns
// (possibly row-padded) into a tightly packed BGRA8 Result.
func toTightBGRA(img *image.RGBA) Result {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := CropToTightBGRA(img.Pix, w, h, img.Stride)
	return Result{Pix: pix, Width: w, Height: h}
}

// CropToTightBGRA drops any source row padding (stride > w*4) and swaps
// R/B so the returned buffer is BGRA8 with no gaps between rows, per
// spec.md §4.1's stride-handling requirement. draw.Draw (from
// golang.org/x/image/draw, api-compatible with image/draw) performs the
// stride-aware copy into a freshly allocated tight buffer; the channel
// swap is then a single linear pass. Exported so every pkg/capture
// backend — and the synthetic test capturer, which simulates row
// padding — shares this exact code path.
func CropToTightBGRA(src []byte, w, h, stride int) []byte {
	if w <= 0 || h <= 0 {
		return nil
	}
	srcImg := &image.RGBA{Pix: src, Stride: stride, Rect: image.Rect(0, 0, w, h)}
	tight := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(tight, tight.Bounds(), srcImg, image.Point{}, draw.Src)

	out := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		off := i * 4
		out[off+0] = tight.Pix[off+2] // B
		out[off+1] = tight.Pix[off+1] // G
		out[off+2] = tight.Pix[off+0] // R
		out[off+3] = tight.Pix[off+3] // A
	}
	return out
}

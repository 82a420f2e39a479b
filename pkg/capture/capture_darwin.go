// +build darwin

package capture

import "github.com/halvorsen/jif/internal/platformcap"

// darwinCapturer is the macOS backend: real pixel capture runs through
// vova616/screenshot via internal/platformcap; this file only wires the
// platform dispatch the teacher's capture_darwin.go established.
type darwinCapturer struct {
	*baseCapturer
}

func newPlatformCapturer(cfg Config) (Capturer, error) {
	return &darwinCapturer{baseCapturer: newBaseCapturer(cfg)}, nil
}

func (c *darwinCapturer) Screenshot(rect *Rect) (ImageData, error) {
	return screenshotVia(rect)
}

func (c *darwinCapturer) Begin() error {
	return c.beginLoop(screenshotVia)
}

func (c *darwinCapturer) End() error {
	return c.endLoop()
}

func screenshotVia(rect *Rect) (ImageData, error) {
	hasRegion := rect != nil
	var x, y, w, h int
	if hasRegion {
		x, y, w, h = rect.Rounded()
	}
	res, err := platformcap.CaptureOnce(x, y, w, h, hasRegion)
	if err != nil {
		return ImageData{}, err
	}
	return ImageData{Pix: res.Pix, Width: res.Width, Height: res.Height, Format: FormatBGRA8}, nil
}

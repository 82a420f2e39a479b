// +build windows

package capture

import "github.com/halvorsen/jif/internal/platformcap"

// windowsCapturer backs screenshots with vova616/screenshot via
// internal/platformcap, which resolves display bounds through
// lxn/win.GetSystemMetrics.
type windowsCapturer struct {
	*baseCapturer
}

func newPlatformCapturer(cfg Config) (Capturer, error) {
	return &windowsCapturer{baseCapturer: newBaseCapturer(cfg)}, nil
}

func (c *windowsCapturer) Screenshot(rect *Rect) (ImageData, error) {
	return winScreenshotVia(rect)
}

func (c *windowsCapturer) Begin() error {
	return c.beginLoop(winScreenshotVia)
}

func (c *windowsCapturer) End() error {
	return c.endLoop()
}

func winScreenshotVia(rect *Rect) (ImageData, error) {
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

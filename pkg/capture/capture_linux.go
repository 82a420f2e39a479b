// +build linux

package capture

import "github.com/halvorsen/jif/internal/platformcap"

// linuxCapturer backs screenshots with vova616/screenshot via
// internal/platformcap, which resolves display bounds through an
// ephemeral BurntSushi/xgb connection to the X server.
type linuxCapturer struct {
	*baseCapturer
}

func newPlatformCapturer(cfg Config) (Capturer, error) {
	return &linuxCapturer{baseCapturer: newBaseCapturer(cfg)}, nil
}

func (c *linuxCapturer) Screenshot(rect *Rect) (ImageData, error) {
	return linuxScreenshotVia(rect)
}

func (c *linuxCapturer) Begin() error {
	return c.beginLoop(linuxScreenshotVia)
}

func (c *linuxCapturer) End() error {
	return c.endLoop()
}

func linuxScreenshotVia(rect *Rect) (ImageData, error) {
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

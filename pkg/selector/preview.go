package selector

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	"github.com/halvorsen/jif/pkg/capture"
)

// previewMaxWidth bounds the thumbnail written by PreviewRegion so a
// preview of a 4K region is still a quick terminal-friendly file.
const previewMaxWidth = 480

// PreviewRegion captures a saved region's current on-screen content and
// writes a downscaled PNG thumbnail to path, for the "regions -preview"
// CLI subcommand. It captures through a fresh Capturer rather than
// reusing any running session state.
func PreviewRegion(name, path string) error {
	region, err := LoadRegion(name)
	if err != nil {
		return err
	}

	c, err := capture.NewCapturer(capture.Config{Region: region})
	if err != nil {
		return fmt.Errorf("failed to open capturer: %w", err)
	}

	shot, err := c.Screenshot(region)
	if err != nil {
		return fmt.Errorf("failed to capture region %q: %w", name, err)
	}

	img := bgraToImage(shot)
	if shot.Width > previewMaxWidth {
		img = imaging.Resize(img, previewMaxWidth, 0, imaging.Lanczos)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer out.Close()

	if err := imaging.Encode(out, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// bgraToImage converts a tightly packed BGRA8 ImageData into an
// image.NRGBA, swapping the B/R channels imaging's codecs expect.
func bgraToImage(d capture.ImageData) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	n := d.Width * d.Height
	for i := 0; i < n; i++ {
		src := i * 4
		dst := i * 4
		img.Pix[dst], img.Pix[dst+1], img.Pix[dst+2], img.Pix[dst+3] =
			d.Pix[src+2], d.Pix[src+1], d.Pix[src], d.Pix[src+3]
	}
	return img
}

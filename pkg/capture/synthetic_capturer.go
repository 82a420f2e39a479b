package capture

import (
	"image/color"

	"github.com/halvorsen/jif/internal/platformcap"
)

// SyntheticCapturer is a deterministic, in-process Capturer used for
// tests and for exercising the pipeline without a real display. It is
// adapted from the teacher's MockCapturer: same Start/Stop-via-handler
// shape, generalized to the Screenshot/Begin/End surface and extended to
// optionally simulate row-padded source buffers, so the stride-crop step
// (internal/platformcap.CropToTightBGRA) runs under test the same way it
// would against a padded real backend.
type SyntheticCapturer struct {
	*baseCapturer

	// FrameColor is the solid color every generated frame is filled with.
	FrameColor color.RGBA
	// StridePadBytes, when > 0, is extra padding appended after each row
	// before the tight-BGRA crop step runs, simulating a backend whose
	// native buffer stride exceeds width*4.
	StridePadBytes int
}

// NewSyntheticCapturer builds a synthetic capturer with a mid-gray
// default frame color, matching the teacher's MockCapturer default.
func NewSyntheticCapturer(cfg Config) *SyntheticCapturer {
	return &SyntheticCapturer{
		baseCapturer: newBaseCapturer(cfg),
		FrameColor:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
	}
}

func (s *SyntheticCapturer) Screenshot(rect *Rect) (ImageData, error) {
	return s.generate(rect), nil
}

func (s *SyntheticCapturer) Begin() error {
	return s.beginLoop(func(rect *Rect) (ImageData, error) {
		return s.generate(rect), nil
	})
}

func (s *SyntheticCapturer) End() error {
	return s.endLoop()
}

// generate builds a tightly packed BGRA8 frame at rect's dimensions (or
// 640x480 when rect is nil), optionally padding each source row by
// StridePadBytes and running it back through the real stride-crop helper
// so the same code path a padded hardware backend exercises is tested
// here.
func (s *SyntheticCapturer) generate(rect *Rect) ImageData {
	w, h := 640, 480
	if rect != nil {
		_, _, rw, rh := rect.Rounded()
		if rw > 0 && rh > 0 {
			w, h = rw, rh
		}
	}

	stride := w*4 + s.StridePadBytes
	padded := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		rowOff := y * stride
		for x := 0; x < w; x++ {
			off := rowOff + x*4
			// RGBA source order, as vova616/screenshot delivers it;
			// CropToTightBGRA swaps it to BGRA.
			padded[off+0] = s.FrameColor.R
			padded[off+1] = s.FrameColor.G
			padded[off+2] = s.FrameColor.B
			padded[off+3] = s.FrameColor.A
		}
	}

	tight := platformcap.CropToTightBGRA(padded, w, h, stride)
	return ImageData{Pix: tight, Width: w, Height: h, Format: FormatBGRA8}
}

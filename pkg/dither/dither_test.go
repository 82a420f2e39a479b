package dither

import (
	"testing"

	"github.com/halvorsen/jif/pkg/quantize"
)

// bgraOf builds a tightly packed BGRA buffer from (r,g,b) triples in
// row-major order.
func bgraOf(colors [][3]uint8) []byte {
	buf := make([]byte, len(colors)*4)
	for i, c := range colors {
		off := i * 4
		buf[off], buf[off+1], buf[off+2], buf[off+3] = c[2], c[1], c[0], 255
	}
	return buf
}

// twoEntryPalette builds a quantize.Result whose palette is exactly
// {(0,0,0), (100,100,100)}, by quantizing a synthetic two-pixel image —
// this is spec.md §8 scenario 1's externally given palette, built via
// the real quantizer rather than hand-constructed, since quantize.Result
// exposes no public constructor.
func twoEntryPalette(t *testing.T) quantize.Result {
	t.Helper()
	img := bgraOf([][3]uint8{{0, 0, 0}, {100, 100, 100}})
	res, err := quantize.Quantize(img, 2, 1, 2)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(res.Palette) != 6 {
		t.Fatalf("expected a 2-entry palette, got %d bytes", len(res.Palette))
	}
	return res
}

// TestDitherWorkedExample reproduces spec.md §8 scenario 1: a 2x2 frame
// with a bright top row and black bottom row, dithered against a
// {(0,0,0),(100,100,100)} palette, expecting index buffer [1,0,0,0].
func TestDitherWorkedExample(t *testing.T) {
	res := twoEntryPalette(t)
	frame := bgraOf([][3]uint8{
		{60, 60, 60}, {60, 60, 60},
		{0, 0, 0}, {0, 0, 0},
	})

	got := Dither(frame, 2, 2, res)
	want := []byte{1, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dither() index buffer = %v, want %v", got, want)
		}
	}
}

func TestDitherPreservesBufferLength(t *testing.T) {
	w, h := 10, 7
	colors := make([][3]uint8, w*h)
	for i := range colors {
		colors[i] = [3]uint8{uint8(i * 3), uint8(i * 5), uint8(i * 7)}
	}
	frame := bgraOf(colors)

	res, err := quantize.Quantize(frame, w, h, 8)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	got := Dither(frame, w, h, res)
	if len(got) != w*h {
		t.Fatalf("Dither() output length = %d, want %d", len(got), w*h)
	}

	paletteLen := len(res.Palette) / 3
	for i, idx := range got {
		if int(idx) >= paletteLen {
			t.Fatalf("index %d at pixel %d exceeds palette length %d", idx, i, paletteLen)
		}
	}
}

func TestDitherDoesNotMutateInput(t *testing.T) {
	frame := bgraOf([][3]uint8{{10, 200, 30}, {250, 5, 80}, {0, 0, 0}, {255, 255, 255}})
	original := append([]byte(nil), frame...)

	res, err := quantize.Quantize(frame, 2, 2, 4)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	Dither(frame, 2, 2, res)

	for i := range frame {
		if frame[i] != original[i] {
			t.Fatalf("Dither() mutated input buffer at byte %d", i)
		}
	}
}

// TestDitherZeroErrorIsIdentity covers spec.md §8's "Ditherer with
// zero-error image (palette contains exact color) is identity" property:
// when every pixel is already an exact palette color, no error ever
// accumulates, so the output equals a direct nearest/exact-color index
// of the original frame.
func TestDitherZeroErrorIsIdentity(t *testing.T) {
	res := twoEntryPalette(t)
	frame := bgraOf([][3]uint8{
		{0, 0, 0}, {100, 100, 100},
		{100, 100, 100}, {0, 0, 0},
	})

	got := Dither(frame, 2, 2, res)
	want := []byte{0, 1, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dither() on exact-palette image = %v, want %v (identity)", got, want)
		}
	}
}

// Package dither implements Floyd-Steinberg error diffusion over a
// median-cut quantizer's palette, as described in spec.md §4.5.
package dither

import (
	"github.com/halvorsen/jif/pkg/quantize"
)

// weight is one Floyd-Steinberg error-diffusion target: an (dx, dy)
// offset from the current pixel and its numerator over a denominator of
// 16.
type weight struct {
	dx, dy int
	num    int
}

var weights = [4]weight{
	{dx: 1, dy: 0, num: 7},
	{dx: -1, dy: 1, num: 3},
	{dx: 0, dy: 1, num: 5},
	{dx: 1, dy: 1, num: 1},
}

// Dither applies Floyd-Steinberg error diffusion to a tightly packed
// BGRA frame against the palette produced by quantize.Quantize, and
// returns a W*H index buffer. The input buffer is never mutated; the
// error-accumulation working copy is internal.
func Dither(bgra []byte, w, h int, res quantize.Result) []byte {
	// errBuf holds accumulated signed error per channel per pixel,
	// applied on top of the original sample when that pixel is visited.
	errBuf := make([][3]int32, w*h)
	indices := make([]byte, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			off := i * 4
			origR := int32(bgra[off+2])
			origG := int32(bgra[off+1])
			origB := int32(bgra[off])

			r := clamp8(origR + errBuf[i][0])
			g := clamp8(origG + errBuf[i][1])
			b := clamp8(origB + errBuf[i][2])

			idx, ok := res.Table.PaletteIndexForCell(r, g, b)
			if !ok {
				// The diffused sample has drifted outside every 5-bit
				// cell the quantizer actually populated (dithering can
				// push a channel past the cells present in the source
				// frame). Fall back to the nearest palette entry by
				// Euclidean distance rather than defaulting to index 0,
				// so error accumulated near a palette boundary still
				// resolves to the closer color.
				idx = nearestPaletteIndex(res.Palette, r, g, b)
			}
			indices[i] = idx

			pr, pg, pb := palettedRGB(res.Palette, idx)
			er := int32(r) - int32(pr)
			eg := int32(g) - int32(pg)
			eb := int32(b) - int32(pb)

			for _, wt := range weights {
				nx, ny := x+wt.dx, y+wt.dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				errBuf[ni][0] += er * int32(wt.num) / 16
				errBuf[ni][1] += eg * int32(wt.num) / 16
				errBuf[ni][2] += eb * int32(wt.num) / 16
			}
		}
	}
	return indices
}

func nearestPaletteIndex(palette []byte, r, g, b uint8) byte {
	best := byte(0)
	bestDist := int64(-1)
	for i := 0; i*3+2 < len(palette); i++ {
		pr, pg, pb := palette[i*3], palette[i*3+1], palette[i*3+2]
		dr := int64(r) - int64(pr)
		dg := int64(g) - int64(pg)
		db := int64(b) - int64(pb)
		dist := dr*dr + dg*dg + db*db
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			best = byte(i)
		}
	}
	return best
}

func palettedRGB(palette []byte, idx byte) (uint8, uint8, uint8) {
	off := int(idx) * 3
	if off+2 >= len(palette) {
		return 0, 0, 0
	}
	return palette[off], palette[off+1], palette[off+2]
}

func clamp8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

package quantize

import (
	"testing"
)

// makeSolidBGRA builds a tightly packed w*h BGRA buffer of a single color.
func makeSolidBGRA(w, h int, r, g, b uint8) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		off := i * 4
		buf[off], buf[off+1], buf[off+2], buf[off+3] = b, g, r, 255
	}
	return buf
}

func TestQuantizeIndexBounds(t *testing.T) {
	w, h := 16, 16
	buf := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		off := i * 4
		buf[off] = byte(i * 7)
		buf[off+1] = byte(i * 13)
		buf[off+2] = byte(i * 29)
		buf[off+3] = 255
	}

	res, err := Quantize(buf, w, h, 16)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	paletteLen := len(res.Palette) / 3
	for i, idx := range res.Indices {
		if int(idx) >= paletteLen {
			t.Fatalf("index %d at pixel %d exceeds palette length %d", idx, i, paletteLen)
		}
	}
}

func TestQuantizeUniformImageSinglePartition(t *testing.T) {
	buf := makeSolidBGRA(8, 8, 120, 60, 30)
	res, err := Quantize(buf, 8, 8, 4)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(res.Palette)/3 != 1 {
		t.Fatalf("uniform image should produce 1 palette entry, got %d", len(res.Palette)/3)
	}
	for _, idx := range res.Indices {
		if idx != 0 {
			t.Fatalf("uniform image should index entirely to 0, got %d", idx)
		}
	}
}

func TestQuantizeKTwoColorImage(t *testing.T) {
	w, h := 4, 4
	buf := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		off := i * 4
		if i%2 == 0 {
			buf[off], buf[off+1], buf[off+2] = 0, 0, 0
		} else {
			buf[off], buf[off+1], buf[off+2] = 255, 255, 255
		}
		buf[off+3] = 255
	}

	res, err := Quantize(buf, w, h, 2)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(res.Palette)/3 != 2 {
		t.Fatalf("two-color image with K=2 should produce exactly 2 palette entries, got %d", len(res.Palette)/3)
	}

	seen := map[byte]bool{}
	for _, idx := range res.Indices {
		seen[idx] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected both palette indices to be used, saw %d distinct", len(seen))
	}
}

func TestQuantizeRejectsInvalidK(t *testing.T) {
	buf := makeSolidBGRA(2, 2, 1, 2, 3)
	for _, k := range []int{0, 1, 3, 257, 300} {
		if _, err := Quantize(buf, 2, 2, k); err == nil {
			t.Fatalf("Quantize() with k=%d should error", k)
		}
	}
}

func TestQuantizeRejectsBadBufferLength(t *testing.T) {
	buf := make([]byte, 10)
	if _, err := Quantize(buf, 4, 4, 4); err == nil {
		t.Fatal("Quantize() with mismatched buffer length should error")
	}
}

func TestQuantizeAtLeastKDistinctColorsReachesEquality(t *testing.T) {
	w, h := 16, 1
	buf := make([]byte, w*h*4)
	for i := 0; i < w; i++ {
		off := i * 4
		// Spread samples across enough 5-bit cells to guarantee >=4 distinct cells.
		buf[off], buf[off+1], buf[off+2] = byte(i*16), byte(255-i*16), byte(i * 8)
		buf[off+3] = 255
	}

	res, err := Quantize(buf, w, h, 4)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(res.Palette)/3 != 4 {
		t.Fatalf("expected exactly 4 palette entries when >=4 distinct cells present, got %d", len(res.Palette)/3)
	}
}

// TestPartitionSplitterWorkedExample exercises spec.md §8 scenario 2: a
// six-color table fed to the partition splitter with K=4. It checks the
// two properties the scenario specifies exactly: the widest initial
// channel is Red, and every resulting partition's bounding box contains
// every one of its member colors (the general per-partition invariant
// spec.md §8 also requires).
func TestPartitionSplitterWorkedExample(t *testing.T) {
	type rgb struct{ r, g, b uint8 }
	colors := []rgb{
		{200, 0, 0},
		{100, 1, 200},
		{80, 100, 0},
		{50, 200, 100},
		{0, 100, 22},
		{0, 55, 100},
	}

	w, h := len(colors), 1
	buf := make([]byte, w*h*4)
	for i, c := range colors {
		off := i * 4
		buf[off], buf[off+1], buf[off+2], buf[off+3] = c.b, c.g, c.r, 255
	}

	table := buildColorTable(buf, w, h)
	spaces := initialColorSpaces(table)
	if len(spaces) != 1 {
		t.Fatalf("expected a single initial ColorSpace, got %d", len(spaces))
	}
	if spaces[0].widestChannel != ChannelR {
		t.Fatalf("widest initial channel = %v, want ChannelR", spaces[0].widestChannel)
	}

	spaces = splitUntil(table, spaces, 4)
	if len(spaces) != 4 {
		t.Fatalf("expected 4 partitions after split, got %d", len(spaces))
	}

	var totalPixels uint32
	for _, cs := range spaces {
		var sumFreq uint32
		for i := cs.head; i != -1; i = table.colors[i].next {
			c := table.colors[i]
			if c.r < cs.rgbMin[0] || c.r > cs.rgbMax[0] ||
				c.g < cs.rgbMin[1] || c.g > cs.rgbMax[1] ||
				c.b < cs.rgbMin[2] || c.b > cs.rgbMax[2] {
				t.Fatalf("color (%d,%d,%d) outside partition bounding box min=%v max=%v", c.r, c.g, c.b, cs.rgbMin, cs.rgbMax)
			}
			sumFreq += c.freq
		}
		if sumFreq != cs.numPixels {
			t.Fatalf("partition numPixels=%d but summed frequency=%d", cs.numPixels, sumFreq)
		}
		totalPixels += cs.numPixels
	}
	if totalPixels != uint32(len(colors)) {
		t.Fatalf("total pixels across partitions = %d, want %d", totalPixels, len(colors))
	}
}

func TestColorTablePaletteLookup(t *testing.T) {
	buf := makeSolidBGRA(4, 4, 10, 20, 30)
	res, err := Quantize(buf, 4, 4, 2)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	idx, ok := res.Table.PaletteIndexForCell(10, 20, 30)
	if !ok {
		t.Fatal("expected populated cell for sampled color")
	}
	if int(idx)*3+2 >= len(res.Palette) {
		t.Fatalf("palette index %d out of range for palette length %d", idx, len(res.Palette))
	}
}

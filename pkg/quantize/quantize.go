// Package quantize implements median-cut color quantization over BGRA
// frames, reducing each frame to an N-entry RGB palette and a W*H index
// buffer, as described in spec.md §4.4. Nothing in the example pack
// implements median-cut; this package is built directly from the
// written algorithm and checked against its worked examples.
package quantize

import (
	"fmt"
	"sort"

	"github.com/halvorsen/jif/pkg/jiferr"
)

const (
	tableBits = 5
	tableSize = 1 << (tableBits * 3) // 32768
	channelShift = 8 - tableBits
)

// Channel identifies which of R, G, B a partition is widest along.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

// color holds one 5-bit-cell's representative sample plus its frequency
// and list linkage. Colors live in a flat arena (ColorTable.colors) and
// are threaded into ColorSpace partitions via index-based "next"
// pointers (next == -1 terminates the list), per spec.md §9's design
// note — this avoids the cyclic-ownership headaches of a real linked
// list in Go.
type color struct {
	r, g, b      uint8
	freq         uint32
	paletteIndex uint8
	next         int32
}

// ColorTable is the 32768-slot 5-bit color table built during
// quantization. It is retained after Quantize returns so a ditherer can
// reuse the same slot -> palette-index mapping (spec.md §4.5 step 1).
type ColorTable struct {
	colors  []color // arena; colors[cellIndex] when slot has frequency>0
	present []bool
}

// CellIndex maps an 8-bit RGB sample to its 5-bit table slot.
func CellIndex(r, g, b uint8) int {
	r5 := int(r) >> channelShift
	g5 := int(g) >> channelShift
	b5 := int(b) >> channelShift
	return (r5 << (tableBits * 2)) | (g5 << tableBits) | b5
}

// PaletteIndexForCell returns the palette index assigned to the 5-bit
// cell the sample falls in, and whether that cell was ever populated
// during quantization.
func (t *ColorTable) PaletteIndexForCell(r, g, b uint8) (uint8, bool) {
	idx := CellIndex(r, g, b)
	if idx < 0 || idx >= len(t.present) || !t.present[idx] {
		return 0, false
	}
	return t.colors[idx].paletteIndex, true
}

// RGBAt returns the cell's full-resolution representative color — the
// last 8-bit sample that mapped into this 5-bit cell during the table
// build (spec.md §4.4 step 1: "later samples overwrite earlier").
func (t *ColorTable) RGBAt(r, g, b uint8) (uint8, uint8, uint8, bool) {
	idx := CellIndex(r, g, b)
	if idx < 0 || idx >= len(t.present) || !t.present[idx] {
		return 0, 0, 0, false
	}
	c := t.colors[idx]
	return c.r, c.g, c.b, true
}

// colorSpace is one median-cut partition: a linked list (by arena index)
// of colors plus its pixel-count and bounding box.
type colorSpace struct {
	head          int32
	numColors     uint32
	numPixels     uint32
	rgbMin        [3]uint8
	rgbMax        [3]uint8
	widestChannel Channel
	widestRange   uint8
}

// Result is the output of Quantize: an RGB8 palette and a parallel
// index buffer, one byte per pixel.
type Result struct {
	Palette []byte // 3*K bytes, RGB8
	Indices []byte // W*H bytes
	Table   *ColorTable
}

// Quantize reduces a tightly-packed BGRA frame to at most k palette
// entries. k must be a power of two in [2, 256]. w and h must be
// positive and w*h*4 must equal len(bgra).
func Quantize(bgra []byte, w, h, k int) (Result, error) {
	if w <= 0 || h <= 0 {
		return Result{}, fmt.Errorf("%w: non-positive dimensions %dx%d", jiferr.ErrQuantizerInvalidInput, w, h)
	}
	if len(bgra) != w*h*4 {
		return Result{}, fmt.Errorf("%w: buffer length %d, want %d", jiferr.ErrQuantizerInvalidInput, len(bgra), w*h*4)
	}
	if k < 2 || k > 256 || k&(k-1) != 0 {
		return Result{}, fmt.Errorf("%w: k=%d must be a power of two in [2,256]", jiferr.ErrInvalidConfig, k)
	}

	table := buildColorTable(bgra, w, h)

	spaces := initialColorSpaces(table)
	spaces = splitUntil(table, spaces, k)

	palette := emitPalette(table, spaces)
	indices := emitIndices(table, bgra, w, h)

	return Result{Palette: palette, Indices: indices, Table: table}, nil
}

// buildColorTable performs spec.md §4.4 step 1: a single O(W*H) pass
// that increments each 5-bit cell's frequency and overwrites its RGB
// sample with the most recent full-resolution pixel seen.
func buildColorTable(bgra []byte, w, h int) *ColorTable {
	t := &ColorTable{
		colors:  make([]color, tableSize),
		present: make([]bool, tableSize),
	}
	n := w * h
	for i := 0; i < n; i++ {
		off := i * 4
		b, g, r := bgra[off], bgra[off+1], bgra[off+2]
		idx := CellIndex(r, g, b)
		c := &t.colors[idx]
		c.r, c.g, c.b = r, g, b
		if c.freq < ^uint32(0) {
			c.freq++
		}
		t.present[idx] = true
	}
	return t
}

// initialColorSpaces builds spec.md §4.4 step 2: the active-color chain
// wrapped in one ColorSpace covering every populated cell.
func initialColorSpaces(t *ColorTable) []*colorSpace {
	cs := &colorSpace{head: -1}
	var tail int32 = -1
	var numPixels uint32
	var numColors uint32

	for idx := 0; idx < len(t.present); idx++ {
		if !t.present[idx] {
			continue
		}
		t.colors[idx].next = -1
		if cs.head == -1 {
			cs.head = int32(idx)
		} else {
			t.colors[tail].next = int32(idx)
		}
		tail = int32(idx)
		numPixels += t.colors[idx].freq
		numColors++
	}
	cs.numPixels = numPixels
	cs.numColors = numColors
	recomputeBounds(t, cs)

	if cs.head == -1 {
		return nil
	}
	return []*colorSpace{cs}
}

// recomputeBounds walks a partition's color list to recompute its
// bounding box and widest channel, per spec.md §4.4 steps 3-4.
func recomputeBounds(t *ColorTable, cs *colorSpace) {
	if cs.head == -1 {
		cs.rgbMin = [3]uint8{}
		cs.rgbMax = [3]uint8{}
		cs.widestChannel = ChannelR
		cs.widestRange = 0
		return
	}

	min := [3]uint8{255, 255, 255}
	max := [3]uint8{0, 0, 0}
	for i := cs.head; i != -1; i = t.colors[i].next {
		c := &t.colors[i]
		rgb := [3]uint8{c.r, c.g, c.b}
		for ch := 0; ch < 3; ch++ {
			if rgb[ch] < min[ch] {
				min[ch] = rgb[ch]
			}
			if rgb[ch] > max[ch] {
				max[ch] = rgb[ch]
			}
		}
	}
	cs.rgbMin, cs.rgbMax = min, max

	// Widest channel: argmax(max-min), tie-break R > G > B.
	ranges := [3]int{int(max[0]) - int(min[0]), int(max[1]) - int(min[1]), int(max[2]) - int(min[2])}
	best := 0
	for ch := 1; ch < 3; ch++ {
		if ranges[ch] > ranges[best] {
			best = ch
		}
	}
	cs.widestChannel = Channel(best)
	cs.widestRange = uint8(ranges[best])
}

// splitUntil runs spec.md §4.4 step 3's partition split loop until k
// partitions exist or no splittable partition remains.
func splitUntil(t *ColorTable, spaces []*colorSpace, k int) []*colorSpace {
	for len(spaces) < k {
		splitIdx := selectWidestSplittable(spaces)
		if splitIdx == -1 {
			break
		}
		a, b := split(t, spaces[splitIdx])
		spaces[splitIdx] = a
		spaces = append(spaces, b)
	}
	return spaces
}

// selectWidestSplittable picks the partition with the largest
// widestRange among those with more than one color, tie-broken by
// lowest index.
func selectWidestSplittable(spaces []*colorSpace) int {
	best := -1
	for i, cs := range spaces {
		if cs.numColors <= 1 {
			continue
		}
		if best == -1 || cs.widestRange > spaces[best].widestRange {
			best = i
		}
	}
	return best
}

// split implements spec.md §4.4 step 3's sort-and-median-split: sort the
// partition's colors by its widest channel, walk accumulating frequency
// until the running sum reaches half of numPixels, and split
// immediately after the crossing color.
func split(t *ColorTable, cs *colorSpace) (*colorSpace, *colorSpace) {
	members := make([]int32, 0, cs.numColors)
	for i := cs.head; i != -1; i = t.colors[i].next {
		members = append(members, i)
	}

	ch := int(cs.widestChannel)
	sort.Slice(members, func(i, j int) bool {
		return channelOf(&t.colors[members[i]], ch) < channelOf(&t.colors[members[j]], ch)
	})

	half := cs.numPixels / 2
	var running uint32
	splitAt := len(members) - 1
	for i, idx := range members {
		running += t.colors[idx].freq
		if running >= half {
			splitAt = i
			break
		}
	}
	if splitAt >= len(members)-1 {
		splitAt = len(members) - 2 // guarantee the right half stays non-empty
	}

	left := relink(t, members[:splitAt+1])
	right := relink(t, members[splitAt+1:])

	recomputeBounds(t, left)
	recomputeBounds(t, right)
	return left, right
}

func channelOf(c *color, ch int) uint8 {
	switch ch {
	case 0:
		return c.r
	case 1:
		return c.g
	default:
		return c.b
	}
}

// relink rebuilds a colorSpace's linked list from a slice of arena
// indices, computing its pixel count as it goes.
func relink(t *ColorTable, members []int32) *colorSpace {
	cs := &colorSpace{head: -1}
	if len(members) == 0 {
		return cs
	}
	cs.head = members[0]
	var pixels uint32
	for i, idx := range members {
		pixels += t.colors[idx].freq
		if i+1 < len(members) {
			t.colors[idx].next = members[i+1]
		} else {
			t.colors[idx].next = -1
		}
	}
	cs.numColors = uint32(len(members))
	cs.numPixels = pixels
	return cs
}

// emitPalette computes spec.md §4.4 step 4: the frequency-weighted mean
// color of each final partition, rounded to nearest, and stamps every
// member color's paletteIndex with the partition's ordinal.
func emitPalette(t *ColorTable, spaces []*colorSpace) []byte {
	palette := make([]byte, 0, len(spaces)*3)
	for ord, cs := range spaces {
		var sumR, sumG, sumB uint64
		var total uint64
		for i := cs.head; i != -1; i = t.colors[i].next {
			c := &t.colors[i]
			sumR += uint64(c.r) * uint64(c.freq)
			sumG += uint64(c.g) * uint64(c.freq)
			sumB += uint64(c.b) * uint64(c.freq)
			total += uint64(c.freq)
			c.paletteIndex = uint8(ord)
		}
		if total == 0 {
			total = 1
		}
		palette = append(palette,
			byte(roundDiv(sumR, total)),
			byte(roundDiv(sumG, total)),
			byte(roundDiv(sumB, total)),
		)
	}
	return palette
}

func roundDiv(sum, total uint64) uint64 {
	return (sum + total/2) / total
}

// emitIndices performs spec.md §4.4 step 5: a single O(W*H) pass
// mapping every pixel to its 5-bit cell's palette index.
func emitIndices(t *ColorTable, bgra []byte, w, h int) []byte {
	n := w * h
	indices := make([]byte, n)
	for i := 0; i < n; i++ {
		off := i * 4
		b, g, r := bgra[off], bgra[off+1], bgra[off+2]
		idx, ok := t.PaletteIndexForCell(r, g, b)
		if ok {
			indices[i] = idx
		}
	}
	return indices
}

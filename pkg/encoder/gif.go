// Package encoder assembles quantized, optionally dithered BGRA frames
// into an animated GIF, via the same stdlib image/gif writer the teacher
// used directly.
package encoder

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"

	"github.com/halvorsen/jif/pkg/dither"
	"github.com/halvorsen/jif/pkg/jiferr"
	"github.com/halvorsen/jif/pkg/quantize"
)

// state is the Assembler's Idle -> Open -> Closed lifecycle.
type state int

const (
	stateIdle state = iota
	stateOpen
	stateClosed
)

// GifConfig configures a new Assembler.
type GifConfig struct {
	Width, Height   int
	Path            string
	UseDithering    bool
	UseLocalPalette bool
	// PaletteSize is the max palette entries per frame (local mode) or
	// for the whole animation (global mode). Defaults to 256.
	PaletteSize int
}

type bufferedFrame struct {
	bgra     []byte
	delayCs  int
	indices  []byte // only used once a palette has been assigned
}

// Assembler implements the Idle -> Open -> Closed GIF encoding state
// machine: Init moves Idle->Open, AddFrame quantizes (and optionally
// dithers) each incoming frame in local-palette mode or buffers its raw
// pixels in global-palette mode, and Close performs the actual
// image/gif.EncodeAll write and moves Open->Closed. Close is idempotent:
// a second call is a no-op returning nil.
type Assembler struct {
	state state
	cfg   GifConfig

	// local-palette mode: frames are fully quantized/dithered as they
	// arrive and only the resulting *image.Paletted is retained.
	paletted []*image.Paletted
	delays   []int

	// global-palette mode: raw pixel data is retained until Close, when
	// one palette is built over every frame's pixels (spec.md §4.6 Open
	// Question (b), decided as a strict two-pass).
	buffered []bufferedFrame
}

// NewAssembler constructs an Assembler in the Idle state. Init must be
// called before AddFrame.
func NewAssembler() *Assembler {
	return &Assembler{state: stateIdle}
}

// Init moves the Assembler from Idle to Open, validating cfg.
func (a *Assembler) Init(cfg GifConfig) error {
	if a.state != stateIdle {
		return fmt.Errorf("%w: Init called outside Idle state", jiferr.ErrGifUninitialized)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: non-positive dimensions %dx%d", jiferr.ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.Path == "" {
		return fmt.Errorf("%w: empty output path", jiferr.ErrInvalidConfig)
	}
	if cfg.PaletteSize <= 0 {
		cfg.PaletteSize = 256
	}
	a.cfg = cfg
	a.state = stateOpen
	return nil
}

// AddFrame buffers one BGRA frame for the eventual GIF write. In
// local-palette mode it is quantized (and, if configured, dithered)
// here; in global-palette mode a copy of the raw pixels is kept and
// quantized at Close. bgra must be tightly packed
// cfg.Width*cfg.Height*4 bytes. durationMs is converted to GIF
// centiseconds with round-half-to-even (spec.md §10(c)).
func (a *Assembler) AddFrame(bgra []byte, durationMs float64) error {
	if a.state != stateOpen {
		return fmt.Errorf("%w: AddFrame called outside Open state", jiferr.ErrGifUninitialized)
	}
	if len(bgra) != a.cfg.Width*a.cfg.Height*4 {
		return fmt.Errorf("%w: frame buffer length %d, want %d", jiferr.ErrQuantizerInvalidInput, len(bgra), a.cfg.Width*a.cfg.Height*4)
	}

	delayCs := msToCentiseconds(durationMs)

	if a.cfg.UseLocalPalette {
		img, err := a.quantizeFrame(bgra)
		if err != nil {
			return err
		}
		a.paletted = append(a.paletted, img)
		a.delays = append(a.delays, delayCs)
		return nil
	}

	frameCopy := append([]byte(nil), bgra...)
	a.buffered = append(a.buffered, bufferedFrame{bgra: frameCopy, delayCs: delayCs})
	return nil
}

// quantizeFrame runs the median-cut quantizer (and ditherer, if
// configured) over one frame and returns the resulting paletted image.
func (a *Assembler) quantizeFrame(bgra []byte) (*image.Paletted, error) {
	res, err := quantize.Quantize(bgra, a.cfg.Width, a.cfg.Height, a.cfg.PaletteSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jiferr.ErrGifAllocFailed, err)
	}

	indices := res.Indices
	if a.cfg.UseDithering {
		indices = dither.Dither(bgra, a.cfg.Width, a.cfg.Height, res)
	}

	return buildPaletted(indices, res.Palette, a.cfg.Width, a.cfg.Height), nil
}

func buildPaletted(indices []byte, palette []byte, w, h int) *image.Paletted {
	pal := make(color.Palette, len(palette)/3)
	for i := range pal {
		pal[i] = color.RGBA{R: palette[i*3], G: palette[i*3+1], B: palette[i*3+2], A: 255}
	}

	img := image.NewPaletted(image.Rect(0, 0, w, h), pal)
	copy(img.Pix, indices)
	return img
}

// Close performs the actual gif.EncodeAll write and moves the Assembler
// into the Closed state. Idempotent: a second call returns nil without
// writing again, per spec.md §8's round-trip property.
func (a *Assembler) Close() error {
	if a.state == stateClosed {
		return nil
	}
	if a.state != stateOpen {
		return fmt.Errorf("%w: Close called outside Open state", jiferr.ErrGifUninitialized)
	}
	a.state = stateClosed

	if !a.cfg.UseLocalPalette {
		if err := a.resolveGlobalPalette(); err != nil {
			return err
		}
	}

	if len(a.paletted) == 0 {
		return fmt.Errorf("%w: no frames were added", jiferr.ErrGifInvalidIndex)
	}

	out, err := os.Create(a.cfg.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", jiferr.ErrGifOpenFailed, err)
	}
	defer out.Close()

	anim := &gif.GIF{
		Image:     a.paletted,
		Delay:     a.delays,
		LoopCount: 0,
	}
	if !a.cfg.UseLocalPalette {
		// Every frame shares one palette: write it once as the GIF's
		// global color table so frames carry no local table.
		anim.Config = image.Config{ColorModel: a.paletted[0].Palette, Width: a.cfg.Width, Height: a.cfg.Height}
	}
	disposal := make([]byte, len(a.paletted))
	for i := range disposal {
		disposal[i] = gif.DisposalNone
	}
	anim.Disposal = disposal

	if err := gif.EncodeAll(out, anim); err != nil {
		return fmt.Errorf("%w: %v", jiferr.ErrGifWriteFailed, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", jiferr.ErrGifCloseFailed, err)
	}
	// out.Close was already deferred; calling it twice is safe (second
	// call just returns an already-closed error) but we want Close's own
	// error path above to take precedence, so swallow the defer's result.
	return nil
}

// resolveGlobalPalette implements spec.md §4.6's global-palette Open
// Question decision: a strict two-pass build. It quantizes the
// concatenation of every buffered frame's pixels into one palette, then
// re-quantizes (and optionally dithers) each frame's own pixels against
// that single ColorTable so every frame shares identical palette
// indices.
func (a *Assembler) resolveGlobalPalette() error {
	if len(a.buffered) == 0 {
		return nil
	}

	n := len(a.buffered)
	w, h := a.cfg.Width, a.cfg.Height
	combined := make([]byte, 0, w*h*4*n)
	for _, f := range a.buffered {
		combined = append(combined, f.bgra...)
	}

	res, err := quantize.Quantize(combined, w, h*n, a.cfg.PaletteSize)
	if err != nil {
		return fmt.Errorf("%w: %v", jiferr.ErrGifAllocFailed, err)
	}

	for _, f := range a.buffered {
		var indices []byte
		if a.cfg.UseDithering {
			indices = dither.Dither(f.bgra, w, h, res)
		} else {
			indices = make([]byte, w*h)
			for i := 0; i < w*h; i++ {
				off := i * 4
				b, g, r := f.bgra[off], f.bgra[off+1], f.bgra[off+2]
				idx, ok := res.Table.PaletteIndexForCell(r, g, b)
				if ok {
					indices[i] = idx
				}
			}
		}
		a.paletted = append(a.paletted, buildPaletted(indices, res.Palette, w, h))
		a.delays = append(a.delays, f.delayCs)
	}
	return nil
}

// msToCentiseconds converts a millisecond duration to GIF centiseconds
// (hundredths of a second) using round-half-to-even, per spec.md §10(c).
func msToCentiseconds(ms float64) int {
	cs := math.RoundToEven(ms / 10)
	if cs < 1 {
		return 1
	}
	return int(cs)
}

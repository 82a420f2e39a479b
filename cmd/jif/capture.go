package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"

	"github.com/halvorsen/jif/internal/appconfig"
	"github.com/halvorsen/jif/internal/logging"
	"github.com/halvorsen/jif/pkg/capture"
	"github.com/halvorsen/jif/pkg/encoder"
	"github.com/halvorsen/jif/pkg/orchestrator"
	"github.com/halvorsen/jif/pkg/selector"
)

// handleCapture runs the default capture+encode pipeline: parse flags,
// resolve a region (explicit or saved), run the orchestrator for the
// requested duration, and report the result. Exit codes follow the
// resolution/duration/coordinate/failure taxonomy spec.md §6 mandates.
func handleCapture(args []string) int {
	fs := flag.NewFlagSet("jif", flag.ContinueOnError)
	resStr := fs.String("r", "", "Capture resolution WxH, e.g. 800x600")
	durSec := fs.Float64("d", 0, "Capture duration in seconds")
	output := fs.String("o", "", "Output GIF path")
	coordStr := fs.String("c", "0x0", "Top-left capture coordinate XxY")
	regionName := fs.String("region", "", "Use a saved region by name")
	verbose := fs.Bool("v", false, "Enable verbose structured logging")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return exitBadResolution
	}

	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		return exitCaptureFailed
	}

	var rect *capture.Rect
	if *regionName != "" {
		rect, err = selector.LoadRegion(*regionName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitBadResolution
		}
	} else {
		if *resStr == "" {
			fmt.Fprintln(os.Stderr, "error: -r WxH is required unless -region is used")
			return exitBadResolution
		}
		w, h, err := parseDims(*resStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid -r value %q: %v\n", *resStr, err)
			return exitBadResolution
		}

		x, y, err := parseDims(*coordStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid -c value %q: %v\n", *coordStr, err)
			return exitBadCoordinate
		}
		rect = &capture.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}
	}

	if *durSec <= 0 {
		fmt.Fprintln(os.Stderr, "error: -d SECONDS must be a positive duration")
		return exitBadDuration
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = defaultOutputPath()
	}

	level := levelFor(*verbose)
	logger := logging.New(level)

	capturer, err := capture.NewCapturer(capture.Config{Region: rect, FPS: cfg.FPS})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCaptureFailed
	}

	_, _, w, h := rect.Rounded()
	runCfg := orchestrator.Config{
		Capturer: capturer,
		Region:   rect,
		Duration: time.Duration(*durSec * float64(time.Second)),
		GifConfig: encoder.GifConfig{
			Width:           w,
			Height:          h,
			Path:            outputPath,
			UseDithering:    cfg.UseDithering,
			UseLocalPalette: cfg.UseLocalPalette,
			PaletteSize:     cfg.PaletteSize,
		},
		Logger: logger,
	}

	printCaptureBanner(rect, *durSec, outputPath)

	start := time.Now()
	if err := orchestrator.Run(context.Background(), runCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: capture failed: %v\n", err)
		return exitCaptureFailed
	}
	elapsed := time.Since(start)

	printCaptureResult(outputPath, elapsed)
	return exitOK
}

// parseDims parses a "NxM" pair such as "800x600" or "100x200".
func parseDims(s string) (a, b int, err error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected format NxM")
	}
	a, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid first value: %w", err)
	}
	b, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid second value: %w", err)
	}
	return a, b, nil
}

// defaultOutputPath generates a timestamped filename when -o is omitted,
// e.g. jif-20260731-140501.gif.
func defaultOutputPath() string {
	return strftime.Format("jif-%Y%m%d-%H%M%S.gif", time.Now())
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func printCaptureBanner(rect *capture.Rect, durSec float64, outputPath string) {
	x, y, w, h := rect.Rounded()
	glyph := ""
	if isatty.IsTerminal(os.Stdout.Fd()) {
		glyph = "● " // a filled circle, terminal only
	}
	dur := time.Duration(durSec * float64(time.Second))
	fmt.Printf("%scapturing %dx%d at (%d,%d) for %s -> %s\n", glyph, w, h, x, y, dur, outputPath)
}

func printCaptureResult(outputPath string, elapsed time.Duration) {
	info, err := os.Stat(outputPath)
	if err != nil {
		fmt.Printf("wrote %s in %s\n", outputPath, elapsed.Round(time.Millisecond))
		return
	}
	fmt.Printf("wrote %s (%s) in %s\n", outputPath, humanize.Bytes(uint64(info.Size())), elapsed.Round(time.Millisecond))
}

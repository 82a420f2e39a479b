// +build darwin

package selector

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/halvorsen/jif/pkg/capture"
	"github.com/halvorsen/jif/pkg/jiferr"
)

// macOSSelector drives the built-in screencapture tool for interactive
// region selection, via an injectable SystemCommand so tests never shell
// out.
type macOSSelector struct {
	config Config
	cmd    SystemCommand
}

// newPlatformSelector creates a macOS selector backed by the real shell.
func newPlatformSelector() (Selector, error) {
	return NewMacOSSelectorWithExecutor(NewRealSystemCommand()), nil
}

// NewMacOSSelectorWithExecutor builds a macOS selector around an injected
// SystemCommand, letting tests exercise the parsing and saving logic
// without a real screencapture/defaults invocation.
func NewMacOSSelectorWithExecutor(cmd SystemCommand) Selector {
	return &macOSSelector{
		config: DefaultConfig(),
		cmd:    cmd,
	}
}

// Select launches an interactive region selector.
func (s *macOSSelector) Select() (*capture.Rect, error) {
	fmt.Println("Select a screen region...")
	fmt.Println("  - Click and drag to select the capture area")
	fmt.Println("  - Press ESC to cancel")

	tmpFile := filepath.Join(os.TempDir(), "jif-selection-tmp.png")
	defer os.Remove(tmpFile)

	// -i: interactive mode (click and drag), -x: no shutter sound.
	if err := s.cmd.RunInteractive(ScreenCaptureCmd, "-i", "-x", tmpFile); err != nil {
		return nil, fmt.Errorf("%w: %v", jiferr.ErrSelectionCanceled, err)
	}

	region, err := s.readLastSelection()
	if err != nil {
		return nil, fmt.Errorf("failed to read selection coordinates: %w", err)
	}

	x, y, w, h := region.Rounded()
	fmt.Printf("selected region: %dx%d at (%d,%d)\n", w, h, x, y)
	return region, nil
}

// SelectWithName selects a region and saves it under name.
func (s *macOSSelector) SelectWithName(name string) (*capture.Rect, error) {
	region, err := s.Select()
	if err != nil {
		return nil, err
	}
	if err := SaveRegion(name, region); err != nil {
		return nil, fmt.Errorf("failed to save region: %w", err)
	}
	fmt.Printf("saved region %q\n", name)
	return region, nil
}

// readLastSelection parses macOS's screencapture preferences, which record
// the bounds of the most recent interactive selection as a property-list
// fragment: "{ Height = 480; Width = 640; X = 100; Y = 200; }".
func (s *macOSSelector) readLastSelection() (*capture.Rect, error) {
	out, err := s.cmd.Run(DefaultsCmd, "read", "com.apple.screencapture", "last-selection")
	if err != nil {
		return nil, fmt.Errorf("failed to read last-selection: %w", err)
	}

	var x, y, w, h float64
	haveW, haveH := false, false

	for _, line := range strings.Split(string(bytes.TrimSpace(out)), "\n") {
		line = strings.TrimSpace(line)
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		valueStr := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(parts[1]), ";"))

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			continue
		}

		switch key {
		case "X":
			x = value
		case "Y":
			y = value
		case "Width":
			w, haveW = value, true
		case "Height":
			h, haveH = value, true
		}
	}

	if !haveW || !haveH || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid region dimensions: %gx%g", w, h)
	}

	return &capture.Rect{X: x, Y: y, Width: w, Height: h}, nil
}

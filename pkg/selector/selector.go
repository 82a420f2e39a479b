// Package selector persists named capture regions and launches
// platform-specific interactive region pickers.
package selector

import (
	"fmt"

	"github.com/halvorsen/jif/pkg/capture"
)

// Selector launches an interactive region picker.
type Selector interface {
	// Select launches an interactive region selector and returns the
	// selected region.
	Select() (*capture.Rect, error)

	// SelectWithName launches the selector and saves the result under name.
	SelectWithName(name string) (*capture.Rect, error)
}

// NewSelector creates a platform-specific selector.
func NewSelector() (Selector, error) {
	return newPlatformSelector()
}

// Config holds selector configuration.
type Config struct {
	Message        string
	ShowDimensions bool
}

// DefaultConfig returns the default selector configuration.
func DefaultConfig() Config {
	return Config{
		Message:        "Select the screen region to capture",
		ShowDimensions: true,
	}
}

// ParseRegionString parses a region string in "x,y,w,h" format.
func ParseRegionString(s string) (*capture.Rect, error) {
	var x, y, w, h int
	n, err := fmt.Sscanf(s, "%d,%d,%d,%d", &x, &y, &w, &h)
	if err != nil {
		return nil, fmt.Errorf("invalid region format: %w", err)
	}
	if n != 4 {
		return nil, fmt.Errorf("region must have 4 values (x,y,w,h), got %d", n)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("width and height must be positive")
	}

	return &capture.Rect{
		X:      float64(x),
		Y:      float64(y),
		Width:  float64(w),
		Height: float64(h),
	}, nil
}

// FormatRegionString converts a region to "x,y,w,h" format.
func FormatRegionString(r *capture.Rect) string {
	if r == nil {
		return ""
	}
	x, y, w, h := r.Rounded()
	return fmt.Sprintf("%d,%d,%d,%d", x, y, w, h)
}

// +build windows

package platformcap

import "github.com/lxn/win"

// PrimaryDisplayBounds reports the primary display's bounds via
// GetSystemMetrics(SM_CXSCREEN/SM_CYSCREEN). The primary display's origin
// is always (0,0) in Windows' virtual-screen coordinate space.
func PrimaryDisplayBounds() (x, y, w, h int, err error) {
	width := int(win.GetSystemMetrics(win.SM_CXSCREEN))
	height := int(win.GetSystemMetrics(win.SM_CYSCREEN))
	return 0, 0, width, height, nil
}

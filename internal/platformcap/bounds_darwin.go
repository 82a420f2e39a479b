// +build darwin

package platformcap

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation

#include <CoreGraphics/CoreGraphics.h>
*/
import "C"

// PrimaryDisplayBounds reports the main display's bounds via
// CGMainDisplayID/CGDisplayBounds, adapted from the cgo bounds lookup the
// teacher's display capturer performed before creating its (placeholder)
// display stream.
func PrimaryDisplayBounds() (x, y, w, h int, err error) {
	id := C.CGMainDisplayID()
	bounds := C.CGDisplayBounds(id)
	return int(bounds.origin.x), int(bounds.origin.y), int(bounds.size.width), int(bounds.size.height), nil
}

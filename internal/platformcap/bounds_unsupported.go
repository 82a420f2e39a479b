// +build !darwin,!windows,!linux

package platformcap

import (
	"fmt"

	"github.com/halvorsen/jif/pkg/jiferr"
)

// PrimaryDisplayBounds reports that no display-bounds backend exists for
// this platform.
func PrimaryDisplayBounds() (x, y, w, h int, err error) {
	return 0, 0, 0, 0, fmt.Errorf("%w: display bounds query not implemented for this platform", jiferr.ErrPlatformUnsupported)
}

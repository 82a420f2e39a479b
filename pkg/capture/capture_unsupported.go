// +build !darwin,!windows,!linux

package capture

import (
	"fmt"

	"github.com/halvorsen/jif/pkg/jiferr"
)

// newPlatformCapturer returns an error on platforms with no capture backend.
func newPlatformCapturer(cfg Config) (Capturer, error) {
	return nil, fmt.Errorf("%w: screen capture is only supported on darwin, windows and linux", jiferr.ErrPlatformUnsupported)
}

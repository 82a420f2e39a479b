// +build !darwin

package selector

import (
	"fmt"

	"github.com/halvorsen/jif/pkg/jiferr"
)

// newPlatformSelector returns an error on unsupported platforms
func newPlatformSelector() (Selector, error) {
	return nil, fmt.Errorf("%w: interactive region selection is not supported on this platform (only macOS is currently supported)", jiferr.ErrPlatformUnsupported)
}

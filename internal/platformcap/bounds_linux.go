// +build linux

package platformcap

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/halvorsen/jif/pkg/jiferr"
)

// PrimaryDisplayBounds reports the X server's default screen dimensions.
// Each call opens and closes its own connection. CaptureOnce calls it for
// every full-display capture, so a continuous capture with no region set
// opens one connection per frame.
func PrimaryDisplayBounds() (x, y, w, h int, err error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: connecting to X server: %v", jiferr.ErrCaptureInitFailed, err)
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	return 0, 0, int(screen.WidthInPixels), int(screen.HeightInPixels), nil
}

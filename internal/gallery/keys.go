package gallery

import "errors"

// ErrFullscreenUnavailable is returned by hosts without a fullscreen mode.
var ErrFullscreenUnavailable = errors.New("fullscreen not available")

// Key names understood by HandleKey. They match bubbletea's key strings.
const (
	KeyLeft     = "left"
	KeyRight    = "right"
	KeyEscape   = "esc"
	KeySpace    = " "
	KeySpaceAlt = "space"
	KeyPlus     = "+"
	KeyEquals   = "="
	KeyMinus    = "-"
	KeyF        = "f"
	KeyShiftF   = "F"
	KeyGrid     = "g"
)

// HandleKey applies the command bound to key. Keys are ignored while the
// gallery is closed. It reports whether the key was consumed.
func (c *Controller) HandleKey(key string) bool {
	if !c.state.IsOpen {
		return false
	}
	switch key {
	case KeyLeft:
		c.Previous()
	case KeyRight:
		c.Next()
	case KeyEscape:
		c.Close()
	case KeySpace, KeySpaceAlt:
		c.ToggleAutoplay()
	case KeyPlus, KeyEquals:
		c.ZoomIn()
	case KeyMinus:
		c.ZoomOut()
	case KeyF, KeyShiftF:
		c.ToggleFullscreen()
	case KeyGrid:
		c.ToggleViewMode()
	default:
		return false
	}
	return true
}

package gallery

// Host is the environment the gallery runs in.
type Host interface {
	// RequestFullscreen asks for fullscreen. Success is reported later
	// through Controller.SetFullscreen.
	RequestFullscreen() error
	// ExitFullscreen leaves fullscreen.
	ExitFullscreen() error
	// SuppressScroll stops the background view from scrolling.
	SuppressScroll()
	// RestoreScroll undoes SuppressScroll.
	RestoreScroll()
}

// FullscreenDetector is implemented by hosts that can tell whether
// fullscreen is supported at all.
type FullscreenDetector interface {
	FullscreenAvailable() bool
}

func fullscreenAvailable(h Host) bool {
	if d, ok := h.(FullscreenDetector); ok {
		return d.FullscreenAvailable()
	}
	return true
}

// NoopHost has no fullscreen capability and no scroll to manage.
type NoopHost struct{}

func (NoopHost) RequestFullscreen() error  { return ErrFullscreenUnavailable }
func (NoopHost) ExitFullscreen() error     { return nil }
func (NoopHost) SuppressScroll()           {}
func (NoopHost) RestoreScroll()            {}
func (NoopHost) FullscreenAvailable() bool { return false }

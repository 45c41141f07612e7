package state

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// UIState holds the terminal geometry and the scrolling viewport shared by
// all screens.
type UIState struct {
	width    int
	height   int
	viewport viewport.Model
}

// NewUIState creates a UIState with the default viewport size.
func NewUIState() *UIState {
	return &UIState{
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
	}
}

// SetSize records the terminal size and resizes the viewport to what is
// left after reserved lines.
func (s *UIState) SetSize(width, height, reserved int) {
	s.width = width
	s.height = height
	s.Reserve(reserved)
}

// Reserve resizes the viewport to the height minus reserved lines.
func (s *UIState) Reserve(reserved int) {
	w, h := s.width, s.height-reserved
	if s.width == 0 {
		w = defaultViewportWidth
	}
	if s.height == 0 {
		h = defaultViewportHeight
	}
	if h < 1 {
		h = 1
	}
	s.viewport.Width = w
	s.viewport.Height = h
}

// Width returns the terminal width, or the default before the first resize.
func (s *UIState) Width() int {
	if s.width == 0 {
		return defaultViewportWidth
	}
	return s.width
}

// Height returns the terminal height, or the default before the first resize.
func (s *UIState) Height() int {
	if s.height == 0 {
		return defaultViewportHeight + headerFooterLines
	}
	return s.height
}

// EnsureVisible scrolls the viewport so that line is shown.
func (s *UIState) EnsureVisible(line int) {
	top := s.viewport.YOffset
	switch {
	case line < top:
		s.viewport.SetYOffset(line)
	case line >= top+s.viewport.Height:
		s.viewport.SetYOffset(line - s.viewport.Height + 1)
	}
}

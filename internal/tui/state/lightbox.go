package state

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/gallery"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/preview"
	"github.com/cristianoliveira/folio/internal/tui/render"
)

// cellWidthPx converts terminal columns into the pixel distances the
// gallery's drag threshold is expressed in.
const cellWidthPx = 8

// terminalHost is the gallery's environment inside the TUI. Fullscreen means
// the lightbox takes the whole terminal; the request is confirmed with a
// fullscreenMsg on the next update.
type terminalHost struct {
	requests     []bool
	scrollLocked bool
}

func (h *terminalHost) RequestFullscreen() error {
	h.requests = append(h.requests, true)
	return nil
}

func (h *terminalHost) ExitFullscreen() error {
	h.requests = append(h.requests, false)
	return nil
}

func (h *terminalHost) SuppressScroll() { h.scrollLocked = true }
func (h *terminalHost) RestoreScroll()  { h.scrollLocked = false }

// drain turns pending fullscreen requests into confirmation messages.
func (h *terminalHost) drain() tea.Cmd {
	if len(h.requests) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(h.requests))
	for _, on := range h.requests {
		on := on
		cmds = append(cmds, func() tea.Msg { return fullscreenMsg{on: on} })
	}
	h.requests = nil
	return tea.Sequence(cmds...)
}

// previewKey identifies one drawing of a gallery item.
type previewKey struct {
	ref        string
	cols, rows int
	zoom       float64
}

// previewState is the last drawing requested and its outcome.
type previewState struct {
	key     previewKey
	art     string
	err     string
	loading bool
}

// openProject installs a fresh gallery for p, disposing the previous one.
func (m *Model) openProject(p domain.Project) {
	m.closeProject()
	m.project = &p
	m.gallery = gallery.New(gallery.ItemsFromProject(p),
		gallery.WithHost(m.host),
		gallery.WithScheduler(m.scheduler),
		gallery.WithAutoplayInterval(m.opts.AutoplayInterval),
		gallery.WithDragThreshold(m.opts.DragThreshold),
		gallery.WithOnChange(func(gallery.State) { m.galleryDirty = true }),
	)
}

// closeProject disposes the gallery so no autoplay timer outlives the view.
func (m *Model) closeProject() {
	if m.gallery != nil {
		m.gallery.Dispose()
	}
	m.gallery = nil
	m.project = nil
	m.art = previewState{}
	m.galleryDirty = false
}

func (m *Model) lightboxOpen() bool {
	return m.gallery != nil && m.gallery.State().IsOpen
}

// syncGallery reacts to gallery changes: pending fullscreen requests are
// confirmed and the current item is drawn when it changed.
func (m *Model) syncGallery() tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.host.drain(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.galleryDirty {
		m.galleryDirty = false
		if cmd := m.drawPreview(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// drawPreview requests a drawing of the current item at the current size
// and zoom unless it is already shown or pending.
func (m *Model) drawPreview() tea.Cmd {
	if m.gallery == nil {
		return nil
	}
	item, ok := m.gallery.Current()
	if !ok {
		return nil
	}
	st := m.gallery.State()
	frame := render.LightboxFrame(m.ui.Width(), m.ui.Height(), st.IsFullscreen)
	cols, rows := render.LightboxArtSize(frame, st.ViewMode, m.gallery.Len())
	key := previewKey{ref: item.URL, cols: cols, rows: rows, zoom: st.ZoomLevel}
	if key == m.art.key && (m.art.loading || m.art.art != "" || m.art.err != "") {
		return nil
	}
	if m.preview == nil {
		m.art = previewState{key: key, err: "image previews are disabled"}
		return nil
	}
	m.art = previewState{key: key, loading: true}

	loader, ctx, timeout := m.preview, m.ctx, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		art, err := loader.Draw(ctx, key.ref, key.cols, key.rows, key.zoom)
		return previewMsg{key: key, art: art, err: err}
	}
}

func (m *Model) handlePreview(msg previewMsg) {
	if msg.key != m.art.key {
		return
	}
	m.art.loading = false
	if msg.err != nil {
		logging.Debug("tui: preview failed", "ref", msg.key.ref, "error", msg.err)
		m.art.err = "preview unavailable"
		if errors.Is(msg.err, preview.ErrUnsupported) {
			m.art.err = "this image format cannot be previewed"
		}
		return
	}
	m.art.art = msg.art
}

// handleLightboxKey routes keys to the open gallery. Every key is consumed.
func (m *Model) handleLightboxKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "0":
		m.gallery.ResetZoom()
	case "home":
		m.gallery.JumpTo(0)
	case "end":
		m.gallery.JumpTo(m.gallery.Len() - 1)
	default:
		m.gallery.HandleKey(msg.String())
	}
	return m.syncGallery()
}

// handleLightboxMouse handles drags, wheel zoom and clicks outside the frame.
func (m *Model) handleLightboxMouse(msg tea.MouseMsg) tea.Cmd {
	st := m.gallery.State()
	frame := render.LightboxFrame(m.ui.Width(), m.ui.Height(), st.IsFullscreen)
	x := float64(msg.X * cellWidthPx)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.gallery.ZoomIn()
	case msg.Button == tea.MouseButtonWheelDown:
		m.gallery.ZoomOut()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !frame.Contains(msg.X, msg.Y) {
			m.gallery.Close()
			break
		}
		m.gallery.DragStart(x)
	case msg.Action == tea.MouseActionRelease:
		m.gallery.DragEnd(x)
	}
	return m.syncGallery()
}

func (m *Model) lightboxView() string {
	st := m.gallery.State()
	return render.Lightbox(m.styles, render.LightboxState{
		Items:      m.gallery.Items(),
		Index:      st.CurrentIndex,
		Zoom:       st.ZoomLevel,
		Autoplay:   st.IsAutoplaying,
		Fullscreen: st.IsFullscreen,
		ViewMode:   st.ViewMode,
		Art:        m.art.art,
		Loading:    m.art.loading,
		Err:        m.art.err,
	}, m.ui.Width(), m.ui.Height())
}

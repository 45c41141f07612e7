// Package gallery implements the media lightbox: open and close, circular
// navigation, zoom, autoplay, fullscreen, drag to navigate and keyboard control.
//
// A Controller is owned by one view and is not safe for concurrent use. Timer
// callbacks must be delivered on the view's goroutine (see schedule.Dispatcher).
package gallery

import (
	"math"
	"time"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/schedule"
)

const (
	// MinZoom and MaxZoom bound the zoom level.
	MinZoom = 0.5
	MaxZoom = 3.0
	// ZoomStep is the zoom granularity and the delta of the zoom keys.
	ZoomStep = 0.25
	// DefaultZoom is the zoom level after open, navigation and close.
	DefaultZoom = 1.0

	// DefaultAutoplayInterval is the delay between autoplay advances.
	DefaultAutoplayInterval = 2000 * time.Millisecond
	// DefaultDragThreshold is the minimum horizontal travel, in pixels, of a navigating drag.
	DefaultDragThreshold = 50.0

	// FeaturedID is the id of the synthetic item built from a featured image.
	FeaturedID = "featured"
	// FeaturedCaption is the caption of the synthetic featured item.
	FeaturedCaption = "Featured Image"
)

// MediaItem is one image shown in the gallery.
type MediaItem struct {
	ID      string `json:"id"`
	URL     string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// BuildItems prepends a synthetic featured item to items when featuredURL is set.
func BuildItems(featuredURL string, items []MediaItem) []MediaItem {
	out := make([]MediaItem, 0, len(items)+1)
	if featuredURL != "" {
		out = append(out, MediaItem{ID: FeaturedID, URL: featuredURL, Caption: FeaturedCaption})
	}
	return append(out, items...)
}

// ItemsFromProject returns the gallery items of a project, featured image first.
func ItemsFromProject(p domain.Project) []MediaItem {
	items := make([]MediaItem, 0, len(p.Images))
	for _, img := range p.Images {
		if img.Image == "" {
			continue
		}
		items = append(items, MediaItem{ID: img.ID.String(), URL: img.Image, Caption: img.Caption})
	}
	return BuildItems(p.FeaturedImage, items)
}

// ViewMode selects how the thumbnail strip is laid out.
type ViewMode string

const (
	ViewSlider ViewMode = "slider"
	ViewGrid   ViewMode = "grid"
)

// State is a read-only snapshot of the gallery.
type State struct {
	IsOpen        bool
	CurrentIndex  int
	ZoomLevel     float64
	IsAutoplaying bool
	IsFullscreen  bool
	// DragStart is the x position of an in-progress drag, or nil.
	DragStart *float64
	ViewMode  ViewMode
}

func defaultState() State {
	return State{ZoomLevel: DefaultZoom, ViewMode: ViewSlider}
}

// Option configures a Controller.
type Option func(*Controller)

// WithHost sets the environment capabilities used for fullscreen and scroll.
func WithHost(h Host) Option {
	return func(c *Controller) {
		if h != nil {
			c.host = h
		}
	}
}

// WithScheduler sets the scheduler that drives autoplay.
func WithScheduler(s schedule.Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithAutoplayInterval overrides DefaultAutoplayInterval.
func WithAutoplayInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithDragThreshold overrides DefaultDragThreshold.
func WithDragThreshold(px float64) Option {
	return func(c *Controller) {
		if px > 0 {
			c.threshold = px
		}
	}
}

// WithOnChange registers a callback invoked after every state change,
// including autoplay advances.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// Controller is the gallery state machine.
type Controller struct {
	items     []MediaItem
	state     State
	host      Host
	scheduler schedule.Scheduler
	interval  time.Duration
	threshold float64
	onChange  func(State)

	stopAutoplay     schedule.Cancel
	scrollSuppressed bool

	// fullscreenPending is set while the host has not answered the last
	// request; fullscreenTarget is what that request asked for.
	fullscreenPending bool
	fullscreenTarget  bool
}

// New creates a closed gallery over items.
func New(items []MediaItem, opts ...Option) *Controller {
	c := &Controller{
		items:     append([]MediaItem(nil), items...),
		state:     defaultState(),
		host:      NoopHost{},
		scheduler: schedule.New(),
		interval:  DefaultAutoplayInterval,
		threshold: DefaultDragThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Items returns a copy of the gallery items.
func (c *Controller) Items() []MediaItem {
	return append([]MediaItem(nil), c.items...)
}

// Len returns the number of items.
func (c *Controller) Len() int {
	return len(c.items)
}

// SetItems replaces the items. An open gallery closes when the new list is
// empty and otherwise keeps a clamped index.
func (c *Controller) SetItems(items []MediaItem) {
	c.items = append([]MediaItem(nil), items...)
	if !c.state.IsOpen {
		return
	}
	if len(c.items) == 0 {
		c.Close()
		return
	}
	c.state.CurrentIndex = clampIndex(c.state.CurrentIndex, len(c.items))
	c.changed()
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	s := c.state
	if s.DragStart != nil {
		x := *s.DragStart
		s.DragStart = &x
	}
	return s
}

// Current returns the item at the current index while open.
func (c *Controller) Current() (MediaItem, bool) {
	if !c.state.IsOpen || len(c.items) == 0 {
		return MediaItem{}, false
	}
	return c.items[c.state.CurrentIndex], true
}

// Open shows the item at index, clamped to the item range. It is a no-op
// without items.
func (c *Controller) Open(index int) {
	if len(c.items) == 0 {
		return
	}
	wasOpen := c.state.IsOpen
	c.state.IsOpen = true
	c.state.CurrentIndex = clampIndex(index, len(c.items))
	c.state.ZoomLevel = DefaultZoom
	c.state.DragStart = nil
	if !c.scrollSuppressed {
		c.host.SuppressScroll()
		c.scrollSuppressed = true
	}
	if !wasOpen {
		logging.Debug("gallery: opened", "index", c.state.CurrentIndex, "items", len(c.items))
	}
	c.changed()
}

// Close hides the gallery. Autoplay stops, fullscreen is released and zoom
// resets before Close returns.
func (c *Controller) Close() {
	if !c.state.IsOpen {
		return
	}
	c.cancelAutoplay()
	if c.state.IsFullscreen {
		if err := c.host.ExitFullscreen(); err != nil {
			logging.Warn("gallery: exit fullscreen failed", "error", err)
		}
	}
	if c.scrollSuppressed {
		c.host.RestoreScroll()
		c.scrollSuppressed = false
	}
	c.fullscreenPending = false
	mode := c.state.ViewMode
	c.state = defaultState()
	c.state.ViewMode = mode
	logging.Debug("gallery: closed")
	c.changed()
}

// Next advances to the following item, wrapping to the first.
func (c *Controller) Next() {
	if !c.ready() {
		return
	}
	c.goTo((c.state.CurrentIndex + 1) % len(c.items))
}

// Previous moves to the preceding item, wrapping to the last.
func (c *Controller) Previous() {
	if !c.ready() {
		return
	}
	n := len(c.items)
	c.goTo((c.state.CurrentIndex - 1 + n) % n)
}

// JumpTo shows the item at index. Out-of-range indexes are ignored.
func (c *Controller) JumpTo(index int) {
	if !c.ready() || index < 0 || index >= len(c.items) {
		return
	}
	c.goTo(index)
}

func (c *Controller) goTo(index int) {
	c.state.CurrentIndex = index
	c.state.ZoomLevel = DefaultZoom
	c.changed()
}

// SetZoom changes the zoom level by delta, snapped to ZoomStep and clamped
// to [MinZoom, MaxZoom].
func (c *Controller) SetZoom(delta float64) {
	if !c.ready() {
		return
	}
	c.state.ZoomLevel = clampZoom(c.state.ZoomLevel + delta)
	c.changed()
}

// ZoomIn raises the zoom by one step.
func (c *Controller) ZoomIn() { c.SetZoom(ZoomStep) }

// ZoomOut lowers the zoom by one step.
func (c *Controller) ZoomOut() { c.SetZoom(-ZoomStep) }

// ResetZoom restores DefaultZoom.
func (c *Controller) ResetZoom() {
	if !c.ready() {
		return
	}
	c.state.ZoomLevel = DefaultZoom
	c.changed()
}

// ToggleAutoplay starts or stops advancing every autoplay interval.
func (c *Controller) ToggleAutoplay() {
	if !c.ready() {
		return
	}
	if c.state.IsAutoplaying {
		c.cancelAutoplay()
		logging.Debug("gallery: autoplay stopped")
	} else {
		c.state.IsAutoplaying = true
		c.stopAutoplay = c.scheduler.Every(c.interval, c.autoplayTick)
		logging.Debug("gallery: autoplay started", "interval", c.interval.String())
	}
	c.changed()
}

func (c *Controller) autoplayTick() {
	if !c.state.IsOpen || !c.state.IsAutoplaying {
		return
	}
	c.Next()
}

func (c *Controller) cancelAutoplay() {
	if c.stopAutoplay != nil {
		c.stopAutoplay()
		c.stopAutoplay = nil
	}
	c.state.IsAutoplaying = false
}

// ToggleFullscreen asks the host to enter or leave fullscreen. The state
// only changes when the host reports the outcome through SetFullscreen.
// While a request is unanswered, the next toggle reverses that request.
func (c *Controller) ToggleFullscreen() {
	if !c.ready() || !fullscreenAvailable(c.host) {
		return
	}
	current := c.state.IsFullscreen
	if c.fullscreenPending {
		current = c.fullscreenTarget
	}
	prevPending, prevTarget := c.fullscreenPending, c.fullscreenTarget
	c.fullscreenPending, c.fullscreenTarget = true, !current

	var err error
	if current {
		err = c.host.ExitFullscreen()
	} else {
		err = c.host.RequestFullscreen()
	}
	if err != nil {
		c.fullscreenPending, c.fullscreenTarget = prevPending, prevTarget
		logging.Debug("gallery: fullscreen request refused", "error", err)
	}
}

// SetFullscreen records the fullscreen state reported by the host. A closed
// gallery never holds fullscreen: a grant that arrives after Close is handed
// straight back to the host.
func (c *Controller) SetFullscreen(on bool) {
	if c.fullscreenPending && on == c.fullscreenTarget {
		c.fullscreenPending = false
	}
	if !c.state.IsOpen && on {
		if err := c.host.ExitFullscreen(); err != nil {
			logging.Warn("gallery: exit fullscreen failed", "error", err)
		}
		on = false
	}
	if c.state.IsFullscreen == on {
		return
	}
	c.state.IsFullscreen = on
	c.changed()
}

// DragStart records the x position where a pointer drag began.
func (c *Controller) DragStart(x float64) {
	if !c.ready() {
		return
	}
	c.state.DragStart = &x
}

// DragEnd finishes a drag at x. Dragging left past the threshold shows the
// next item, dragging right the previous one.
func (c *Controller) DragEnd(x float64) {
	if !c.ready() || c.state.DragStart == nil {
		return
	}
	delta := *c.state.DragStart - x
	c.state.DragStart = nil
	switch {
	case delta > c.threshold:
		c.Next()
	case delta < -c.threshold:
		c.Previous()
	}
}

// CancelDrag discards an in-progress drag.
func (c *Controller) CancelDrag() {
	c.state.DragStart = nil
}

// ToggleViewMode switches the thumbnail strip between slider and grid.
func (c *Controller) ToggleViewMode() {
	if c.state.ViewMode == ViewGrid {
		c.state.ViewMode = ViewSlider
	} else {
		c.state.ViewMode = ViewGrid
	}
	c.changed()
}

// Dispose stops timers and releases host resources. The view calls it when
// it goes away.
func (c *Controller) Dispose() {
	c.Close()
	c.cancelAutoplay()
}

func (c *Controller) ready() bool {
	return c.state.IsOpen && len(c.items) > 0
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange(c.State())
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clampZoom(z float64) float64 {
	z = DefaultZoom + math.Round((z-DefaultZoom)/ZoomStep)*ZoomStep
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Package state holds the bubbletea model of the portfolio TUI: the list
// pages with their filters, the project detail with its lightbox, the
// contact form and the maintenance screen.
package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/errors"
	"github.com/cristianoliveira/folio/internal/gallery"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/maintenance"
	"github.com/cristianoliveira/folio/internal/preview"
	"github.com/cristianoliveira/folio/internal/schedule"
	"github.com/cristianoliveira/folio/internal/theme"
	"github.com/cristianoliveira/folio/internal/typewriter"
)

const (
	headerFooterLines     = 4
	listControlLines      = 3
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	defaultRequestTimeout = 10 * time.Second
	featuredOnHome        = 5
)

// screen is one of the top-level views.
type screen int

const (
	screenHome screen = iota
	screenProjects
	screenExperience
	screenEducation
	screenContact
	screenProject
)

var screenPages = map[screen]domain.Page{
	screenProjects:   domain.PageProjects,
	screenExperience: domain.PageExperience,
	screenEducation:  domain.PageEducation,
}

// Backend is the content service behind the TUI.
type Backend interface {
	domain.ContentRepository
	Home(ctx context.Context) (domain.Home, error)
	Offline() bool
}

// Options are the collaborators and timings of a Model.
type Options struct {
	Backend Backend
	Pages   *core.Pages
	// Media fetches gallery images. Nil disables previews.
	Media preview.Fetcher
	// Scheduler drives autoplay and the typewriter. Its callbacks must be
	// delivered through the model (see Model.Dispatch); nil uses the wall
	// clock routed through the program.
	Scheduler schedule.Scheduler
	// PollScheduler drives the maintenance poller, which is safe to run on
	// the timer goroutine.
	PollScheduler schedule.Scheduler

	AutoplayInterval time.Duration
	DragThreshold    float64
	TypingSpeed      time.Duration
	TypingDelay      time.Duration
	PollInterval     time.Duration
	RequestTimeout   time.Duration
}

// OptionsFromConfig reads the timings from the loaded configuration.
func OptionsFromConfig() Options {
	return Options{
		AutoplayInterval: time.Duration(config.GetInt("autoplay_interval_ms", 2000)) * time.Millisecond,
		DragThreshold:    float64(config.GetInt("drag_threshold", int(gallery.DefaultDragThreshold))),
		TypingSpeed:      time.Duration(config.GetInt("typing_speed_ms", 100)) * time.Millisecond,
		TypingDelay:      time.Duration(config.GetInt("typing_delay_ms", 2000)) * time.Millisecond,
		PollInterval:     time.Duration(config.GetInt("maintenance_poll_seconds", 30)) * time.Second,
		RequestTimeout:   time.Duration(config.GetInt("api_timeout", 10)) * time.Second,
	}
}

// Model represents the TUI model for bubbletea.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
	send   func(tea.Msg)

	ui        *UIState
	screen    screen
	site      theme.SiteConfig
	styles    theme.Styles
	scheduler schedule.Scheduler

	lists      map[domain.Page]*listPage
	search     textinput.Model
	searching  bool
	lastSearch string

	home       domain.Home
	homeLoaded bool
	typed      string
	typewriter *typewriter.Typewriter

	project      *domain.Project
	gallery      *gallery.Controller
	host         *terminalHost
	preview      *preview.Loader
	art          previewState
	galleryDirty bool

	contact *contactForm

	poller      *maintenance.Poller
	maintenance domain.Maintenance

	spinner      spinner.Model
	errorHandler *errors.TUIHandler
	quitting     bool

	settings    *settingsService
	startScreen screen
}

// NewModel creates the TUI model. Backend and Pages are required.
func NewModel(opts Options) *Model {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:      ctx,
		cancel:   cancel,
		opts:     opts,
		ui:       NewUIState(),
		site:     theme.DefaultSiteConfig(),
		lists:    make(map[domain.Page]*listPage, len(domain.Pages)),
		host:     &terminalHost{},
		contact:  newContactForm(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		settings: newSettingsService(),
	}
	m.styles = theme.NewStyles(m.site)
	for _, p := range domain.Pages {
		m.lists[p] = newListPage(p)
	}

	m.scheduler = opts.Scheduler
	if m.scheduler == nil {
		m.scheduler = schedule.New(schedule.WithDispatcher(m.Dispatch))
	}
	if opts.Media != nil {
		m.preview = preview.NewLoader(opts.Media, preview.DefaultCacheSize)
	}

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "search"
	m.search.CharLimit = 100

	m.typewriter = typewriter.New(
		typewriter.WithScheduler(m.scheduler),
		typewriter.WithSpeed(opts.TypingSpeed),
		typewriter.WithDelay(opts.TypingDelay),
		typewriter.WithOnChange(func(text string) { m.typed = text }),
	)

	m.poller = maintenance.New(opts.Backend.Maintenance,
		maintenance.WithScheduler(opts.PollScheduler),
		maintenance.WithInterval(opts.PollInterval),
		maintenance.WithTimeout(opts.RequestTimeout),
		maintenance.WithOnChange(func(status domain.Maintenance) {
			m.post(maintenanceMsg{status: status})
		}),
	)

	m.errorHandler = errors.NewTUIHandler(nil)
	return m
}

// SetSender connects the model to the running program. Scheduler callbacks
// and poller updates are delivered through it.
func (m *Model) SetSender(send func(tea.Msg)) {
	m.send = send
}

// Dispatch runs fn on the update goroutine. It is the schedule.Dispatcher
// of the default scheduler.
func (m *Model) Dispatch(fn func()) {
	m.post(callbackMsg{fn: fn})
}

func (m *Model) post(msg tea.Msg) {
	if m.send != nil {
		m.send(msg)
	}
}

// Init starts loading content and the maintenance poller. A restored
// screen is opened right away.
func (m *Model) Init() tea.Cmd {
	if m.startScreen != screenHome {
		return tea.Batch(m.loadSite(), m.setScreen(m.startScreen), m.startPolling, m.spinner.Tick)
	}
	m.typewriter.Start()
	return tea.Batch(m.loadSite(), m.startPolling, m.spinner.Tick)
}

// loadSite fetches the settings, hero texts and home aggregate.
func (m *Model) loadSite() tea.Cmd {
	backend := m.opts.Backend
	return tea.Batch(
		m.fetch(func(ctx context.Context) tea.Msg {
			s, err := backend.Settings(ctx)
			return settingsMsg{settings: s, err: err}
		}),
		m.fetch(func(ctx context.Context) tea.Msg {
			t, err := backend.RotatingTexts(ctx)
			return rotatingTextsMsg{texts: t, err: err}
		}),
		m.fetch(func(ctx context.Context) tea.Msg {
			h, err := backend.Home(ctx)
			return homeMsg{home: h, err: err}
		}),
	)
}

func (m *Model) startPolling() tea.Msg {
	m.poller.Start(m.ctx)
	return nil
}

// fetch runs fn in a command with the request timeout.
func (m *Model) fetch(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	parent, timeout := m.ctx, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return fn(ctx)
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)
	case tea.MouseMsg:
		cmd = m.handleMouseMsg(msg)
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height, m.reservedLines())
		m.galleryDirty = m.lightboxOpen()
		m.refreshContent()
	case callbackMsg:
		msg.fn()
	case settingsMsg:
		cmd = m.handleSettings(msg)
	case rotatingTextsMsg:
		if msg.err == nil {
			m.typewriter.Configure(msg.texts)
		} else {
			logging.Debug("tui: rotating texts unavailable", "error", msg.err)
		}
	case homeMsg:
		cmd = m.handleHome(msg)
	case collectionMsg:
		cmd = m.handleCollection(msg)
	case projectMsg:
		cmd = m.handleProject(msg)
	case previewMsg:
		m.handlePreview(msg)
	case fullscreenMsg:
		if m.gallery != nil {
			m.gallery.SetFullscreen(msg.on)
		}
	case maintenanceMsg:
		m.maintenance = msg.status
	case contactSentMsg:
		cmd = m.handleContactSent(msg)
	case statusExpiredMsg:
	case spinner.TickMsg:
		if m.busy() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}
	if m.quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.syncGallery())
}

// busy reports whether something is loading in the background.
func (m *Model) busy() bool {
	if m.contact.sending {
		return true
	}
	for _, l := range m.lists {
		if l.loading {
			return true
		}
	}
	return false
}

func (m *Model) handleSettings(msg settingsMsg) tea.Cmd {
	if msg.err != nil {
		logging.Warn("tui: settings unavailable, using defaults", "error", msg.err)
		return nil
	}
	m.site = theme.Resolve(msg.settings)
	m.styles = theme.NewStyles(m.site)
	m.refreshContent()
	return tea.SetWindowTitle(m.site.Title(""))
}

func (m *Model) handleHome(msg homeMsg) tea.Cmd {
	if msg.err != nil {
		errors.Report(m.errorHandler, msg.err)
		return m.statusTick()
	}
	m.home = msg.home
	m.homeLoaded = true
	m.refreshContent()
	return nil
}

// loadPage fetches the base collection of page unless it is loaded or loading.
func (m *Model) loadPage(page domain.Page, force bool) tea.Cmd {
	l := m.lists[page]
	if l.loading || (l.loaded && !force) {
		return nil
	}
	l.loading = true
	pages := m.opts.Pages
	return tea.Batch(m.spinner.Tick, m.fetch(func(ctx context.Context) tea.Msg {
		c, err := pages.Fetch(ctx, page)
		return collectionMsg{page: page, collection: c, err: err}
	}))
}

func (m *Model) handleCollection(msg collectionMsg) tea.Cmd {
	l, ok := m.lists[msg.page]
	if !ok {
		return nil
	}
	l.loading = false
	if msg.err != nil {
		errors.Report(m.errorHandler, msg.err)
		return m.statusTick()
	}
	l.collection = msg.collection
	l.loaded = true
	l.apply(m.opts.Pages)
	m.refreshContent()
	if m.opts.Backend.Offline() {
		m.errorHandler.Warning("Offline: showing cached content.")
		return m.statusTick()
	}
	return nil
}

// openSelected fetches the project under the cursor.
func (m *Model) openSelected() tea.Cmd {
	p, ok := m.lists[domain.PageProjects].selectedProject()
	if !ok {
		return nil
	}
	slug, backend := p.Slug, m.opts.Backend
	return m.fetch(func(ctx context.Context) tea.Msg {
		project, err := backend.Project(ctx, slug)
		return projectMsg{slug: slug, project: project, err: err}
	})
}

func (m *Model) handleProject(msg projectMsg) tea.Cmd {
	if msg.err != nil {
		errors.Report(m.errorHandler, msg.err)
		return m.statusTick()
	}
	m.openProject(msg.project)
	m.setScreen(screenProject)
	return tea.SetWindowTitle(m.site.Title(msg.project.Title))
}

// setScreen switches views. Leaving the project view disposes its gallery;
// the typewriter only runs on the home screen.
func (m *Model) setScreen(s screen) tea.Cmd {
	if m.screen == screenProject && s != screenProject {
		m.closeProject()
	}
	if m.screen == screenContact && s != screenContact {
		m.contact.stop()
	}
	m.searching = false
	m.search.Blur()
	m.screen = s

	if s == screenHome {
		m.typewriter.Start()
	} else {
		m.typewriter.Stop()
	}
	m.ui.Reserve(m.reservedLines())
	m.ui.viewport.GotoTop()
	m.refreshContent()

	if page, ok := screenPages[s]; ok {
		return m.loadPage(page, false)
	}
	return nil
}

// currentList returns the list page shown, if any.
func (m *Model) currentList() (*listPage, bool) {
	page, ok := screenPages[m.screen]
	if !ok {
		return nil, false
	}
	return m.lists[page], true
}

// reservedLines is the number of lines outside the viewport.
func (m *Model) reservedLines() int {
	if _, ok := m.currentList(); ok {
		return headerFooterLines + listControlLines
	}
	return headerFooterLines
}

// statusTick schedules a redraw when the newest status message expires.
func (m *Model) statusTick() tea.Cmd {
	return tea.Tick(errors.DefaultMessageTTL, func(time.Time) tea.Msg { return statusExpiredMsg{} })
}

// quit stops timers and the poller and ends the program.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Dispose()
	return tea.Quit
}

// Dispose saves the preferences and stops every background activity owned
// by the model.
func (m *Model) Dispose() {
	m.saveSettings()
	m.closeProject()
	m.typewriter.Stop()
	m.poller.Stop()
	m.cancel()
}

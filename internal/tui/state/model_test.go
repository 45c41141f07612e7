package state

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/folio/internal/contact"
	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/gallery"
	"github.com/cristianoliveira/folio/internal/query"
	"github.com/cristianoliveira/folio/internal/schedule"
	"github.com/cristianoliveira/folio/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	projects     []domain.Project
	technologies []domain.Technology
	experience   []domain.Experience
	education    []domain.Education
	settings     domain.SiteSettings
	home         domain.Home
	maintenance  domain.Maintenance
	offline      bool
	projectErr   error
	submitErr    error
	submitted    []domain.ContactMessage
}

func (b *stubBackend) Projects(context.Context) (domain.ProjectPage, error) {
	return domain.ProjectPage{Items: b.projects, Total: len(b.projects)}, nil
}

func (b *stubBackend) Project(_ context.Context, slug string) (domain.Project, error) {
	if b.projectErr != nil {
		return domain.Project{}, b.projectErr
	}
	for _, p := range b.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Project{}, errors.New("project not found")
}

func (b *stubBackend) Technologies(context.Context) ([]domain.Technology, error) {
	return b.technologies, nil
}

func (b *stubBackend) Experiences(context.Context) ([]domain.Experience, error) {
	return b.experience, nil
}

func (b *stubBackend) Education(context.Context) ([]domain.Education, error) {
	return b.education, nil
}

func (b *stubBackend) Settings(context.Context) (domain.SiteSettings, error) {
	return b.settings, nil
}

func (b *stubBackend) Maintenance(context.Context) (domain.Maintenance, error) {
	return b.maintenance, nil
}

func (b *stubBackend) RotatingTexts(context.Context) (domain.RotatingTexts, error) {
	return domain.RotatingTexts{HeroTexts: []string{"Go"}}, nil
}

func (b *stubBackend) SubmitContact(_ context.Context, msg domain.ContactMessage) error {
	b.submitted = append(b.submitted, msg)
	return b.submitErr
}

func (b *stubBackend) Home(context.Context) (domain.Home, error) {
	return b.home, nil
}

func (b *stubBackend) Offline() bool {
	return b.offline
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		projects: []domain.Project{
			{
				ID: "1", Title: "Folio", Slug: "folio", IsFeatured: true,
				Technologies:  []domain.Technology{{Name: "Go"}},
				FeaturedImage: "/media/folio.png",
				Images: []domain.ProjectImage{
					{ID: "10", Image: "/media/a.png", Caption: "Dashboard"},
					{ID: "11", Image: "/media/b.png"},
				},
			},
			{ID: "2", Title: "Relay", Slug: "relay", Technologies: []domain.Technology{{Name: "Python"}}},
			{ID: "3", Title: "Atlas", Slug: "atlas", Technologies: []domain.Technology{{Name: "Go"}, {Name: "React"}}},
		},
		technologies: []domain.Technology{{Name: "React"}, {Name: "Go"}, {Name: "Python"}},
		experience: []domain.Experience{
			{ID: "1", Position: "Engineer", Company: "Acme", ExperienceType: domain.ExperienceFullTime, IsCurrent: true},
			{ID: "2", Position: "Consultant", Company: "Initech", ExperienceType: domain.ExperienceContract},
		},
		education: []domain.Education{
			{ID: "1", Degree: "BSc", Institution: "Uni", EducationType: domain.EducationBachelors, StartDate: "2010-09-01"},
		},
		settings: domain.SiteSettings{Site: domain.SiteInfo{Name: "Jane Doe", ContactEmail: "jane@example.com"}},
		home:     domain.Home{Stats: domain.Stats{Projects: 3, Technologies: 3, Experience: 7}},
	}
}

type testModel struct {
	*Model
	backend *stubBackend
	clock   *schedule.Manual
	sent    []tea.Msg
}

func newTestModel(t *testing.T) *testModel {
	t.Helper()
	backend := newStubBackend()
	clock := schedule.NewManual()
	tm := &testModel{backend: backend, clock: clock}
	tm.Model = NewModel(Options{
		Backend:       backend,
		Pages:         core.NewPages(backend, search.NewSubstringProvider(search.WithCaseInsensitive(true))),
		Scheduler:     clock,
		PollScheduler: schedule.NewManual(),
	})
	tm.SetSender(func(msg tea.Msg) { tm.sent = append(tm.sent, msg) })
	t.Cleanup(tm.Dispose)
	tm.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return tm
}

func (tm *testModel) key(k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := tm.Update(msg)
	return cmd
}

func (tm *testModel) typeText(s string) {
	for _, r := range s {
		tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// loadPage delivers the base collection of page as if the fetch finished.
func (tm *testModel) loadPage(t *testing.T, page domain.Page) *listPage {
	t.Helper()
	c, err := tm.opts.Pages.Fetch(context.Background(), page)
	require.NoError(t, err)
	tm.Update(collectionMsg{page: page, collection: c})
	return tm.lists[page]
}

// openProject opens the projects page and the detail of the row under the cursor.
func (tm *testModel) openProject(t *testing.T) {
	t.Helper()
	tm.key("2")
	tm.loadPage(t, domain.PageProjects)
	cmd := tm.openSelected()
	require.NotNil(t, cmd)
	tm.Update(cmd())
	require.Equal(t, screenProject, tm.screen)
}

// deliver runs the scheduler callbacks posted through the sender.
func (tm *testModel) deliver() {
	sent := tm.sent
	tm.sent = nil
	for _, msg := range sent {
		tm.Update(msg)
	}
}

func titles(l *listPage) []string {
	projects, _ := l.listing.Items.([]domain.Project)
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func TestNewModelStartsOnHome(t *testing.T) {
	tm := newTestModel(t)

	assert.Equal(t, screenHome, tm.screen)
	assert.Len(t, tm.lists, len(domain.Pages))
	for _, l := range tm.lists {
		assert.False(t, l.loaded)
		assert.Equal(t, query.All, l.filterValue())
	}
}

func TestSettingsRestyleTheHeader(t *testing.T) {
	tm := newTestModel(t)
	_, cmd := tm.Update(settingsMsg{settings: tm.backend.settings})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Jane Doe", tm.site.Site.Name)
	assert.Contains(t, tm.View(), "Jane Doe")
}

func TestScreenKeysSwitchViewsAndLoadPages(t *testing.T) {
	tm := newTestModel(t)

	cmd := tm.key("2")
	assert.Equal(t, screenProjects, tm.screen)
	assert.NotNil(t, cmd)
	assert.True(t, tm.lists[domain.PageProjects].loading)

	tm.key("4")
	assert.Equal(t, screenEducation, tm.screen)

	tm.key("5")
	assert.Equal(t, screenContact, tm.screen)

	tm.key("1")
	assert.Equal(t, screenHome, tm.screen)
}

func TestLoadPageFetchesOnce(t *testing.T) {
	tm := newTestModel(t)
	tm.key("2")
	tm.loadPage(t, domain.PageProjects)

	assert.Nil(t, tm.Model.loadPage(domain.PageProjects, false))
	assert.NotNil(t, tm.Model.loadPage(domain.PageProjects, true))
}

func TestCollectionShowsEveryRowAndFacets(t *testing.T) {
	tm := newTestModel(t)
	tm.key("2")
	l := tm.loadPage(t, domain.PageProjects)

	assert.True(t, l.loaded)
	assert.False(t, l.loading)
	assert.Equal(t, []string{"Folio", "Relay", "Atlas"}, titles(l))
	assert.Equal(t, []string{"Go", "Python", "React"}, l.filterOptions())
	assert.Equal(t, 2, l.listing.Facets[domain.FilterTechnology]["Go"])

	view := tm.View()
	assert.Contains(t, view, "Relay")
	assert.Contains(t, view, "3 of 3 projects")
}

func TestTechnologyFilterCyclesAndKeepsFacets(t *testing.T) {
	tm := newTestModel(t)
	tm.key("2")
	l := tm.loadPage(t, domain.PageProjects)

	tm.key("t")
	assert.Equal(t, "Go", l.filters.Technology)
	assert.Equal(t, []string{"Folio", "Atlas"}, titles(l))
	// facets describe the unfiltered collection
	assert.Equal(t, 1, l.listing.Facets[domain.FilterTechnology]["Python"])

	tm.key("T")
	assert.Equal(t, query.All, l.filters.Technology)
	assert.Len(t, titles(l), 3)

	tm.key("T")
	assert.Equal(t, "React", l.filters.Technology)
	assert.Equal(t, []string{"Atlas"}, titles(l))
}

func TestFeaturedToggleSortAndReset(t *testing.T) {
	tm := newTestModel(t)
	tm.key("2")
	l := tm.loadPage(t, domain.PageProjects)

	tm.key("*")
	assert.Equal(t, []string{"Folio"}, titles(l))

	tm.key("x")
	assert.Len(t, titles(l), 3)

	tm.key("s")
	assert.Equal(t, domain.FieldTitle, l.filters.SortField)
	assert.Equal(t, []string{"Atlas", "Folio", "Relay"}, titles(l))

	tm.key("S")
	assert.Equal(t, query.OrderDesc, l.filters.SortOrder)
	assert.Equal(t, []string{"Relay", "Folio", "Atlas"}, titles(l))
}

func TestCursorStaysInsideTheView(t *testing.T) {
	tm := newTestModel(t)
	tm.key("2")
	l := tm.loadPage(t, domain.PageProjects)

	tm.key("G")
	assert.Equal(t, 2, l.cursor)
	tm.key("j")
	assert.Equal(t, 2, l.cursor)

	tm.key("T")
	assert.Equal(t, []string{"Atlas"}, titles(l))
	assert.Equal(t, 0, l.cursor)

	tm.key("k")
	assert.Equal(t, 0, l.cursor)
}

func TestSearchFiltersLiveAndEscRestores(t *testing.T) {
	tm := newTestModel(t)
	tm.key("2")
	l := tm.loadPage(t, domain.PageProjects)

	tm.key("/")
	require.True(t, tm.searching)
	tm.typeText("rel")
	assert.Equal(t, "rel", l.filters.Search)
	assert.Equal(t, []string{"Relay"}, titles(l))

	tm.key("esc")
	assert.False(t, tm.searching)
	assert.Equal(t, "", l.filters.Search)
	assert.Len(t, titles(l), 3)

	tm.key("/")
	tm.typeText("ATL")
	tm.key("enter")
	assert.False(t, tm.searching)
	assert.Equal(t, []string{"Atlas"}, titles(l))
}

func TestSearchWithNoMatchesShowsEmptyState(t *testing.T) {
	tm := newTestModel(t)
	tm.key("2")
	tm.loadPage(t, domain.PageProjects)

	tm.key("/")
	tm.typeText("zzz")
	tm.key("enter")

	assert.Contains(t, tm.View(), "No results match the current filters.")
}

func TestExperienceTypeFilter(t *testing.T) {
	tm := newTestModel(t)
	tm.key("3")
	l := tm.loadPage(t, domain.PageExperience)

	assert.Equal(t, domain.ExperienceTypes, l.filterOptions())
	for i := 0; i < len(domain.ExperienceTypes) && l.filters.Type != domain.ExperienceContract; i++ {
		tm.key("t")
	}
	require.Equal(t, domain.ExperienceContract, l.filters.Type)
	entries, _ := l.listing.Items.([]domain.Experience)
	require.Len(t, entries, 1)
	assert.Equal(t, "Initech", entries[0].Company)
}

func TestCollectionErrorIsReported(t *testing.T) {
	tm := newTestModel(t)
	tm.key("2")
	_, cmd := tm.Update(collectionMsg{page: domain.PageProjects, err: errors.New("api down")})

	assert.NotNil(t, cmd)
	l := tm.lists[domain.PageProjects]
	assert.False(t, l.loading)
	assert.False(t, l.loaded)
	msg, ok := tm.errorHandler.GetLatest()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "api down")
	assert.Contains(t, tm.View(), "press r to retry")
}

func TestOfflineCollectionWarns(t *testing.T) {
	tm := newTestModel(t)
	tm.backend.offline = true
	tm.key("2")
	tm.loadPage(t, domain.PageProjects)

	msg, ok := tm.errorHandler.GetLatest()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Offline")
	assert.Contains(t, tm.View(), "offline")
}

func TestOpenProjectShowsDetail(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)

	require.NotNil(t, tm.project)
	assert.Equal(t, "folio", tm.project.Slug)
	require.NotNil(t, tm.gallery)
	assert.Equal(t, 3, tm.gallery.Len())
	assert.False(t, tm.lightboxOpen())
	assert.Contains(t, tm.View(), "Folio")

	tm.key("esc")
	assert.Equal(t, screenProjects, tm.screen)
	assert.Nil(t, tm.gallery)
}

func TestOpenProjectErrorStaysOnList(t *testing.T) {
	tm := newTestModel(t)
	tm.backend.projectErr = errors.New("boom")
	tm.key("2")
	tm.loadPage(t, domain.PageProjects)

	tm.Update(tm.openSelected()())
	assert.Equal(t, screenProjects, tm.screen)
	assert.Nil(t, tm.gallery)
}

func TestLightboxNavigationAndClose(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)

	tm.key("enter")
	require.True(t, tm.lightboxOpen())
	assert.True(t, tm.host.scrollLocked)
	assert.Equal(t, gallery.FeaturedCaption, tm.gallery.Items()[0].Caption)

	tm.key("right")
	assert.Equal(t, 1, tm.gallery.State().CurrentIndex)
	tm.key("left")
	tm.key("left")
	assert.Equal(t, 2, tm.gallery.State().CurrentIndex)

	tm.key("+")
	assert.InDelta(t, 1.25, tm.gallery.State().ZoomLevel, 0.001)
	tm.key("0")
	assert.InDelta(t, 1.0, tm.gallery.State().ZoomLevel, 0.001)

	view := tm.View()
	assert.Contains(t, view, "3/3")
	assert.Contains(t, view, "image previews are disabled")

	tm.key("esc")
	assert.False(t, tm.lightboxOpen())
	assert.False(t, tm.host.scrollLocked)
	assert.Equal(t, screenProject, tm.screen)
}

func TestScrollIgnoredWhileLightboxOpen(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)
	tm.key("enter")

	tm.ui.viewport.SetYOffset(0)
	tm.scroll("down")
	assert.Equal(t, 0, tm.ui.viewport.YOffset)
}

func TestAutoplayAdvancesAndStopsWhenLeaving(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)
	tm.key("enter")
	pending := tm.clock.Pending()

	tm.key("space")
	require.True(t, tm.gallery.State().IsAutoplaying)
	assert.Equal(t, pending+1, tm.clock.Pending())

	tm.clock.Advance(gallery.DefaultAutoplayInterval)
	assert.Equal(t, 1, tm.gallery.State().CurrentIndex)
	tm.clock.Advance(gallery.DefaultAutoplayInterval)
	assert.Equal(t, 2, tm.gallery.State().CurrentIndex)

	tm.key("esc")
	tm.key("esc")
	assert.Equal(t, screenProjects, tm.screen)
	assert.Equal(t, pending, tm.clock.Pending())
}

func TestFullscreenIsConfirmedByTheHost(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)
	tm.key("enter")

	cmd := tm.key("f")
	assert.False(t, tm.gallery.State().IsFullscreen)
	require.NotNil(t, cmd)
	assert.Equal(t, []bool(nil), tm.host.requests)

	tm.Update(fullscreenMsg{on: true})
	assert.True(t, tm.gallery.State().IsFullscreen)

	tm.key("esc")
	assert.False(t, tm.gallery.State().IsFullscreen)
	tm.Update(fullscreenMsg{on: true})
	assert.False(t, tm.gallery.State().IsFullscreen)
}

func TestMouseDragChangesItem(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)
	tm.key("enter")

	tm.Update(tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	tm.Update(tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, tm.gallery.State().CurrentIndex)

	tm.Update(tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	tm.Update(tea.MouseMsg{X: 22, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, tm.gallery.State().CurrentIndex)

	tm.Update(tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Greater(t, tm.gallery.State().ZoomLevel, 1.0)
}

func TestClickOutsideClosesLightbox(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)
	tm.key("enter")

	tm.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, tm.lightboxOpen())
}

func TestPreviewResultsForStaleKeysAreIgnored(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)
	tm.key("enter")

	current := tm.art.key
	tm.Update(previewMsg{key: previewKey{ref: "/media/other.png"}, art: "stale"})
	assert.Equal(t, current, tm.art.key)
	assert.NotEqual(t, "stale", tm.art.art)

	tm.art.loading = true
	tm.Update(previewMsg{key: current, art: "drawn"})
	assert.Equal(t, "drawn", tm.art.art)
	assert.False(t, tm.art.loading)
}

func TestMaintenanceReplacesEveryScreen(t *testing.T) {
	tm := newTestModel(t)
	tm.Update(maintenanceMsg{status: domain.Maintenance{MaintenanceMode: true, MaintenanceMessage: "Back soon"}})

	view := tm.View()
	assert.Contains(t, view, "Under maintenance")
	assert.Contains(t, view, "Back soon")

	tm.key("2")
	assert.Equal(t, screenHome, tm.screen)

	tm.Update(maintenanceMsg{status: domain.Maintenance{}})
	assert.NotContains(t, tm.View(), "Under maintenance")
}

func TestTypewriterRunsOnlyOnHome(t *testing.T) {
	tm := newTestModel(t)
	tm.Update(rotatingTextsMsg{texts: domain.RotatingTexts{HeroTexts: []string{"Go"}, TypingSpeed: 10}})
	tm.typewriter.Start()

	tm.clock.Advance(10 * time.Millisecond)
	tm.clock.Advance(10 * time.Millisecond)
	assert.Equal(t, "Go", tm.typed)

	tm.key("2")
	assert.False(t, tm.typewriter.Running())
	tm.key("1")
	assert.True(t, tm.typewriter.Running())
}

func TestHomeShowsStats(t *testing.T) {
	tm := newTestModel(t)
	tm.Update(homeMsg{home: tm.backend.home})

	view := tm.View()
	assert.Contains(t, view, "Projects")
	assert.Contains(t, view, "7")
}

func TestContactValidationErrorsStayLocal(t *testing.T) {
	tm := newTestModel(t)
	tm.key("5")
	tm.key("enter")
	require.True(t, tm.contact.editing)

	tm.typeText("J")
	tm.key("ctrl+s")

	assert.Empty(t, tm.backend.submitted)
	assert.False(t, tm.contact.sending)
	assert.Equal(t, "Minimum 2 characters", contact.FieldError(tm.contact.errs, contact.FieldName))
	assert.Equal(t, "Email is required", contact.FieldError(tm.contact.errs, contact.FieldEmail))
	assert.Contains(t, tm.View(), "Email is required")
}

func TestContactSubmitAndSuccess(t *testing.T) {
	tm := newTestModel(t)
	tm.key("5")
	tm.key("enter")

	tm.typeText("Jane")
	tm.key("tab")
	tm.typeText("jane@example.com")
	tm.key("enter")
	tm.typeText("Hello there")
	tm.key("tab")
	tm.typeText("I would like to talk about a project.")

	cmd := tm.submitContact()
	require.NotNil(t, cmd)
	assert.True(t, tm.contact.sending)

	tm.Update(contactSentMsg{})
	assert.False(t, tm.contact.sending)
	assert.False(t, tm.contact.editing)
	assert.Equal(t, "", tm.contact.value().Name)
	msg, ok := tm.errorHandler.GetLatest()
	require.True(t, ok)
	assert.Equal(t, contact.SuccessMessage, msg.Text)
}

func TestContactSubmitFailureKeepsInput(t *testing.T) {
	tm := newTestModel(t)
	tm.key("5")
	tm.key("enter")
	tm.typeText("Jane")

	tm.contact.sending = true
	tm.Update(contactSentMsg{err: errors.New("failed to send message: api down")})

	assert.False(t, tm.contact.sending)
	assert.Equal(t, "Jane", tm.contact.value().Name)
	msg, ok := tm.errorHandler.GetLatest()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "failed to send message")
}

func TestContactKeysDoNotSwitchScreensWhileEditing(t *testing.T) {
	tm := newTestModel(t)
	tm.key("5")
	tm.key("enter")

	tm.key("2")
	assert.Equal(t, screenContact, tm.screen)
	assert.Equal(t, "2", tm.contact.value().Name)

	tm.key("esc")
	tm.key("2")
	assert.Equal(t, screenProjects, tm.screen)
}

func TestDispatchRunsCallbacksOnUpdate(t *testing.T) {
	tm := newTestModel(t)
	ran := false
	tm.Dispatch(func() { ran = true })
	assert.False(t, ran)

	tm.deliver()
	assert.True(t, ran)
}

func TestQuitDisposesTimers(t *testing.T) {
	tm := newTestModel(t)
	tm.openProject(t)
	tm.key("enter")
	tm.key("space")

	tm.key("1")
	assert.True(t, tm.lightboxOpen(), "lightbox consumes screen keys")

	cmd := tm.key("ctrl+c")
	require.NotNil(t, cmd)
	assert.True(t, tm.quitting)
	assert.Nil(t, tm.gallery)
	assert.Equal(t, 0, tm.clock.Pending())
	assert.Equal(t, "", tm.View())
}

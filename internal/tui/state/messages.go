package state

import (
	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
)

// callbackMsg carries a scheduler callback onto the update goroutine.
type callbackMsg struct {
	fn func()
}

// settingsMsg is sent when the site settings were fetched.
type settingsMsg struct {
	settings domain.SiteSettings
	err      error
}

// rotatingTextsMsg is sent when the hero texts were fetched.
type rotatingTextsMsg struct {
	texts domain.RotatingTexts
	err   error
}

// homeMsg is sent when the home aggregate was fetched.
type homeMsg struct {
	home domain.Home
	err  error
}

// collectionMsg is sent when the base collection of a list page was fetched.
type collectionMsg struct {
	page       domain.Page
	collection core.Collection
	err        error
}

// projectMsg is sent when a project detail was fetched.
type projectMsg struct {
	slug    string
	project domain.Project
	err     error
}

// previewMsg is sent when a gallery image was drawn.
type previewMsg struct {
	key previewKey
	art string
	err error
}

// fullscreenMsg reports the outcome of a fullscreen request.
type fullscreenMsg struct {
	on bool
}

// maintenanceMsg is sent by the poller when the status changed.
type maintenanceMsg struct {
	status domain.Maintenance
}

// contactSentMsg is sent when a contact submission finished.
type contactSentMsg struct {
	err error
}

// statusExpiredMsg triggers a redraw once a status message timed out.
type statusExpiredMsg struct{}

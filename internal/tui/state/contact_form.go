package state

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/folio/internal/contact"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/errors"
	"github.com/cristianoliveira/folio/internal/tui/render"
)

const (
	formInputWidth   = 60
	formMessageLines = 6
)

var fieldLabels = map[string]string{
	contact.FieldName:    "Name",
	contact.FieldEmail:   "Email",
	contact.FieldSubject: "Subject",
	contact.FieldMessage: "Message",
}

// contactForm holds the inputs of the contact screen. The message field is a
// textarea; the others are single-line inputs.
type contactForm struct {
	inputs  map[string]*textinput.Model
	message textarea.Model
	focus   int
	editing bool
	sending bool
	errs    error
}

func newContactForm() *contactForm {
	f := &contactForm{inputs: make(map[string]*textinput.Model)}
	for _, name := range contact.Fields {
		if name == contact.FieldMessage {
			continue
		}
		in := textinput.New()
		in.Prompt = "  "
		in.Placeholder = fieldLabels[name]
		in.Width = formInputWidth
		in.CharLimit = 200
		f.inputs[name] = &in
	}
	f.message = textarea.New()
	f.message.Placeholder = "Tell me about your project…"
	f.message.SetWidth(formInputWidth)
	f.message.SetHeight(formMessageLines)
	f.message.CharLimit = contact.MaxMessageLength
	f.message.ShowLineNumbers = false
	return f
}

func (f *contactForm) focusedField() string {
	return contact.Fields[f.focus]
}

// setFocus focuses field i and blurs the others.
func (f *contactForm) setFocus(i int) tea.Cmd {
	n := len(contact.Fields)
	f.focus = (i%n + n) % n
	for _, in := range f.inputs {
		in.Blur()
	}
	f.message.Blur()
	if f.focusedField() == contact.FieldMessage {
		return f.message.Focus()
	}
	return f.inputs[f.focusedField()].Focus()
}

func (f *contactForm) start() tea.Cmd {
	f.editing = true
	return f.setFocus(f.focus)
}

func (f *contactForm) stop() {
	f.editing = false
	for _, in := range f.inputs {
		in.Blur()
	}
	f.message.Blur()
}

// value assembles the message from the inputs.
func (f *contactForm) value() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    f.inputs[contact.FieldName].Value(),
		Email:   f.inputs[contact.FieldEmail].Value(),
		Subject: f.inputs[contact.FieldSubject].Value(),
		Message: f.message.Value(),
	}
}

func (f *contactForm) clear() {
	for _, in := range f.inputs {
		in.SetValue("")
	}
	f.message.Reset()
	f.errs = nil
	f.focus = 0
}

// update forwards msg to the focused input.
func (f *contactForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focusedField() == contact.FieldMessage {
		f.message, cmd = f.message.Update(msg)
		return cmd
	}
	in := f.inputs[f.focusedField()]
	*in, cmd = in.Update(msg)
	return cmd
}

func (f *contactForm) fields() []render.ContactField {
	out := make([]render.ContactField, 0, len(contact.Fields))
	for i, name := range contact.Fields {
		view := ""
		if name == contact.FieldMessage {
			view = f.message.View()
		} else {
			view = f.inputs[name].View()
		}
		out = append(out, render.ContactField{
			Label:   fieldLabels[name],
			View:    view,
			Error:   contact.FieldError(f.errs, name),
			Focused: i == f.focus,
		})
	}
	return out
}

// handleContactKey drives the form. Outside editing mode the screen behaves
// like the others; enter starts editing.
func (m *Model) handleContactKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	f := m.contact
	if !f.editing {
		switch msg.String() {
		case "enter", "i":
			return f.start(), true
		}
		return nil, false
	}
	if f.sending {
		return nil, msg.String() != "ctrl+c"
	}
	switch msg.String() {
	case "esc":
		f.stop()
		return nil, true
	case "tab":
		return f.setFocus(f.focus + 1), true
	case "shift+tab":
		return f.setFocus(f.focus - 1), true
	case "ctrl+s":
		return m.submitContact(), true
	case "enter":
		if f.focusedField() != contact.FieldMessage {
			return f.setFocus(f.focus + 1), true
		}
	case "ctrl+c":
		return nil, false
	}
	return f.update(msg), true
}

// submitContact validates locally and sends the message in the background.
func (m *Model) submitContact() tea.Cmd {
	f := m.contact
	msg := contact.Normalize(f.value())
	if err := contact.Validate(msg); err != nil {
		f.errs = err
		errors.Report(m.errorHandler, err)
		return m.statusTick()
	}
	f.errs = nil
	f.sending = true

	backend, ctx, timeout := m.opts.Backend, m.ctx, m.opts.RequestTimeout
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return contactSentMsg{err: contact.Submit(ctx, backend, msg)}
	})
}

func (m *Model) handleContactSent(msg contactSentMsg) tea.Cmd {
	f := m.contact
	f.sending = false
	if msg.err != nil {
		f.errs = msg.err
		errors.Report(m.errorHandler, msg.err)
		return m.statusTick()
	}
	f.clear()
	f.stop()
	m.errorHandler.Success(contact.SuccessMessage)
	return m.statusTick()
}

func (m *Model) contactView() string {
	sending := ""
	if m.contact.sending {
		sending = m.spinner.View()
	}
	return render.Contact(m.styles, render.ContactState{
		Site:    m.site,
		Fields:  m.contact.fields(),
		Sending: strings.TrimSpace(sending),
		Editing: m.contact.editing,
	}, m.ui.Width())
}

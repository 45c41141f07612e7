// Package errors turns failures into user-facing messages for the CLI and
// the terminal UI.
package errors

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/cristianoliveira/folio/internal/api"
	"github.com/cristianoliveira/folio/internal/contact"
)

// ErrorHandler receives user-facing messages.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console printer behind a CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput.
type CLIHandler struct {
	colors     ColorOutput
	mu         sync.Mutex
	inHandling bool
	errors     int
}

// NewCLIHandler creates a CLIHandler.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

// Error prints msg. A nested call made while printing goes straight to the
// output without touching the handler state.
func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.colors.Error(msg)
		return
	}
	h.inHandling = true
	h.errors++
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()

	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) { h.colors.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.colors.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.colors.Success(msg) }

// Errors returns how many errors were reported.
func (h *CLIHandler) Errors() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errors
}

// MessageType is the severity of a Message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeInfo:
		return "info"
	case MessageTypeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Describe maps an error to the message shown to a visitor.
func Describe(err error) (MessageType, string) {
	var validation *contact.ValidationError
	switch {
	case err == nil:
		return MessageTypeInfo, ""
	case stderrors.As(err, &validation):
		return MessageTypeWarning, "Please fix the highlighted fields: " + validation.Error()
	case stderrors.Is(err, context.Canceled):
		return MessageTypeInfo, "Cancelled."
	case stderrors.Is(err, context.DeadlineExceeded):
		return MessageTypeError, "The request timed out. Please try again."
	case stderrors.Is(err, api.ErrUnauthorized):
		return MessageTypeError, "The portfolio API rejected the configured token."
	case stderrors.Is(err, api.ErrNotFound):
		return MessageTypeWarning, api.Detail(err, "Not found.")
	case stderrors.Is(err, api.ErrUnavailable):
		return MessageTypeError, "The portfolio API is unreachable. Check api_url or try again later."
	default:
		return MessageTypeError, api.Detail(err, err.Error())
	}
}

// Report sends err to h at the severity Describe assigns. Nil is ignored.
func Report(h ErrorHandler, err error) {
	if err == nil {
		return
	}
	typ, msg := Describe(err)
	switch typ {
	case MessageTypeWarning:
		h.Warning(msg)
	case MessageTypeInfo:
		h.Info(msg)
	default:
		h.Error(msg)
	}
}

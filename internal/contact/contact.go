// Package contact validates and submits contact form messages.
package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid contact message")

// Field names, in form order.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

const (
	MinNameLength    = 2
	MinSubjectLength = 5
	MinMessageLength = 20
	MaxMessageLength = 2000
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// ValidationError maps field names to the reason they were rejected.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return fieldOrder(names[i]) < fieldOrder(names[j]) })
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "please fix the errors in the form: " + strings.Join(parts, "; ")
}

// Unwrap makes errors.Is(err, ErrInvalid) hold.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

func fieldOrder(name string) int {
	for i, f := range Fields {
		if f == name {
			return i
		}
	}
	return len(Fields)
}

// Normalize trims surrounding whitespace from every field.
func Normalize(msg domain.ContactMessage) domain.ContactMessage {
	return domain.ContactMessage{
		Name:    strings.TrimSpace(msg.Name),
		Email:   strings.TrimSpace(msg.Email),
		Subject: strings.TrimSpace(msg.Subject),
		Message: strings.TrimSpace(msg.Message),
	}
}

// Validate checks msg against the form rules. It returns a *ValidationError
// or nil.
func Validate(msg domain.ContactMessage) error {
	msg = Normalize(msg)
	fields := make(map[string]string)

	switch {
	case msg.Name == "":
		fields[FieldName] = "Name is required"
	case utf8.RuneCountInString(msg.Name) < MinNameLength:
		fields[FieldName] = fmt.Sprintf("Minimum %d characters", MinNameLength)
	}

	switch {
	case msg.Email == "":
		fields[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(msg.Email):
		fields[FieldEmail] = "Invalid email"
	}

	switch {
	case msg.Subject == "":
		fields[FieldSubject] = "Subject is required"
	case utf8.RuneCountInString(msg.Subject) < MinSubjectLength:
		fields[FieldSubject] = fmt.Sprintf("Minimum %d characters", MinSubjectLength)
	}

	n := utf8.RuneCountInString(msg.Message)
	switch {
	case msg.Message == "":
		fields[FieldMessage] = "Message is required"
	case n < MinMessageLength:
		fields[FieldMessage] = fmt.Sprintf("Minimum %d characters", MinMessageLength)
	case n > MaxMessageLength:
		fields[FieldMessage] = fmt.Sprintf("Maximum %d characters", MaxMessageLength)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// FieldError returns the validation message for field, if any.
func FieldError(err error, field string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields[field]
	}
	return ""
}

// Submitter delivers a validated message.
type Submitter interface {
	SubmitContact(ctx context.Context, msg domain.ContactMessage) error
}

// SuccessMessage is shown after a message was accepted.
const SuccessMessage = "Message sent successfully! I'll respond within 24 hours."

// Submit validates msg and sends it through s.
func Submit(ctx context.Context, s Submitter, msg domain.ContactMessage) error {
	msg = Normalize(msg)
	if err := Validate(msg); err != nil {
		return err
	}
	if err := s.SubmitContact(ctx, msg); err != nil {
		logging.Error("contact: submit failed", "error", err)
		return fmt.Errorf("failed to send message: %w", err)
	}
	logging.Info("contact: message sent", "subject", msg.Subject)
	return nil
}

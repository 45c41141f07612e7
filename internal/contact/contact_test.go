package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello there",
		Message: "I would like to talk about a project.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*domain.ContactMessage)
		field  string
		want   string
	}{
		{"missing name", func(m *domain.ContactMessage) { m.Name = "  " }, FieldName, "Name is required"},
		{"short name", func(m *domain.ContactMessage) { m.Name = "A" }, FieldName, "Minimum 2 characters"},
		{"missing email", func(m *domain.ContactMessage) { m.Email = "" }, FieldEmail, "Email is required"},
		{"bad email", func(m *domain.ContactMessage) { m.Email = "ada@example" }, FieldEmail, "Invalid email"},
		{"missing subject", func(m *domain.ContactMessage) { m.Subject = "" }, FieldSubject, "Subject is required"},
		{"short subject", func(m *domain.ContactMessage) { m.Subject = "Hey" }, FieldSubject, "Minimum 5 characters"},
		{"missing message", func(m *domain.ContactMessage) { m.Message = "" }, FieldMessage, "Message is required"},
		{"short message", func(m *domain.ContactMessage) { m.Message = "too short" }, FieldMessage, "Minimum 20 characters"},
		{"long message", func(m *domain.ContactMessage) { m.Message = strings.Repeat("x", 2001) }, FieldMessage, "Maximum 2000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validMessage()
			tt.modify(&msg)
			err := Validate(msg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, tt.want, FieldError(err, tt.field))
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, Validate(validMessage()))

	msg := validMessage()
	msg.Email = "Ada.Lovelace+folio@Example.CO.UK"
	msg.Message = strings.Repeat("x", 2000)
	assert.NoError(t, Validate(msg))
}

func TestValidationErrorListsFieldsInFormOrder(t *testing.T) {
	err := Validate(domain.ContactMessage{})
	require.Error(t, err)
	msg := err.Error()
	assert.Less(t, strings.Index(msg, "name:"), strings.Index(msg, "email:"))
	assert.Less(t, strings.Index(msg, "subject:"), strings.Index(msg, "message:"))
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) SubmitContact(ctx context.Context, msg domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func TestSubmitSendsNormalizedMessage(t *testing.T) {
	s := &mockSubmitter{}
	msg := validMessage()
	s.On("SubmitContact", mock.Anything, msg).Return(nil).Once()

	padded := msg
	padded.Name = "  Ada "
	require.NoError(t, Submit(context.Background(), s, padded))
	s.AssertExpectations(t)
}

func TestSubmitDoesNotSendInvalidMessage(t *testing.T) {
	s := &mockSubmitter{}
	err := Submit(context.Background(), s, domain.ContactMessage{Name: "Ada"})
	assert.ErrorIs(t, err, ErrInvalid)
	s.AssertNotCalled(t, "SubmitContact", mock.Anything, mock.Anything)
}

func TestSubmitWrapsBackendError(t *testing.T) {
	s := &mockSubmitter{}
	backend := errors.New("rate limited")
	s.On("SubmitContact", mock.Anything, mock.Anything).Return(backend)

	err := Submit(context.Background(), s, validMessage())
	assert.ErrorIs(t, err, backend)
	assert.NotErrorIs(t, err, ErrInvalid)
}

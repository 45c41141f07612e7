package errors

import (
	"sync"
	"time"
)

// DefaultMessageTTL is how long a status message stays visible in the TUI.
const DefaultMessageTTL = 5 * time.Second

// maxMessages bounds the history kept by a TUIHandler.
const maxMessages = 50

// Message is a status line entry shown by the TUI.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// Expired reports whether the message is older than ttl at now.
func (m Message) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(m.Timestamp) >= ttl
}

// TUIHandler stores messages for display in the status bar.
type TUIHandler struct {
	mu       sync.RWMutex
	messages []Message
	onAdd    func(msg Message)
	now      func() time.Time
}

// NewTUIHandler creates a handler. onAdd, if not nil, is called for every
// new message; the TUI uses it to schedule a redraw.
func NewTUIHandler(onAdd func(msg Message)) *TUIHandler {
	return &TUIHandler{onAdd: onAdd, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

func (h *TUIHandler) add(text string, typ MessageType) {
	h.mu.Lock()
	msg := Message{Text: text, Type: typ, Timestamp: h.now()}
	h.messages = append(h.messages, msg)
	if len(h.messages) > maxMessages {
		h.messages = append([]Message(nil), h.messages[len(h.messages)-maxMessages:]...)
	}
	cb := h.onAdd
	h.mu.Unlock()

	if cb != nil {
		cb(msg)
	}
}

// GetLatest returns the newest message.
func (h *TUIHandler) GetLatest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Visible returns the newest message if it is younger than ttl.
func (h *TUIHandler) Visible(ttl time.Duration) (Message, bool) {
	msg, ok := h.GetLatest()
	if !ok || msg.Expired(h.now(), ttl) {
		return Message{}, false
	}
	return msg, true
}

// Clear drops all messages.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

// GetAll returns a copy of the stored messages, oldest first.
func (h *TUIHandler) GetAll() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	copied := make([]Message, len(h.messages))
	copy(copied, h.messages)
	return copied
}

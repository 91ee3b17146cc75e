package core

// TextMessage is an outbound text notification to a single contact number.
type TextMessage struct {
	Contact string // phone number, international format
	Body    string
}

func (m *TextMessage) HasRecipient() bool { return m.Contact != "" }
func (m *TextMessage) HasContent() bool   { return m.Body != "" }

// NotificationService is any service that can deliver text notifications.
type NotificationService interface {
	// SendMessages sends messages concurrently
	SendMessages(messages ...*TextMessage)
}

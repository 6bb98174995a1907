package domain

import "time"

// NoticeLevel is the severity shown to the user
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-visible message produced when a submission completes
type Notice struct {
	ID        string      `json:"id"`
	Level     NoticeLevel `json:"level"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

// MessageType is the envelope type pushed over the notice WebSocket
type MessageType string

const (
	MessageTypeNotice MessageType = "notice" // Submission finished
	MessageTypeState  MessageType = "state"  // Lifecycle changed
)

// Message is the envelope written to notice WebSocket clients
type Message struct {
	Type   MessageType `json:"type"`
	Notice *Notice     `json:"notice,omitempty"`
	State  SubmitState `json:"state"`
	Mode   Mode        `json:"mode,omitempty"`
	SentAt time.Time   `json:"sent_at"`
}

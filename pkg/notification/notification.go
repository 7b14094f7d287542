package notification

import "time"

// Notification is a fully rendered outbound message.
// It is immutable once constructed.
type Notification struct {
	SubjectLine string
	HTMLBody    string
	TextBody    string
	ReplyTo     string
	SentAt      time.Time
}

package mailer

import "errors"

var (
	// ErrNotConfigured indicates the transport capability could not be
	// constructed because required configuration is missing.
	ErrNotConfigured = errors.New("mail transport is not configured")

	// ErrSendFailed indicates the transport rejected or failed a delivery.
	ErrSendFailed = errors.New("failed to send email")
)

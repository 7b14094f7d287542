package mailer

import "context"

// Sender is the minimal interface mail providers implement.
// Send performs exactly one delivery attempt; retry policy, if any, belongs
// to the caller.
type Sender interface {
	Send(ctx context.Context, email *Email) (*Receipt, error)
}

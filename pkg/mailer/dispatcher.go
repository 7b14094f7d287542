package mailer

import (
	"context"
	"errors"

	"github.com/dmitrymomot/contactform/pkg/notification"
)

// State classifies a dispatch attempt.
type State int

const (
	// StateSent: the transport accepted the message.
	StateSent State = iota
	// StateUnavailable: the transport capability was never constructed
	// (missing credentials or destination) — no send was attempted.
	StateUnavailable
	// StateFailed: the transport attempted and failed the delivery.
	StateFailed
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StateSent:
		return "sent"
	case StateUnavailable:
		return "unavailable"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the total classification of one dispatch.
// Err carries transport detail for logging only; it must never be surfaced
// to the submitter.
type Outcome struct {
	Err       error
	ReceiptID string
	State     State
}

// Sent builds a successful outcome carrying the transport receipt.
func Sent(receiptID string) Outcome {
	return Outcome{State: StateSent, ReceiptID: receiptID}
}

// Unavailable builds the configuration-failure outcome.
func Unavailable() Outcome {
	return Outcome{State: StateUnavailable, Err: ErrNotConfigured}
}

// Failed builds the runtime-failure outcome wrapping the transport error.
func Failed(err error) Outcome {
	return Outcome{State: StateFailed, Err: errors.Join(ErrSendFailed, err)}
}

// Dispatcher relays rendered notifications to the fixed destination.
type Dispatcher struct {
	sender Sender
	from   string
	to     string
}

// NewDispatcher creates a dispatcher. A nil sender or empty destination
// yields a dispatcher that reports StateUnavailable without attempting
// sends, so a misconfigured service still answers requests.
func NewDispatcher(sender Sender, from, to string) *Dispatcher {
	return &Dispatcher{sender: sender, from: from, to: to}
}

// Available reports whether a send would be attempted.
func (d *Dispatcher) Available() bool {
	return d != nil && d.sender != nil && d.to != ""
}

// Dispatch performs a single delivery attempt for the notification.
// It never returns an error: every failure mode is folded into the Outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, n *notification.Notification) Outcome {
	if !d.Available() {
		return Unavailable()
	}

	receipt, err := d.sender.Send(ctx, &Email{
		From:    d.from,
		To:      []string{d.to},
		ReplyTo: n.ReplyTo,
		Subject: n.SubjectLine,
		HTML:    n.HTMLBody,
		Text:    n.TextBody,
	})
	if err != nil {
		return Failed(err)
	}

	return Sent(receipt.ID)
}

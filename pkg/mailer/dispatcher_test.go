package mailer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/mailer"
	"github.com/dmitrymomot/contactform/pkg/notification"
)

// MockSender is a testify mock of the Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	args := m.Called(ctx, email)
	if r := args.Get(0); r != nil {
		return r.(*mailer.Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func testNotification() *notification.Notification {
	return &notification.Notification{
		SubjectLine: "[Contact Form] Hi there",
		HTMLBody:    "<html><body>hello</body></html>",
		TextBody:    "hello",
		ReplyTo:     "jo@example.com",
		SentAt:      time.Now().UTC(),
	}
}

func TestDispatcher_Sent(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(email *mailer.Email) bool {
		return email.From == "noreply@acme.test" &&
			len(email.To) == 1 && email.To[0] == "owner@acme.test" &&
			email.ReplyTo == "jo@example.com" &&
			email.Subject == "[Contact Form] Hi there" &&
			email.HTML != "" && email.Text != ""
	})).Return(&mailer.Receipt{ID: "msg-123"}, nil)

	d := mailer.NewDispatcher(sender, "noreply@acme.test", "owner@acme.test")

	outcome := d.Dispatch(context.Background(), testNotification())

	assert.Equal(t, mailer.StateSent, outcome.State)
	assert.Equal(t, "msg-123", outcome.ReceiptID)
	assert.NoError(t, outcome.Err)
	sender.AssertExpectations(t)
}

func TestDispatcher_UnavailableWithoutSender(t *testing.T) {
	t.Parallel()

	d := mailer.NewDispatcher(nil, "noreply@acme.test", "owner@acme.test")

	outcome := d.Dispatch(context.Background(), testNotification())

	assert.Equal(t, mailer.StateUnavailable, outcome.State)
	require.ErrorIs(t, outcome.Err, mailer.ErrNotConfigured)
	assert.False(t, d.Available())
}

func TestDispatcher_UnavailableWithoutDestination(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	d := mailer.NewDispatcher(sender, "noreply@acme.test", "")

	outcome := d.Dispatch(context.Background(), testNotification())

	assert.Equal(t, mailer.StateUnavailable, outcome.State)
	sender.AssertNotCalled(t, "Send")
}

func TestDispatcher_Failed(t *testing.T) {
	t.Parallel()

	transportErr := errors.New("550 relay denied")
	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil, transportErr)

	d := mailer.NewDispatcher(sender, "noreply@acme.test", "owner@acme.test")

	outcome := d.Dispatch(context.Background(), testNotification())

	assert.Equal(t, mailer.StateFailed, outcome.State)
	require.ErrorIs(t, outcome.Err, mailer.ErrSendFailed)
	require.ErrorIs(t, outcome.Err, transportErr)
	assert.Empty(t, outcome.ReceiptID)
	// One attempt only.
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sent", mailer.StateSent.String())
	assert.Equal(t, "unavailable", mailer.StateUnavailable.String())
	assert.Equal(t, "failed", mailer.StateFailed.String())
}

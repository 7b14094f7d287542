// Package contact implements the submission pipeline: admission control,
// validation, rendering, and transport dispatch, plus its HTTP surface.
package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/mailer"
	"github.com/dmitrymomot/contactform/pkg/notification"
	"github.com/dmitrymomot/contactform/pkg/ratelimit"
)

// Service orchestrates one submission from admission to dispatch.
// Per request: admission check → validation → rendering → dispatch; each
// stage either advances or produces a terminal response.
type Service struct {
	limiter    *ratelimit.Limiter
	renderer   *notification.Renderer
	dispatcher *mailer.Dispatcher
	log        *slog.Logger
	now        func() time.Time
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock injects the clock used for notification timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the submission orchestrator.
func NewService(limiter *ratelimit.Limiter, renderer *notification.Renderer, dispatcher *mailer.Dispatcher, opts ...ServiceOption) *Service {
	s := &Service{
		limiter:    limiter,
		renderer:   renderer,
		dispatcher: dispatcher,
		log:        logger.NewNope(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit runs the pipeline for one raw submission and returns the terminal
// response. All objects derived from the submission are discarded when this
// returns; only the admission record outlives the call.
func (s *Service) Submit(ctx context.Context, raw form.Submission, sourceID string) Response {
	allowed, err := s.limiter.Allow(ctx, sourceID)
	if err != nil {
		// Fail open: the limiter already admitted the attempt.
		s.log.WarnContext(ctx, "admission store error",
			slog.String("source", sourceID),
			slog.String("error", err.Error()),
		)
	}
	if !allowed {
		s.log.InfoContext(ctx, "submission rate limited", slog.String("source", sourceID))
		return rateLimited()
	}

	result := form.Validate(raw)
	if !result.Valid() {
		s.log.InfoContext(ctx, "submission rejected",
			slog.String("source", sourceID),
			slog.Int("error_count", len(result.Errors)),
		)
		return rejected(result.Errors)
	}

	n, err := s.renderer.Render(*result.Sanitized, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "notification rendering failed", slog.String("error", err.Error()))
		return failed()
	}

	outcome := s.dispatcher.Dispatch(ctx, n)
	switch outcome.State {
	case mailer.StateSent:
		s.log.InfoContext(ctx, "submission delivered",
			slog.String("receipt_id", outcome.ReceiptID),
			slog.String("reply_to", n.ReplyTo),
		)
		return delivered()
	case mailer.StateUnavailable:
		s.log.ErrorContext(ctx, "mail transport unavailable, submission dropped")
		return unavailable()
	default:
		// Detail is logged for operators and never surfaced.
		s.log.ErrorContext(ctx, "mail transport send failed", slog.String("error", outcome.Err.Error()))
		return failed()
	}
}

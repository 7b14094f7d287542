// Command server runs the contact form submission service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/contactform/internal/config"
	"github.com/dmitrymomot/contactform/internal/contact"
	"github.com/dmitrymomot/contactform/internal/middleware"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/mailer"
	resendmail "github.com/dmitrymomot/contactform/pkg/mailer/resend"
	smtpmail "github.com/dmitrymomot/contactform/pkg/mailer/smtp"
	"github.com/dmitrymomot/contactform/pkg/notification"
	"github.com/dmitrymomot/contactform/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Sentry, middleware.RequestIDExtractor())

	// A missing transport keeps the service up: submissions get the
	// unavailable response instead of the process refusing to start.
	sender := buildSender(cfg, log)
	dispatcher := mailer.NewDispatcher(sender, cfg.From, cfg.Recipient)
	if !dispatcher.Available() {
		log.Warn("mail dispatch disabled: transport or recipient not configured")
	}

	store, storeShutdown, err := buildStore(cfg, log)
	if err != nil {
		log.Error("admission store setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var rendererOpts []notification.Option
	if cfg.SubjectPrefix != "" {
		rendererOpts = append(rendererOpts, notification.WithSubjectPrefix(cfg.SubjectPrefix))
	}

	svc := contact.NewService(
		ratelimit.New(store, cfg.RateLimitWindow, cfg.RateLimitMax),
		notification.NewRenderer(rendererOpts...),
		dispatcher,
		contact.WithLogger(log),
	)

	handler := contact.NewHandler(svc,
		contact.WithTrustProxy(cfg.TrustProxy),
		contact.WithHandlerLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(cfg.CORSOrigin))
	handler.Routes(r)

	err = runServer(runtimeConfig{
		handler:         r,
		address:         cfg.Addr,
		logger:          log,
		shutdownTimeout: cfg.ShutdownTimeout,
		shutdownHooks:   []shutdownHook{storeShutdown},
	})
	if err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildSender constructs the configured mail transport. Incomplete
// credentials produce a nil sender, not an error.
func buildSender(cfg config.Config, log *slog.Logger) mailer.Sender {
	switch cfg.Provider {
	case config.ProviderResend:
		s, err := resendmail.New(cfg.Resend)
		if err != nil {
			logSenderError(log, cfg.Provider, err)
			return nil
		}
		return s
	default:
		s, err := smtpmail.New(cfg.SMTP)
		if err != nil {
			logSenderError(log, cfg.Provider, err)
			return nil
		}
		return s
	}
}

func logSenderError(log *slog.Logger, provider string, err error) {
	if errors.Is(err, mailer.ErrNotConfigured) {
		log.Warn("mail transport not configured",
			slog.String("provider", provider),
			slog.String("error", err.Error()),
		)
		return
	}
	log.Error("mail transport setup failed",
		slog.String("provider", provider),
		slog.String("error", err.Error()),
	)
}

// buildStore picks the admission record store: Redis when a URL is
// configured (shared across replicas), in-process memory otherwise.
func buildStore(cfg config.Config, log *slog.Logger) (ratelimit.Store, shutdownHook, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(opt)
		log.Info("admission records in redis", slog.String("addr", opt.Addr))
		return ratelimit.NewRedis(client, cfg.RateLimitWindow), func(context.Context) error {
			return client.Close()
		}, nil
	}

	store := ratelimit.NewMemory(cfg.RateLimitWindow)
	return store, func(context.Context) error {
		return store.Close()
	}, nil
}

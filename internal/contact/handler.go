package contact

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/logger"
)

// maxBodyBytes bounds the request body well above the largest valid
// submission (message max 2000 chars) while rejecting abusive payloads.
const maxBodyBytes = 64 << 10

// Handler exposes the submission pipeline over HTTP.
type Handler struct {
	svc        *Service
	log        *slog.Logger
	trustProxy bool
}

// HandlerOption configures the handler.
type HandlerOption func(*Handler)

// WithTrustProxy makes the handler honor X-Forwarded-For when deriving the
// source identity. Enable only behind a trusted reverse proxy: otherwise
// clients can spoof their identity and dodge rate limiting.
func WithTrustProxy(trust bool) HandlerOption {
	return func(h *Handler) {
		h.trustProxy = trust
	}
}

// WithHandlerLogger sets the handler logger.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// NewHandler creates the HTTP handler around the submission service.
func NewHandler(svc *Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc: svc,
		log: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Routes declares the handler's routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/contact", h.submit)
	r.Get("/health", h.health)
	r.Get("/health/live", h.live)
}

// submit accepts one contact form submission.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var raw form.Submission

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil {
		h.log.InfoContext(r.Context(), "malformed submission body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, Response{
			State:   StateRejected,
			Message: msgRejected,
			Errors:  []string{"request body must be a valid JSON object"},
		})
		return
	}

	resp := h.svc.Submit(r.Context(), raw, h.sourceIdentity(r))
	writeJSON(w, resp.State.HTTPStatus(), resp)
}

// health is the JSON liveness probe.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// live is a plain-text probe for container orchestrators.
func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// sourceIdentity derives the rate-limiting key for a request: the client
// IP, taken from X-Forwarded-For only when the deployment trusts its proxy.
// Behind a shared proxy without TrustProxy, distinct users conflate into
// one identity — a deployment configuration concern.
func (h *Handler) sourceIdentity(r *http.Request) string {
	if h.trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			// First entry is the original client.
			if ip, _, ok := strings.Cut(fwd, ","); ok {
				return strings.TrimSpace(ip)
			}
			return strings.TrimSpace(fwd)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

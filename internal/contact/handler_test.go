package contact_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/internal/contact"
	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/mailer"
)

func newTestRouter(t *testing.T, sender mailer.Sender, opts ...contact.HandlerOption) http.Handler {
	t.Helper()

	h := contact.NewHandler(newService(t, sender), opts...)
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func postSubmission(t *testing.T, router http.Handler, body any, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remoteAddr

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) contact.Response {
	t.Helper()

	var resp contact.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_SubmitDelivered(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(&mailer.Receipt{ID: "r-1"}, nil)

	router := newTestRouter(t, sender)
	rec := postSubmission(t, router, validSubmission(), "203.0.113.7:51234")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestHandler_SubmitValidationFailure(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &MockSender{})
	rec := postSubmission(t, router, form.Submission{
		Name:    "J",
		Email:   "bad",
		Subject: "Hi",
		Message: "short",
	}, "203.0.113.7:51234")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Len(t, resp.Errors, 4)
}

func TestHandler_SubmitMalformedJSON(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &MockSender{})

	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString("{not json"))
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Errors)
}

func TestHandler_RateLimitStatus(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(&mailer.Receipt{ID: "r"}, nil)

	router := newTestRouter(t, sender)

	for i := 0; i < 5; i++ {
		rec := postSubmission(t, router, validSubmission(), "203.0.113.9:40000")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := postSubmission(t, router, validSubmission(), "203.0.113.9:40000")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Errors)
}

func TestHandler_TransportUnavailableStatus(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	rec := postSubmission(t, router, validSubmission(), "203.0.113.7:51234")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_SourceIdentityFromProxyHeader(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(&mailer.Receipt{ID: "r"}, nil)

	router := newTestRouter(t, sender, contact.WithTrustProxy(true))

	// All requests arrive from the same proxy address but distinct
	// forwarded clients: each gets its own admission window.
	send := func(client string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(validSubmission()))
		req := httptest.NewRequest(http.MethodPost, "/api/contact", &buf)
		req.RemoteAddr = "10.0.0.1:9999"
		req.Header.Set("X-Forwarded-For", client+", 10.0.0.1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 6; i++ {
		send("198.51.100.1")
	}
	rec := send("198.51.100.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = send("198.51.100.2")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &MockSender{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandler_LivenessProbe(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &MockSender{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

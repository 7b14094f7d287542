package contact

import "net/http"

// State is the terminal state of one submission.
type State int

const (
	StateDelivered State = iota
	StateRejected
	StateRateLimited
	StateUnavailable
	StateFailed
)

// HTTPStatus maps a terminal state to a response status code.
func (s State) HTTPStatus() int {
	switch s {
	case StateDelivered:
		return http.StatusOK
	case StateRejected:
		return http.StatusBadRequest
	case StateRateLimited:
		return http.StatusTooManyRequests
	case StateUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// User-facing messages. A small fixed set: error detail never reaches the
// submitter.
const (
	msgDelivered   = "Your message has been sent. Thank you!"
	msgRejected    = "Please correct the errors below and try again."
	msgRateLimited = "Too many messages from your address. Please try again later."
	msgUnavailable = "The contact service is temporarily unavailable. Please try again later."
	msgFailed      = "Your message could not be sent. Please try again later."
)

// Response is the submission result returned to the client.
type Response struct {
	State   State    `json:"-"`
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func delivered() Response {
	return Response{State: StateDelivered, Success: true, Message: msgDelivered}
}

func rejected(errs []string) Response {
	return Response{State: StateRejected, Message: msgRejected, Errors: errs}
}

func rateLimited() Response {
	return Response{State: StateRateLimited, Message: msgRateLimited}
}

func unavailable() Response {
	return Response{State: StateUnavailable, Message: msgUnavailable}
}

func failed() Response {
	return Response{State: StateFailed, Message: msgFailed}
}

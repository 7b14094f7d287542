package form

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field length bounds. Values above the maximums are truncated during
// sanitization; values below the minimums fail validation.
const (
	MinNameLen    = 2
	MaxNameLen    = 100
	MaxEmailLen   = 100
	MinSubjectLen = 3
	MaxSubjectLen = 200
	MinMessageLen = 10
	MaxMessageLen = 2000
)

// emailPattern is deliberately conservative: local@domain.tld shape only.
// No DNS or MX verification is performed.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission holds the raw form fields as received from the client.
// It is transient: validated once and discarded.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Normalized is a submission whose fields are trimmed, length-bounded and,
// for the email, lowercased. Fields are never mutated downstream.
type Normalized struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Result is the outcome of validating a raw submission.
// Invariant: Sanitized is non-nil iff Errors is empty.
type Result struct {
	Errors    []string
	Sanitized *Normalized
}

// Valid reports whether the submission passed all checks.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Validate checks a raw submission and returns every field error found,
// together with the sanitized fields when all checks pass. The four checks
// run independently so the caller can report all problems in one pass.
func Validate(raw Submission) Result {
	var errs []string

	name := truncate(strings.TrimSpace(raw.Name), MaxNameLen)
	if utf8.RuneCountInString(name) < MinNameLen {
		errs = append(errs, fmt.Sprintf("name must be at least %d characters", MinNameLen))
	}

	email := truncate(strings.ToLower(strings.TrimSpace(raw.Email)), MaxEmailLen)
	if !emailPattern.MatchString(email) {
		errs = append(errs, "email must be a valid email address")
	}

	subject := truncate(strings.TrimSpace(raw.Subject), MaxSubjectLen)
	if utf8.RuneCountInString(subject) < MinSubjectLen {
		errs = append(errs, fmt.Sprintf("subject must be at least %d characters", MinSubjectLen))
	}

	message := truncate(strings.TrimSpace(raw.Message), MaxMessageLen)
	if utf8.RuneCountInString(message) < MinMessageLen {
		errs = append(errs, fmt.Sprintf("message must be at least %d characters", MinMessageLen))
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	return Result{Sanitized: &Normalized{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}}
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Package form validates and sanitizes contact form submissions.
//
// [Validate] is a pure function: it runs every field check independently,
// accumulates all errors, and returns the normalized fields only when the
// submission passed all checks. Normalization trims whitespace, lowercases
// the email address, and truncates oversized values to their maximum lengths.
//
// Truncation is a defense against oversized payloads, not a substitute for
// rejecting invalid input: a submission with any failing field yields no
// usable sanitized result.
package form

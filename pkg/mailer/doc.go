// Package mailer wraps the outbound mail transport.
//
// A [Sender] is the opaque transport capability: it takes a fully prepared
// [Email] and either delivers it, returning a [Receipt], or fails. Provider
// adapters live in subpackages (smtp, resend).
//
// The [Dispatcher] composes a Sender with the fixed destination and the
// service's From identity, and classifies every send into a total
// [Outcome]: sent, transport unavailable (capability never constructed —
// a configuration failure), or transport error (runtime failure whose
// detail is for logging only). No transport error escapes as a Go error;
// callers branch on the outcome state.
package mailer

package mailer

// Email is a fully prepared message ready for sending.
type Email struct {
	From    string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	To      []string
}

// Receipt identifies a successfully relayed message.
// The ID is provider-assigned where the provider returns one (Resend),
// otherwise generated by the adapter (SMTP Message-ID).
type Receipt struct {
	ID string
}

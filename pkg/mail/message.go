package mail

const (
	DefaultSubject  = "Good Morning!"
	DefaultTextBody = "Good morning"
	DefaultHTMLBody = "<h1>Good morning</h1><p>This email was sent automatically by a cron job!</p>"
)

// Message is the email the service delivers. It is built once at startup and
// copied by value, so it never changes for the lifetime of the process.
type Message struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// GoodMorning returns the daily message addressed from sender to recipient.
func GoodMorning(sender, recipient string) Message {
	return Message{
		From:     sender,
		To:       recipient,
		Subject:  DefaultSubject,
		TextBody: DefaultTextBody,
		HTMLBody: DefaultHTMLBody,
	}
}

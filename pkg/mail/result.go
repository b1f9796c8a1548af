package mail

import "strings"

const unknownError = "unknown error"

// SendResult is the outcome of one delivery attempt. Exactly one of MessageID
// (on success) or Error (on failure) is set.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Succeeded builds a successful result. An empty id is reported as a failure
// because a delivered message always has an identifier.
func Succeeded(messageID string) SendResult {
	if strings.TrimSpace(messageID) == "" {
		return SendResult{Success: false, Error: "mail transport returned an empty message id"}
	}
	return SendResult{Success: true, MessageID: messageID}
}

// Failed builds a failure result carrying err's message.
func Failed(err error) SendResult {
	msg := unknownError
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	return SendResult{Success: false, Error: msg}
}

// Package notify delivers personalized messages to members over a primary
// channel with an SMS fallback, pacing sends to respect provider quotas.
package notify

import (
	"context"
	"net/http"
	"time"
)

// Sender pushes one message to one phone number. Outcomes collapse to a
// boolean: transport errors, non-success statuses and malformed responses
// all mean "not delivered" and must never propagate as a crash.
type Sender interface {
	Send(ctx context.Context, phoneNumber, message string) bool
}

// Recipient is one resolved target of a dispatch job.
type Recipient struct {
	Name        string
	PhoneNumber string
}

// FormatPhoneNumber converts an 11-digit local number into the dashed
// NNN-NNNN-NNNN form the providers expect. Anything else passes through
// unchanged.
func FormatPhoneNumber(phone string) string {
	if len(phone) != 11 {
		return phone
	}
	return phone[0:3] + "-" + phone[3:7] + "-" + phone[7:11]
}

// newHTTPClient builds the outbound client used by both channel senders.
// Provider calls carry their own timeout independent of the job deadline.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

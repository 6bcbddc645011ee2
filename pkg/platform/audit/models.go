// Package audit captures key domain actions as events that can be persisted
// locally or fanned out to a broker. Events are transport-agnostic so stores
// and sinks can be swapped freely.
package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose. Categories
// drive retention policy and routing, not behavior.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance,
	// such as account creation and deletion.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring, such
	// as failed logins.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for operational visibility,
	// such as bulk message dispatches.
	CategoryOperations EventCategory = "operations"
)

// Action names for the events this service emits.
const (
	ActionUserRegistered  = "user_registered"
	ActionUserUpdated     = "user_updated"
	ActionUserDeleted     = "user_deleted"
	ActionLoginSucceeded  = "login_succeeded"
	ActionLoginFailed     = "login_failed"
	ActionBulkMessageSent = "bulk_message_sent"
)

// Event is emitted from domain logic to capture one action.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	UserID    int64         `json:"user_id,omitempty"`
	Account   string        `json:"account,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	// Device records the client platform for security events.
	Device string `json:"device,omitempty"`
	// Detail holds a short human-readable summary, e.g. dispatch counts.
	Detail string `json:"detail,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListAll(ctx context.Context) ([]Event, error)
}

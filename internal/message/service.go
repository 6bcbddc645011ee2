// Package message implements admin-triggered bulk messaging to members
// selected by age.
package message

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"member-gateway/internal/identity"
	"member-gateway/internal/notify"
	"member-gateway/internal/user"
	dErrors "member-gateway/pkg/domain-errors"
	audit "member-gateway/pkg/platform/audit"
	"member-gateway/pkg/requestcontext"
)

// UserSource lists the member base a dispatch selects from.
type UserSource interface {
	ListAll(ctx context.Context) ([]user.User, error)
}

// Dispatcher runs one fan-out job and reports progress through the returned
// handle.
type Dispatcher interface {
	Start(ctx context.Context, recipients []notify.Recipient, body string) *notify.Job
}

// AuditPublisher records dispatch outcomes for operational review.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service selects recipients by age and hands them to the dispatcher, bounding
// the wait with a deadline so the admin call always returns.
type Service struct {
	users      UserSource
	dispatcher Dispatcher
	auditor    AuditPublisher
	deadline   time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithClock injects the time source used for age calculation. Tests use this
// to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs the message service. auditor may be nil in tests.
func New(users UserSource, dispatcher Dispatcher, auditor AuditPublisher, deadline time.Duration, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		users:      users,
		dispatcher: dispatcher,
		auditor:    auditor,
		deadline:   deadline,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendByAgeRange messages every member whose current age falls inside
// [minAge, maxAge]. It waits for the dispatch up to the configured deadline
// and then returns whatever counts have accumulated; a send still in flight
// at the deadline may finish without being reflected in the result.
func (s *Service) SendByAgeRange(ctx context.Context, minAge, maxAge int, body string) (notify.Result, error) {
	if minAge < 0 || maxAge < 0 {
		return notify.Result{}, dErrors.New(dErrors.CodeInvalidInput, "ages must not be negative")
	}
	if minAge > maxAge {
		return notify.Result{}, dErrors.New(dErrors.CodeInvalidInput, "minimum age must not exceed maximum age")
	}
	if body == "" {
		return notify.Result{}, dErrors.New(dErrors.CodeInvalidInput, "message body must not be empty")
	}

	members, err := s.users.ListAll(ctx)
	if err != nil {
		return notify.Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not load members")
	}

	today := s.now()
	recipients := make([]notify.Recipient, 0, len(members))
	for _, m := range members {
		age, err := identity.Age(m.ResidentNumber, today)
		if err != nil {
			// A stored record with a bad resident number should not sink
			// the whole dispatch.
			s.logger.WarnContext(ctx, "skipping member with unusable resident number",
				"user_id", m.ID,
				"error", err,
			)
			continue
		}
		if age < minAge || age > maxAge {
			continue
		}
		recipients = append(recipients, notify.Recipient{
			Name:        m.Name,
			PhoneNumber: m.PhoneNumber,
		})
	}

	if len(recipients) == 0 {
		return notify.Result{}, nil
	}

	// The dispatch context outlives the request so in-flight sends are not
	// torn down when the admin call returns; only the deadline stops it.
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.deadline)
	job := s.dispatcher.Start(dispatchCtx, recipients, body)

	select {
	case <-job.Done():
		cancel()
	case <-dispatchCtx.Done():
		// Deadline hit; the loop will observe the cancelled context and
		// stop after the send in flight.
		cancel()
		s.logger.WarnContext(ctx, "dispatch deadline exceeded",
			"targets", len(recipients),
			"deadline", s.deadline,
		)
	}

	result := job.Snapshot()
	s.emit(ctx, audit.Event{
		Category: audit.CategoryOperations,
		Action:   audit.ActionBulkMessageSent,
		Detail:   fmt.Sprintf("targets=%d succeeded=%d failed=%d", result.Targets, result.Succeeded, result.Failed),
	})
	s.logger.InfoContext(ctx, "bulk message dispatched",
		"request_id", requestcontext.RequestID(ctx),
		"targets", result.Targets,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

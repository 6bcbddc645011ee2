// Package service orchestrates member account lifecycle: registration,
// login, lookups, and the admin-facing update/delete/list operations.
package service

import (
	"context"
	"log/slog"

	"member-gateway/internal/platform/metrics"
	"member-gateway/internal/user"
	"member-gateway/internal/user/password"
	dErrors "member-gateway/pkg/domain-errors"
	audit "member-gateway/pkg/platform/audit"
	"member-gateway/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Store is the slice of user persistence this service needs.
type Store interface {
	Save(ctx context.Context, u user.User) (user.User, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (user.User, error)
	FindByAccount(ctx context.Context, account string) (user.User, error)
	ExistsByAccount(ctx context.Context, account string) (bool, error)
	ExistsByResidentNumber(ctx context.Context, residentNumber string) (bool, error)
	List(ctx context.Context, page user.Page) (user.PagedUsers, error)
}

// TokenIssuer issues signed access tokens for authenticated members.
type TokenIssuer interface {
	Generate(account string, userID int64) (string, error)
}

// AuditPublisher records domain actions for compliance and security review.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// maxPageSize caps admin listing requests.
const maxPageSize = 100

// Service wires user persistence, credential hashing and token issuance.
type Service struct {
	users   Store
	tokens  TokenIssuer
	auditor AuditPublisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New constructs the user service. auditor and m may be nil in tests.
func New(users Store, tokens TokenIssuer, auditor AuditPublisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:   users,
		tokens:  tokens,
		auditor: auditor,
		metrics: m,
		logger:  logger,
	}
}

// LoginResult is returned to transport after successful authentication.
type LoginResult struct {
	Token  string
	UserID int64
}

// Register creates an account after checking account and resident-number
// uniqueness. Input shape validation happens at the transport boundary.
func (s *Service) Register(ctx context.Context, reg user.Registration) (int64, error) {
	taken, err := s.users.ExistsByAccount(ctx, reg.Account)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "could not check account")
	}
	if taken {
		return 0, dErrors.New(dErrors.CodeConflict, "account already exists")
	}

	registered, err := s.users.ExistsByResidentNumber(ctx, reg.ResidentNumber)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "could not check resident number")
	}
	if registered {
		return 0, dErrors.New(dErrors.CodeConflict, "resident number already registered")
	}

	hash, err := password.Hash(reg.Password)
	if err != nil {
		return 0, err
	}

	saved, err := s.users.Save(ctx, user.User{
		Account:        reg.Account,
		PasswordHash:   hash,
		Name:           reg.Name,
		ResidentNumber: reg.ResidentNumber,
		PhoneNumber:    reg.PhoneNumber,
		Address:        reg.Address,
	})
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "could not save user")
	}

	if s.metrics != nil {
		s.metrics.UsersCreated.Inc()
	}
	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Action:   audit.ActionUserRegistered,
		UserID:   saved.ID,
		Account:  saved.Account,
	})
	s.logger.InfoContext(ctx, "user registered",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", saved.ID,
	)
	return saved.ID, nil
}

// Login verifies credentials and issues a token. The same generic message is
// returned for unknown accounts and wrong passwords so accounts cannot be
// enumerated.
func (s *Service) Login(ctx context.Context, account, plain string) (LoginResult, error) {
	genericErr := dErrors.New(dErrors.CodeUnauthorized, "account or password does not match")

	u, err := s.users.FindByAccount(ctx, account)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.recordLoginFailure(ctx, account)
			return LoginResult{}, genericErr
		}
		return LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not look up account")
	}

	if !password.Verify(plain, u.PasswordHash) {
		s.recordLoginFailure(ctx, account)
		return LoginResult{}, genericErr
	}

	token, err := s.tokens.Generate(u.Account, u.ID)
	if err != nil {
		return LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token")
	}

	if s.metrics != nil {
		s.metrics.LoginSuccess.Inc()
	}
	s.emit(ctx, audit.Event{
		Category: audit.CategoryOperations,
		Action:   audit.ActionLoginSucceeded,
		UserID:   u.ID,
		Account:  u.Account,
		Device:   requestcontext.DevicePlatform(ctx),
	})
	return LoginResult{Token: token, UserID: u.ID}, nil
}

// GetByID fetches a single user.
func (s *Service) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return user.User{}, wrapLookupErr(err)
	}
	return u, nil
}

// GetByAccount fetches the user behind an authenticated account.
func (s *Service) GetByAccount(ctx context.Context, account string) (user.User, error) {
	u, err := s.users.FindByAccount(ctx, account)
	if err != nil {
		return user.User{}, wrapLookupErr(err)
	}
	return u, nil
}

// List returns one page of users. Page defaults are applied here so every
// caller gets the same clamping.
func (s *Service) List(ctx context.Context, page user.Page) (user.PagedUsers, error) {
	if page.Number < 0 {
		page.Number = 0
	}
	if page.Size <= 0 {
		page.Size = 10
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}
	if page.Sort == "" {
		page.Sort = "id"
	}

	result, err := s.users.List(ctx, page)
	if err != nil {
		return user.PagedUsers{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not list users")
	}
	return result, nil
}

// UpdateUser modifies the password and/or address of an existing user. Other
// fields are immutable after registration.
func (s *Service) UpdateUser(ctx context.Context, id int64, update user.Update) error {
	if !update.HasChanges() {
		return dErrors.New(dErrors.CodeBadRequest, "no updatable fields provided")
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return wrapLookupErr(err)
	}

	if update.Password != nil {
		hash, err := password.Hash(*update.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if update.Address != nil {
		u.Address = *update.Address
	}

	if err := s.users.Update(ctx, u); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not update user")
	}

	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Action:   audit.ActionUserUpdated,
		UserID:   u.ID,
		Account:  u.Account,
	})
	return nil
}

// DeleteUser removes an account.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return wrapLookupErr(err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not delete user")
	}

	if s.metrics != nil {
		s.metrics.UsersDeleted.Inc()
	}
	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Action:   audit.ActionUserDeleted,
		UserID:   u.ID,
		Account:  u.Account,
	})
	return nil
}

func (s *Service) recordLoginFailure(ctx context.Context, account string) {
	if s.metrics != nil {
		s.metrics.LoginFailure.Inc()
	}
	s.emit(ctx, audit.Event{
		Category: audit.CategorySecurity,
		Action:   audit.ActionLoginFailed,
		Account:  account,
		Device:   requestcontext.DevicePlatform(ctx),
	})
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

func wrapLookupErr(err error) error {
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "user not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "could not load user")
}

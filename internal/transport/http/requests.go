package httptransport

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"member-gateway/internal/user"
	dErrors "member-gateway/pkg/domain-errors"
)

// fieldErrors collects per-field violations so a request with several bad
// fields is reported in one round trip.
type fieldErrors struct {
	violations []string
}

func (f *fieldErrors) add(field, message string) {
	f.violations = append(f.violations, field+": "+message)
}

// err aggregates the collected violations into one invalid-input error, or
// returns nil when the request was clean.
func (f *fieldErrors) err() error {
	if len(f.violations) == 0 {
		return nil
	}
	return dErrors.New(dErrors.CodeInvalidInput, strings.Join(f.violations, "; "))
}

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Account        string `json:"account"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	ResidentNumber string `json:"resident_number"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
}

// Validate checks every field and reports all violations together.
func (r *RegisterRequest) Validate() error {
	var errs fieldErrors

	r.Account = strings.TrimSpace(r.Account)
	if !govalidator.StringLength(r.Account, "4", "50") {
		errs.add("account", "must be between 4 and 50 characters")
	}
	if !govalidator.StringLength(r.Password, "8", "100") {
		errs.add("password", "must be between 8 and 100 characters")
	}
	r.Name = strings.TrimSpace(r.Name)
	if !govalidator.StringLength(r.Name, "1", "50") {
		errs.add("name", "must be between 1 and 50 characters")
	}
	if !govalidator.Matches(r.ResidentNumber, `^\d{13}$`) {
		errs.add("resident_number", "must be exactly 13 digits")
	}
	if !govalidator.Matches(r.PhoneNumber, `^\d{11}$`) {
		errs.add("phone_number", "must be exactly 11 digits")
	}
	r.Address = strings.TrimSpace(r.Address)
	if !govalidator.StringLength(r.Address, "1", "500") {
		errs.add("address", "must be between 1 and 500 characters")
	}

	return errs.err()
}

// Registration converts the validated request into the domain input.
func (r *RegisterRequest) Registration() user.Registration {
	return user.Registration{
		Account:        r.Account,
		Password:       r.Password,
		Name:           r.Name,
		ResidentNumber: r.ResidentNumber,
		PhoneNumber:    r.PhoneNumber,
		Address:        r.Address,
	}
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// Validate only checks presence; credential shape is irrelevant for login.
func (r *LoginRequest) Validate() error {
	var errs fieldErrors
	r.Account = strings.TrimSpace(r.Account)
	if r.Account == "" {
		errs.add("account", "is required")
	}
	if r.Password == "" {
		errs.add("password", "is required")
	}
	return errs.err()
}

// UpdateUserRequest is the body of PUT /api/admin/users/{id}. Absent fields
// stay unchanged; only the password and address are mutable.
type UpdateUserRequest struct {
	Password *string `json:"password,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Validate checks the provided fields; at-least-one is enforced by the
// service so the error message stays consistent across transports.
func (r *UpdateUserRequest) Validate() error {
	var errs fieldErrors
	if r.Password != nil && !govalidator.StringLength(*r.Password, "8", "100") {
		errs.add("password", "must be between 8 and 100 characters")
	}
	if r.Address != nil {
		trimmed := strings.TrimSpace(*r.Address)
		if !govalidator.StringLength(trimmed, "1", "500") {
			errs.add("address", "must be between 1 and 500 characters")
		}
		r.Address = &trimmed
	}
	return errs.err()
}

// Update converts the validated request into the domain input.
func (r *UpdateUserRequest) Update() user.Update {
	return user.Update{Password: r.Password, Address: r.Address}
}

// SendMessageRequest is the body of POST /api/admin/messages.
type SendMessageRequest struct {
	MinAge  int    `json:"min_age"`
	MaxAge  int    `json:"max_age"`
	Message string `json:"message"`
}

// Validate checks shape only; range ordering is the service's call.
func (r *SendMessageRequest) Validate() error {
	var errs fieldErrors
	if r.MinAge < 0 {
		errs.add("min_age", "must not be negative")
	}
	if r.MaxAge < 0 {
		errs.add("max_age", "must not be negative")
	}
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		errs.add("message", "is required")
	}
	return errs.err()
}

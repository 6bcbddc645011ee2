package httptransport

import (
	"time"

	"member-gateway/internal/address"
	"member-gateway/internal/identity"
	"member-gateway/internal/notify"
	"member-gateway/internal/user"
)

// RegisterResponse is returned from POST /api/users/register.
type RegisterResponse struct {
	ID int64 `json:"id"`
}

// LoginResponse is returned from POST /api/users/login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// ProfileResponse is the member's own view of their account. The address is
// reduced to the top-level administrative region and the resident number is
// never echoed back.
type ProfileResponse struct {
	ID          int64  `json:"id"`
	Account     string `json:"account"`
	Name        string `json:"name"`
	Age         int    `json:"age,omitempty"`
	PhoneNumber string `json:"phone_number"`
	Region      string `json:"region"`
}

// NewProfileResponse derives the region and age from the stored record. An
// undecodable resident number leaves the age at zero rather than failing the
// whole profile read.
func NewProfileResponse(u user.User, now time.Time) ProfileResponse {
	age, err := identity.Age(u.ResidentNumber, now)
	if err != nil {
		age = 0
	}
	return ProfileResponse{
		ID:          u.ID,
		Account:     u.Account,
		Name:        u.Name,
		Age:         age,
		PhoneNumber: u.PhoneNumber,
		Region:      address.Region(u.Address),
	}
}

// AdminUserResponse is the administrator's view of one account.
type AdminUserResponse struct {
	ID             int64     `json:"id"`
	Account        string    `json:"account"`
	Name           string    `json:"name"`
	ResidentNumber string    `json:"resident_number"`
	PhoneNumber    string    `json:"phone_number"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAdminUserResponse maps a stored record for the admin surface. The
// password hash stays server-side.
func NewAdminUserResponse(u user.User) AdminUserResponse {
	return AdminUserResponse{
		ID:             u.ID,
		Account:        u.Account,
		Name:           u.Name,
		ResidentNumber: u.ResidentNumber,
		PhoneNumber:    u.PhoneNumber,
		Address:        u.Address,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// PagedUsersResponse is one page of the admin user listing.
type PagedUsersResponse struct {
	Users      []AdminUserResponse `json:"users"`
	Page       int                 `json:"page"`
	Size       int                 `json:"size"`
	TotalCount int64               `json:"total_count"`
	TotalPages int                 `json:"total_pages"`
}

// NewPagedUsersResponse maps a result page for the admin surface.
func NewPagedUsersResponse(p user.PagedUsers) PagedUsersResponse {
	users := make([]AdminUserResponse, 0, len(p.Users))
	for _, u := range p.Users {
		users = append(users, NewAdminUserResponse(u))
	}
	return PagedUsersResponse{
		Users:      users,
		Page:       p.Page,
		Size:       p.Size,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages(),
	}
}

// DispatchResponse reports the outcome of a bulk message request.
type DispatchResponse struct {
	Targets   int `json:"targets"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// NewDispatchResponse maps a dispatch result.
func NewDispatchResponse(r notify.Result) DispatchResponse {
	return DispatchResponse{Targets: r.Targets, Succeeded: r.Succeeded, Failed: r.Failed}
}

// Package user defines the member account model shared by stores, services
// and transport.
package user

import "time"

// User is the primary account record. PasswordHash holds a bcrypt digest,
// never the plaintext.
type User struct {
	ID             int64
	Account        string
	PasswordHash   string
	Name           string
	ResidentNumber string
	PhoneNumber    string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Registration carries the validated input for creating an account.
type Registration struct {
	Account        string
	Password       string
	Name           string
	ResidentNumber string
	PhoneNumber    string
	Address        string
}

// Update carries the admin-editable fields. Nil means "leave unchanged";
// only the password and address may be modified after registration.
type Update struct {
	Password *string
	Address  *string
}

// HasChanges reports whether the update modifies anything.
func (u Update) HasChanges() bool {
	return u.Password != nil || u.Address != nil
}

// Page describes a listing window. Sort is a whitelisted column name.
type Page struct {
	Number int
	Size   int
	Sort   string
}

// PagedUsers is one page of results plus the overall total for pagination.
type PagedUsers struct {
	Users      []User
	Page       int
	Size       int
	TotalCount int64
}

// TotalPages derives the page count from the total and page size.
func (p PagedUsers) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.Size) - 1) / int64(p.Size))
}

// Package store defines the persistence boundary for member accounts.
package store

import (
	"context"

	"member-gateway/internal/user"
	dErrors "member-gateway/pkg/domain-errors"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "user not found")

// Store abstracts user persistence. Implementations must treat Account and
// ResidentNumber as unique.
type Store interface {
	Save(ctx context.Context, u user.User) (user.User, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (user.User, error)
	FindByAccount(ctx context.Context, account string) (user.User, error)
	ExistsByAccount(ctx context.Context, account string) (bool, error)
	ExistsByResidentNumber(ctx context.Context, residentNumber string) (bool, error)
	List(ctx context.Context, page user.Page) (user.PagedUsers, error)
	ListAll(ctx context.Context) ([]user.User, error)
}

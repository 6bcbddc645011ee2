package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"member-gateway/internal/user"
)

// Postgres persists users in PostgreSQL via a pgx pool. This store is pure
// I/O; uniqueness checks and field rules live in the service layer, backed by
// the unique indexes on account and resident_number.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Schema is the DDL this store expects. Kept here so integration tests and
// deploy migrations share one definition.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id              BIGSERIAL PRIMARY KEY,
	account         VARCHAR(50) NOT NULL UNIQUE,
	password_hash   TEXT NOT NULL,
	name            VARCHAR(50) NOT NULL,
	resident_number VARCHAR(13) NOT NULL UNIQUE,
	phone_number    VARCHAR(11) NOT NULL,
	address         VARCHAR(500) NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const userColumns = `id, account, password_hash, name, resident_number, phone_number, address, created_at, updated_at`

func (s *Postgres) Save(ctx context.Context, u user.User) (user.User, error) {
	query := `
		INSERT INTO users (account, password_hash, name, resident_number, phone_number, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	saved, err := scanUser(s.pool.QueryRow(ctx, query,
		u.Account, u.PasswordHash, u.Name, u.ResidentNumber, u.PhoneNumber, u.Address,
	))
	if err != nil {
		return user.User{}, fmt.Errorf("save user: %w", err)
	}
	return saved, nil
}

func (s *Postgres) Update(ctx context.Context, u user.User) error {
	query := `
		UPDATE users
		SET password_hash = $2, address = $3, updated_at = now()
		WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, u.ID, u.PasswordHash, u.Address)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (s *Postgres) FindByAccount(ctx context.Context, account string) (user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE account = $1`
	u, err := scanUser(s.pool.QueryRow(ctx, query, account))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, fmt.Errorf("find user by account: %w", err)
	}
	return u, nil
}

func (s *Postgres) ExistsByAccount(ctx context.Context, account string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE account = $1)`, account).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by account: %w", err)
	}
	return exists, nil
}

func (s *Postgres) ExistsByResidentNumber(ctx context.Context, residentNumber string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE resident_number = $1)`, residentNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by resident number: %w", err)
	}
	return exists, nil
}

// sortColumns whitelists ORDER BY targets; anything else falls back to id so
// the sort key can never be used for injection.
var sortColumns = map[string]string{
	"id":      "id",
	"account": "account",
	"name":    "name",
}

func (s *Postgres) List(ctx context.Context, page user.Page) (user.PagedUsers, error) {
	column, ok := sortColumns[page.Sort]
	if !ok {
		column = "id"
	}

	var total int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return user.PagedUsers{}, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM users ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		userColumns, column,
	)
	rows, err := s.pool.Query(ctx, query, page.Size, page.Number*page.Size)
	if err != nil {
		return user.PagedUsers{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return user.PagedUsers{}, fmt.Errorf("list users: %w", err)
	}

	return user.PagedUsers{
		Users:      users,
		Page:       page.Number,
		Size:       page.Size,
		TotalCount: total,
	}, nil
}

func (s *Postgres) ListAll(ctx context.Context) ([]user.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list all users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("list all users: %w", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Account, &u.PasswordHash, &u.Name,
		&u.ResidentNumber, &u.PhoneNumber, &u.Address,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"member-gateway/internal/user"
	"member-gateway/internal/user/store"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("member_gateway"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := pgxpool.New(ctx, connStr)
	s.Require().NoError(err)
	s.pool = pool

	_, err = pool.Exec(ctx, store.Schema)
	s.Require().NoError(err)

	s.store = store.NewPostgres(pool)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE users RESTART IDENTITY`)
	s.Require().NoError(err)
}

func testUser(account, resident string) user.User {
	return user.User{
		Account:        account,
		PasswordHash:   "$2a$10$fakehashfakehashfakehash",
		Name:           "홍길동",
		ResidentNumber: resident,
		PhoneNumber:    "01012345678",
		Address:        "서울특별시 강남구 테헤란로 123",
	}
}

func (s *PostgresStoreSuite) TestSaveAndFind() {
	ctx := context.Background()

	saved, err := s.store.Save(ctx, testUser("hong1234", "9001011234567"))
	s.Require().NoError(err)
	s.NotZero(saved.ID)
	s.False(saved.CreatedAt.IsZero())

	byID, err := s.store.FindByID(ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("hong1234", byID.Account)

	byAccount, err := s.store.FindByAccount(ctx, "hong1234")
	s.Require().NoError(err)
	s.Equal(saved.ID, byAccount.ID)

	_, err = s.store.FindByID(ctx, saved.ID+100)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUniquenessChecks() {
	ctx := context.Background()

	_, err := s.store.Save(ctx, testUser("hong1234", "9001011234567"))
	s.Require().NoError(err)

	exists, err := s.store.ExistsByAccount(ctx, "hong1234")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.ExistsByResidentNumber(ctx, "9001011234567")
	s.Require().NoError(err)
	s.True(exists)

	// The unique indexes back the service-level checks.
	_, err = s.store.Save(ctx, testUser("hong1234", "9505052234567"))
	s.Error(err)
}

func (s *PostgresStoreSuite) TestUpdateAndDelete() {
	ctx := context.Background()

	saved, err := s.store.Save(ctx, testUser("hong1234", "9001011234567"))
	s.Require().NoError(err)

	saved.Address = "부산광역시 해운대구 우동 456"
	s.Require().NoError(s.store.Update(ctx, saved))

	updated, err := s.store.FindByID(ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("부산광역시 해운대구 우동 456", updated.Address)
	s.True(updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	s.Require().NoError(s.store.Delete(ctx, saved.ID))
	s.ErrorIs(s.store.Delete(ctx, saved.ID), store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListPagination() {
	ctx := context.Background()

	residents := []string{"9001011234567", "9505052234567", "0003033234567"}
	accounts := []string{"charlie", "alice", "bob"}
	for i := range accounts {
		_, err := s.store.Save(ctx, testUser(accounts[i], residents[i]))
		s.Require().NoError(err)
	}

	page, err := s.store.List(ctx, user.Page{Number: 0, Size: 2, Sort: "account"})
	s.Require().NoError(err)
	s.Require().Len(page.Users, 2)
	s.Equal("alice", page.Users[0].Account)
	s.Equal("bob", page.Users[1].Account)
	s.Equal(int64(3), page.TotalCount)

	page, err = s.store.List(ctx, user.Page{Number: 1, Size: 2, Sort: "account"})
	s.Require().NoError(err)
	s.Require().Len(page.Users, 1)
	s.Equal("charlie", page.Users[0].Account)

	all, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

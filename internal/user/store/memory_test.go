package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"member-gateway/internal/user"
)

func seedUser(account, resident string) user.User {
	return user.User{
		Account:        account,
		PasswordHash:   "$2a$10$fakehashfakehashfakehash",
		Name:           "홍길동",
		ResidentNumber: resident,
		PhoneNumber:    "01012345678",
		Address:        "서울특별시 강남구 테헤란로 123",
	}
}

func TestMemory_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	saved, err := s.Save(ctx, seedUser("hong1234", "9001011234567"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	byID, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "hong1234", byID.Account)

	byAccount, err := s.FindByAccount(ctx, "hong1234")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byAccount.ID)

	_, err = s.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Exists(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Save(ctx, seedUser("hong1234", "9001011234567"))
	require.NoError(t, err)

	byAccount, err := s.ExistsByAccount(ctx, "hong1234")
	require.NoError(t, err)
	assert.True(t, byAccount)

	byResident, err := s.ExistsByResidentNumber(ctx, "9001011234567")
	require.NoError(t, err)
	assert.True(t, byResident)

	missing, err := s.ExistsByAccount(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, missing)
}

func TestMemory_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	saved, err := s.Save(ctx, seedUser("hong1234", "9001011234567"))
	require.NoError(t, err)

	saved.Address = "부산광역시 해운대구 우동 456"
	require.NoError(t, s.Update(ctx, saved))

	updated, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "부산광역시 해운대구 우동 456", updated.Address)

	require.NoError(t, s.Delete(ctx, saved.ID))
	_, err = s.FindByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, saved.ID), ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, saved), ErrNotFound)
}

func TestMemory_List(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	accounts := []string{"charlie", "alice", "bob"}
	for i, account := range accounts {
		_, err := s.Save(ctx, seedUser(account, "900101123456"+string(rune('0'+i))))
		require.NoError(t, err)
	}

	t.Run("pages by insertion id", func(t *testing.T) {
		page, err := s.List(ctx, user.Page{Number: 0, Size: 2, Sort: "id"})
		require.NoError(t, err)
		require.Len(t, page.Users, 2)
		assert.Equal(t, "charlie", page.Users[0].Account)
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Equal(t, 2, page.TotalPages())
	})

	t.Run("sorts by account", func(t *testing.T) {
		page, err := s.List(ctx, user.Page{Number: 0, Size: 10, Sort: "account"})
		require.NoError(t, err)
		require.Len(t, page.Users, 3)
		assert.Equal(t, "alice", page.Users[0].Account)
		assert.Equal(t, "bob", page.Users[1].Account)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := s.List(ctx, user.Page{Number: 5, Size: 10, Sort: "id"})
		require.NoError(t, err)
		assert.Empty(t, page.Users)
		assert.Equal(t, int64(3), page.TotalCount)
	})
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"member-gateway/internal/user"
	"member-gateway/internal/user/password"
	"member-gateway/internal/user/service/mocks"
	dErrors "member-gateway/pkg/domain-errors"
)

type serviceFixture struct {
	store  *mocks.MockStore
	tokens *mocks.MockTokenIssuer
	audit  *mocks.MockAuditPublisher
	svc    *Service
}

func newFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)
	f := &serviceFixture{
		store:  mocks.NewMockStore(ctrl),
		tokens: mocks.NewMockTokenIssuer(ctrl),
		audit:  mocks.NewMockAuditPublisher(ctrl),
	}
	f.svc = New(f.store, f.tokens, f.audit, nil, nil)
	return f
}

func validRegistration() user.Registration {
	return user.Registration{
		Account:        "hong1234",
		Password:       "password123",
		Name:           "홍길동",
		ResidentNumber: "9001011234567",
		PhoneNumber:    "01012345678",
		Address:        "서울특별시 강남구 테헤란로 123",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and hashes password", func(t *testing.T) {
		f := newFixture(t)
		reg := validRegistration()

		f.store.EXPECT().ExistsByAccount(gomock.Any(), reg.Account).Return(false, nil)
		f.store.EXPECT().ExistsByResidentNumber(gomock.Any(), reg.ResidentNumber).Return(false, nil)
		f.store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u user.User) (user.User, error) {
				assert.NotEqual(t, reg.Password, u.PasswordHash)
				assert.True(t, password.Verify(reg.Password, u.PasswordHash))
				u.ID = 7
				return u, nil
			})
		f.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		id, err := f.svc.Register(ctx, reg)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("duplicate account conflicts", func(t *testing.T) {
		f := newFixture(t)
		reg := validRegistration()

		f.store.EXPECT().ExistsByAccount(gomock.Any(), reg.Account).Return(true, nil)

		_, err := f.svc.Register(ctx, reg)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("duplicate resident number conflicts", func(t *testing.T) {
		f := newFixture(t)
		reg := validRegistration()

		f.store.EXPECT().ExistsByAccount(gomock.Any(), reg.Account).Return(false, nil)
		f.store.EXPECT().ExistsByResidentNumber(gomock.Any(), reg.ResidentNumber).Return(true, nil)

		_, err := f.svc.Register(ctx, reg)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("store failure surfaces as internal", func(t *testing.T) {
		f := newFixture(t)
		reg := validRegistration()

		f.store.EXPECT().ExistsByAccount(gomock.Any(), reg.Account).Return(false, errors.New("db down"))

		_, err := f.svc.Register(ctx, reg)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := password.Hash("password123")
	require.NoError(t, err)
	stored := user.User{ID: 7, Account: "hong1234", PasswordHash: hash}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().FindByAccount(gomock.Any(), "hong1234").Return(stored, nil)
		f.tokens.EXPECT().Generate("hong1234", int64(7)).Return("signed-token", nil)
		f.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.svc.Login(ctx, "hong1234", "password123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", result.Token)
		assert.Equal(t, int64(7), result.UserID)
	})

	t.Run("unknown account and wrong password share one message", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().FindByAccount(gomock.Any(), "nobody").
			Return(user.User{}, dErrors.New(dErrors.CodeNotFound, "user not found"))
		f.store.EXPECT().FindByAccount(gomock.Any(), "hong1234").Return(stored, nil)
		f.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		_, unknownErr := f.svc.Login(ctx, "nobody", "password123")
		_, wrongErr := f.svc.Login(ctx, "hong1234", "wrong-password")

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.True(t, dErrors.HasCode(unknownErr, dErrors.CodeUnauthorized))
		assert.True(t, dErrors.HasCode(wrongErr, dErrors.CodeUnauthorized))
		assert.Equal(t, dErrors.MessageOf(unknownErr), dErrors.MessageOf(wrongErr))
	})
}

func TestList_Clamping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.store.EXPECT().List(gomock.Any(), user.Page{Number: 0, Size: 100, Sort: "id"}).
		Return(user.PagedUsers{Page: 0, Size: 100}, nil)

	_, err := f.svc.List(ctx, user.Page{Number: -3, Size: 5000})
	require.NoError(t, err)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	stored := user.User{ID: 7, Account: "hong1234", PasswordHash: "old-hash", Address: "서울특별시 강남구"}

	t.Run("no fields is a bad request before any store call", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.UpdateUser(ctx, 7, user.Update{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		f := newFixture(t)
		addr := "부산광역시 해운대구"
		f.store.EXPECT().FindByID(gomock.Any(), int64(99)).
			Return(user.User{}, dErrors.New(dErrors.CodeNotFound, "user not found"))

		err := f.svc.UpdateUser(ctx, 99, user.Update{Address: &addr})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("address-only update keeps the password hash", func(t *testing.T) {
		f := newFixture(t)
		addr := "부산광역시 해운대구"
		f.store.EXPECT().FindByID(gomock.Any(), int64(7)).Return(stored, nil)
		f.store.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u user.User) error {
				assert.Equal(t, addr, u.Address)
				assert.Equal(t, "old-hash", u.PasswordHash)
				return nil
			})
		f.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.UpdateUser(ctx, 7, user.Update{Address: &addr}))
	})

	t.Run("password update stores a fresh hash", func(t *testing.T) {
		f := newFixture(t)
		newPassword := "newpassword456"
		f.store.EXPECT().FindByID(gomock.Any(), int64(7)).Return(stored, nil)
		f.store.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u user.User) error {
				assert.True(t, password.Verify(newPassword, u.PasswordHash))
				return nil
			})
		f.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.UpdateUser(ctx, 7, user.Update{Password: &newPassword}))
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an existing user", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().FindByID(gomock.Any(), int64(7)).
			Return(user.User{ID: 7, Account: "hong1234"}, nil)
		f.store.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)
		f.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.DeleteUser(ctx, 7))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().FindByID(gomock.Any(), int64(99)).
			Return(user.User{}, dErrors.New(dErrors.CodeNotFound, "user not found"))

		err := f.svc.DeleteUser(ctx, 99)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

type memRepo struct {
	Repository
	byEmail map[string]*User
}

func (m *memRepo) Create(_ context.Context, u *User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = uint(len(m.byEmail) + 1)
	m.byEmail[u.Email] = u
	return nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newSvc() Service {
	return NewServiceWithCost(&memRepo{byEmail: map[string]*User{}}, bcrypt.MinCost)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功且密码已加密", func(t *testing.T) {
		svc := newSvc()
		u, err := svc.Register(ctx, "a@example.com", "secret123", "Alisher")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", u.Password)
		assert.NoError(t, svc.ValidatePassword(u.Password, "secret123"))
	})

	t.Run("邮箱重复", func(t *testing.T) {
		svc := newSvc()
		_, err := svc.Register(ctx, "a@example.com", "secret123", "Alisher")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "a@example.com", "secret456", "Other")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	t.Run("弱密码", func(t *testing.T) {
		_, err := newSvc().Register(ctx, "b@example.com", "password", "Bob")
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		_, err := newSvc().Register(ctx, "bad", "secret123", "Bob")
		require.Error(t, err)
		assert.Contains(t, apperrors.GetAppError(err).Fields, "email")
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newSvc()
	_, err := svc.Register(ctx, "a@example.com", "secret123", "Alisher")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "a@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Alisher", u.Nickname)

	_, err = svc.Login(ctx, "a@example.com", "wrong123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

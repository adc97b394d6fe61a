package security_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auth-web-server/internal/model"
	"auth-web-server/internal/security"
)

// ===== MOCKS =====

// MockAccountSource
type MockAccountSource struct {
	mock.Mock
}

func (m *MockAccountSource) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// ===== HELPERS =====

func newTestGate(t *testing.T) (*security.Gate, *security.TokenCodec, *MockAccountSource) {
	t.Helper()
	codec := newTestCodec(t, 15*time.Minute, 72*time.Hour)
	accounts := new(MockAccountSource)
	return security.NewGate(codec, accounts), codec, accounts
}

// ===== TESTS =====

// 1. Валидный access-токен разрешается в пользователя
func TestAuthenticate_Success(t *testing.T) {
	gate, codec, accounts := newTestGate(t)

	token, err := codec.Issue("user-1", security.TokenTypeAccess)
	require.NoError(t, err)

	user := &model.User{ID: "user-1", Username: "alice"}
	accounts.On("FindByID", mock.Anything, "user-1").Return(user, nil)

	resolved, err := gate.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", resolved.Username)
	accounts.AssertExpectations(t)
}

// 2. Refresh-токен не проходит access-гейт
func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	gate, codec, accounts := newTestGate(t)

	token, err := codec.Issue("user-1", security.TokenTypeRefresh)
	require.NoError(t, err)

	_, err = gate.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, security.ErrTokenTypeMismatch)
	accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// 3. Заголовок без схемы "JWT " — отказ до обращения к хранилищу
func TestAuthenticate_MalformedHeader(t *testing.T) {
	gate, _, accounts := newTestGate(t)

	_, err := gate.Authenticate(context.Background(), "Bearer abc.def.ghi")
	assert.ErrorIs(t, err, security.ErrMalformedToken)
	accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// 4. Токен валиден, но учетная запись исчезла
func TestAuthenticate_UserVanished(t *testing.T) {
	gate, codec, accounts := newTestGate(t)

	token, err := codec.Issue("user-1", security.TokenTypeAccess)
	require.NoError(t, err)

	accounts.On("FindByID", mock.Anything, "user-1").Return(nil, nil)

	_, err = gate.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, security.ErrUserNotFound)
	accounts.AssertExpectations(t)
}

// 5. Отказ хранилища отдается наверх как есть
func TestAuthenticate_AccountSourceError(t *testing.T) {
	gate, codec, accounts := newTestGate(t)

	token, err := codec.Issue("user-1", security.TokenTypeAccess)
	require.NoError(t, err)

	accounts.On("FindByID", mock.Anything, "user-1").Return(nil, errors.New("БД недоступна"))

	_, err = gate.Authenticate(context.Background(), token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, security.ErrUserNotFound)
}

// 6. Refresh-гейт возвращает и пользователя, и предъявленную строку
func TestAuthenticateRefresh_Success(t *testing.T) {
	gate, codec, accounts := newTestGate(t)

	token, err := codec.Issue("user-1", security.TokenTypeRefresh)
	require.NoError(t, err)

	user := &model.User{ID: "user-1", Username: "alice"}
	accounts.On("FindByID", mock.Anything, "user-1").Return(user, nil)

	resolved, presented, err := gate.AuthenticateRefresh(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", resolved.Username)
	assert.Equal(t, token, presented)
}

// 7. Access-токен не проходит refresh-гейт
func TestAuthenticateRefresh_AccessTokenRejected(t *testing.T) {
	gate, codec, _ := newTestGate(t)

	token, err := codec.Issue("user-1", security.TokenTypeAccess)
	require.NoError(t, err)

	_, _, err = gate.AuthenticateRefresh(context.Background(), token)
	assert.ErrorIs(t, err, security.ErrTokenTypeMismatch)
}

// 8. Проверка роли: суперпользователь проходит, остальные — нет
func TestRequireSuperuser(t *testing.T) {
	assert.NoError(t, security.RequireSuperuser(&model.User{IsSuperuser: true}))
	assert.ErrorIs(t, security.RequireSuperuser(&model.User{IsSuperuser: false}), security.ErrForbidden)
	assert.ErrorIs(t, security.RequireSuperuser(&model.User{IsStaff: true}), security.ErrForbidden)
}

// 9. Проверка роли до аутентификации — ошибка программиста, паника
func TestRequireSuperuser_NilPrincipal(t *testing.T) {
	assert.Panics(t, func() {
		_ = security.RequireSuperuser(nil)
	})
}

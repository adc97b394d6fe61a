package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auth-web-server/internal/model"
	"auth-web-server/internal/security"
	"auth-web-server/internal/service"
)

// ===== HELPERS =====

func newTestUserService() (*service.UserService, *MockUserRepository, *MockPasswordHasher) {
	mockUserRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	svc := service.NewUserService(mockUserRepo, mockHasher)

	return svc, mockUserRepo, mockHasher
}

func strPtr(s string) *string { return &s }

// ===== TESTS =====

// 1. Невалидные username отклоняются до обращения к хранилищу
func TestRegister_InvalidUsername(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	cases := []string{
		"ab",                     // короче 4 символов
		"alice-smith",            // дефис вне разрешенного алфавита
		"alice smith",            // пробел
		"почта@пример",           // не \w
		strings.Repeat("a", 126), // длиннее 125
	}

	for _, username := range cases {
		_, err := svc.Register(context.Background(), username, "alice@example.com", "Str0ngP@ss")
		assert.ErrorIs(t, err, service.ErrValidation, "username: %q", username)
	}
	mockUserRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

// 2. Политика паролей: длина, регистры, цифра, спецсимвол
func TestRegister_WeakPassword(t *testing.T) {
	svc, _, _ := newTestUserService()

	cases := []string{
		"Sh0rt!",      // короче 8 символов
		"str0ngp@ss",  // без верхнего регистра
		"STR0NGP@SS",  // без нижнего регистра
		"StrongP@ss",  // без цифры
		"Str0ngPass",  // без спецсимвола
	}

	for _, password := range cases {
		_, err := svc.Register(context.Background(), "alice", "alice@example.com", password)
		assert.ErrorIs(t, err, service.ErrValidation, "password: %q", password)
	}
}

// 3. Email обязателен
func TestRegister_EmailRequired(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Register(context.Background(), "alice", "", "Str0ngP@ss")
	assert.ErrorIs(t, err, service.ErrValidation)
}

// 4. Занятые username или email — конфликт
func TestRegister_Duplicate(t *testing.T) {
	svc, mockUserRepo, mockHasher := newTestUserService()

	mockUserRepo.On("Exists", mock.Anything, "alice", "alice@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "Str0ngP@ss")

	assert.ErrorIs(t, err, service.ErrUserExists)
	mockHasher.AssertNotCalled(t, "Hash", mock.Anything)
}

// 5. Успешная регистрация: в хранилище уходит хэш, а не открытый пароль
func TestRegister_Success(t *testing.T) {
	svc, mockUserRepo, mockHasher := newTestUserService()

	mockUserRepo.On("Exists", mock.Anything, "alice", "alice@example.com").Return(false, nil)
	mockHasher.On("Hash", "Str0ngP@ss").Return("$argon2id$hash", nil)
	mockUserRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice" && u.PasswordHash == "$argon2id$hash" && u.ID != ""
	})).Return(&model.User{ID: "user-1", Username: "alice"}, nil)

	created, err := svc.Register(context.Background(), "alice", "alice@example.com", "Str0ngP@ss")

	require.NoError(t, err)
	assert.Equal(t, "user-1", created.ID)
	mockUserRepo.AssertExpectations(t)
}

// 6. Чужая учетная запись недоступна
func TestGetUser_ForeignAccount(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	principal := &model.User{ID: "user-1"}
	_, err := svc.GetUser(context.Background(), principal, "user-2")

	assert.ErrorIs(t, err, security.ErrForbidden)
	mockUserRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// 7. Собственная учетная запись возвращается
func TestGetUser_Own(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	principal := &model.User{ID: "user-1"}
	mockUserRepo.On("FindByID", mock.Anything, "user-1").Return(&model.User{ID: "user-1", Username: "alice"}, nil)

	user, err := svc.GetUser(context.Background(), principal, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

// 8. Токен валиден, но запись уже удалена
func TestGetUser_Vanished(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	principal := &model.User{ID: "user-1"}
	mockUserRepo.On("FindByID", mock.Anything, "user-1").Return(nil, nil)

	_, err := svc.GetUser(context.Background(), principal, "user-1")

	assert.ErrorIs(t, err, security.ErrUserNotFound)
}

// 9. Обновление сливает переданные поля, остальные не трогает
func TestUpdateUser_MergesFields(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	principal := &model.User{ID: "user-1", Username: "alice", Email: "alice@example.com", FirstName: "Алиса"}
	update := &model.UserUpdate{LastName: strPtr("Иванова")}

	mockUserRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == "user-1" && u.Username == "alice" && u.FirstName == "Алиса" && u.LastName == "Иванова"
	})).Return(&model.User{ID: "user-1", LastName: "Иванова"}, nil)

	updated, err := svc.UpdateUser(context.Background(), principal, "user-1", update)

	require.NoError(t, err)
	assert.Equal(t, "Иванова", updated.LastName)
	// поля не менялись на уникальные — повторной проверки занятости нет
	mockUserRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

// 10. Смена username заново проверяется на занятость
func TestUpdateUser_UsernameUniquenessRechecked(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	principal := &model.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	update := &model.UserUpdate{Username: strPtr("alice_new")}

	mockUserRepo.On("Exists", mock.Anything, "alice_new", "").Return(true, nil)

	_, err := svc.UpdateUser(context.Background(), principal, "user-1", update)

	assert.ErrorIs(t, err, service.ErrUserExists)
	mockUserRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

// 11. Чужую учетную запись обновить нельзя
func TestUpdateUser_ForeignAccount(t *testing.T) {
	svc, _, _ := newTestUserService()

	principal := &model.User{ID: "user-1"}
	_, err := svc.UpdateUser(context.Background(), principal, "user-2", &model.UserUpdate{})

	assert.ErrorIs(t, err, security.ErrForbidden)
}

// 12. Удаление собственной учетной записи
func TestDeleteUser(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	principal := &model.User{ID: "user-1"}
	mockUserRepo.On("FindByID", mock.Anything, "user-1").Return(&model.User{ID: "user-1", Username: "alice"}, nil)
	mockUserRepo.On("DeleteUser", mock.Anything, "user-1").Return(nil)

	deleted, err := svc.DeleteUser(context.Background(), principal, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "alice", deleted.Username)

	_, err = svc.DeleteUser(context.Background(), principal, "user-2")
	assert.ErrorIs(t, err, security.ErrForbidden)
}

// 13. Смена пароля: неверный старый — тот же отказ, что и при логине
func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, mockUserRepo, mockHasher := newTestUserService()

	principal := &model.User{ID: "user-1", PasswordHash: "$argon2id$hash"}
	mockHasher.On("Verify", "$argon2id$hash", "badold").Return(false)

	err := svc.ChangePassword(context.Background(), principal, "user-1", "badold", "N3wP@ssword")

	assert.ErrorIs(t, err, security.ErrInvalidCredentials)
	mockUserRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

// 14. Новый пароль проходит ту же политику, что и при регистрации
func TestChangePassword_WeakNewPassword(t *testing.T) {
	svc, _, mockHasher := newTestUserService()

	principal := &model.User{ID: "user-1", PasswordHash: "$argon2id$hash"}
	mockHasher.On("Verify", "$argon2id$hash", "Str0ngP@ss").Return(true)

	err := svc.ChangePassword(context.Background(), principal, "user-1", "Str0ngP@ss", "weak")

	assert.ErrorIs(t, err, service.ErrValidation)
}

// 15. Успешная смена пароля сохраняет новый хэш
func TestChangePassword_Success(t *testing.T) {
	svc, mockUserRepo, mockHasher := newTestUserService()

	principal := &model.User{ID: "user-1", PasswordHash: "$argon2id$hash"}
	mockHasher.On("Verify", "$argon2id$hash", "Str0ngP@ss").Return(true)
	mockHasher.On("Hash", "N3wP@ssword").Return("$argon2id$fresh", nil)
	mockUserRepo.On("UpdatePassword", mock.Anything, "user-1", "$argon2id$fresh").Return(nil)

	err := svc.ChangePassword(context.Background(), principal, "user-1", "Str0ngP@ss", "N3wP@ssword")

	require.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// 16. Список пользователей доступен только суперпользователю
func TestListUsers_RequiresSuperuser(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	_, err := svc.ListUsers(context.Background(), &model.User{ID: "user-1"}, 10)
	assert.ErrorIs(t, err, security.ErrForbidden)

	admin := &model.User{ID: "admin-1", IsSuperuser: true}
	mockUserRepo.On("ListUsers", mock.Anything, 10).Return([]*model.User{{ID: "user-1"}}, nil)

	users, err := svc.ListUsers(context.Background(), admin, 10)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

// 17. Неположительный limit заменяется значением по умолчанию
func TestListUsers_DefaultLimit(t *testing.T) {
	svc, mockUserRepo, _ := newTestUserService()

	admin := &model.User{ID: "admin-1", IsSuperuser: true}
	mockUserRepo.On("ListUsers", mock.Anything, 10).Return([]*model.User{}, nil)

	_, err := svc.ListUsers(context.Background(), admin, 0)
	require.NoError(t, err)
	mockUserRepo.AssertCalled(t, "ListUsers", mock.Anything, 10)
}

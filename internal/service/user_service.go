package service

import (
	"context"
	"fmt"
	"regexp"
	"unicode"

	"github.com/google/uuid"

	"auth-web-server/internal/model"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
)

const defaultListLimit = 10

var usernamePattern = regexp.MustCompile(`^\w+$`)

type UserService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
}

func NewUserService(userRepository ports.UserRepository, hasher ports.PasswordHasher) *UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
	}
}

// Register : создаёт нового пользователя.
// Открытый пароль дальше вызова хеширования не живёт и нигде не логируется.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email обязателен", ErrValidation)
	}

	exists, err := s.userRepository.Exists(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	return s.userRepository.CreateUser(ctx, user)
}

// GetUser : данные пользователя, доступны только самому пользователю
func (s *UserService) GetUser(ctx context.Context, principal *model.User, userID string) (*model.User, error) {
	if principal.ID != userID {
		return nil, security.ErrForbidden
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, security.ErrUserNotFound
	}
	return user, nil
}

// UpdateUser : обновляет переданные поля учетной записи.
// Смена username или email заново проверяется на уникальность.
func (s *UserService) UpdateUser(ctx context.Context, principal *model.User, userID string, update *model.UserUpdate) (*model.User, error) {
	if principal.ID != userID {
		return nil, security.ErrForbidden
	}

	merged := *principal
	checkUsername, checkEmail := "", ""

	if update.Username != nil && *update.Username != principal.Username {
		if err := validateUsername(*update.Username); err != nil {
			return nil, err
		}
		merged.Username = *update.Username
		checkUsername = *update.Username
	}
	if update.Email != nil && *update.Email != principal.Email {
		merged.Email = *update.Email
		checkEmail = *update.Email
	}
	if update.FirstName != nil {
		merged.FirstName = *update.FirstName
	}
	if update.SecondName != nil {
		merged.SecondName = *update.SecondName
	}
	if update.LastName != nil {
		merged.LastName = *update.LastName
	}

	if checkUsername != "" || checkEmail != "" {
		exists, err := s.userRepository.Exists(ctx, checkUsername, checkEmail)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUserExists
		}
	}

	updated, err := s.userRepository.UpdateUser(ctx, &merged)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, security.ErrUserNotFound
	}
	return updated, nil
}

// DeleteUser : удаление учетной записи, доступно только самому пользователю
func (s *UserService) DeleteUser(ctx context.Context, principal *model.User, userID string) (*model.User, error) {
	if principal.ID != userID {
		return nil, security.ErrForbidden
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, security.ErrUserNotFound
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword : смена пароля со сверкой старого.
// Неверный старый пароль — тот же отказ, что и при логине.
func (s *UserService) ChangePassword(ctx context.Context, principal *model.User, userID, oldPassword, newPassword string) error {
	if principal.ID != userID {
		return security.ErrForbidden
	}

	if !s.hasher.Verify(principal.PasswordHash, oldPassword) {
		return security.ErrInvalidCredentials
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.userRepository.UpdatePassword(ctx, userID, hash)
}

// ListUsers : данные всех пользователей, только для суперпользователя
func (s *UserService) ListUsers(ctx context.Context, principal *model.User, limit int) ([]*model.User, error) {
	if err := security.RequireSuperuser(principal); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.userRepository.ListUsers(ctx, limit)
}

func validateUsername(username string) error {
	if len(username) < 4 || len(username) > 125 {
		return fmt.Errorf("%w: username должен быть от 4 до 125 символов", ErrValidation)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username может содержать только буквы латинского алфавита, цифры и _", ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: пароль должен состоять минимум из 8 символов", ErrValidation)
	}

	var upperCount, lowerCount, digitCount, specialCount int
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			specialCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 {
		return fmt.Errorf("%w: пароль должен содержать буквы в верхнем и нижнем регистрах", ErrValidation)
	}
	if digitCount == 0 {
		return fmt.Errorf("%w: пароль должен содержать хотя бы одну цифру", ErrValidation)
	}
	if specialCount == 0 {
		return fmt.Errorf("%w: пароль должен содержать хотя бы один специальный символ", ErrValidation)
	}

	return nil
}

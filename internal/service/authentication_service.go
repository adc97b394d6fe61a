package service

import (
	"context"
	"log"

	"auth-web-server/internal/model"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
)

type AuthenticationService struct {
	userRepository ports.UserRepository
	sessionStore   ports.SessionStore
	tokenCodec     ports.TokenCodec
	hasher         ports.PasswordHasher
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	sessionStore ports.SessionStore,
	tokenCodec ports.TokenCodec,
	hasher ports.PasswordHasher,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		sessionStore:   sessionStore,
		tokenCodec:     tokenCodec,
		hasher:         hasher,
	}
}

// Login : проверяет пароль и выдает новую пару токенов.
// Неизвестный идентификатор и неверный пароль наружу неразличимы — оба
// случая завершаются ErrInvalidCredentials. Успешная проверка при устаревших
// параметрах хэша попутно пересчитывает хэш (best-effort). Refresh-токен
// публикуется в кэш сессий; без опубликованной сессии логин не засчитывается.
func (s *AuthenticationService) Login(ctx context.Context, username, email, password string) (*model.TokensPair, error) {
	if username == "" && email == "" {
		return nil, ErrValidation
	}

	user, err := s.userRepository.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, security.ErrInvalidCredentials
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		log.Printf("проверка пароля пользователя %s не пройдена", user.Username)
		return nil, security.ErrInvalidCredentials
	}

	s.rehashIfStale(ctx, user, password)

	return s.issuePair(ctx, user)
}

// Refresh : ротация refresh-токена.
// Предъявленная строка сверяется с единственной записью в кэше сессий:
// погашена может быть только последняя выданная строка, все предыдущие
// становятся недействительными в момент выдачи новой.
func (s *AuthenticationService) Refresh(ctx context.Context, user *model.User, presentedToken string) (*model.TokensPair, error) {
	storedToken, err := s.sessionStore.Get(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if storedToken == "" || storedToken != presentedToken {
		log.Printf("refresh-токен пользователя %s не совпал с записью сессии", user.Username)
		return nil, security.ErrInvalidToken
	}

	return s.issuePair(ctx, user)
}

// Logout : удаляет запись сессии пользователя. Уже выданные access-токены
// остаются действительными до истечения срока — окно приемлемое, по замыслу.
func (s *AuthenticationService) Logout(ctx context.Context, username string) error {
	return s.sessionStore.Delete(ctx, username)
}

// issuePair выпускает пару access/refresh и публикует refresh в кэш сессий,
// перезаписывая предыдущую запись пользователя. Если публикация не удалась,
// вся операция завершается ошибкой: пара, которую потом нельзя обновить,
// клиенту не отдается.
func (s *AuthenticationService) issuePair(ctx context.Context, user *model.User) (*model.TokensPair, error) {
	accessToken, err := s.tokenCodec.Issue(user.ID, security.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenCodec.Issue(user.ID, security.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.Set(ctx, user.Username, refreshToken); err != nil {
		return nil, security.ErrSessionUnavailable
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// rehashIfStale пересчитывает хэш с актуальными параметрами, если тот отстал.
// Ошибки здесь не фатальны для логина: пароль уже проверен, пересчёт
// повторится при следующем входе.
func (s *AuthenticationService) rehashIfStale(ctx context.Context, user *model.User, password string) {
	if !s.hasher.NeedsRehash(user.PasswordHash) {
		return
	}

	newHash, err := s.hasher.Hash(password)
	if err != nil {
		log.Printf("не удалось пересчитать хэш пароля пользователя %s: %v", user.Username, err)
		return
	}

	if err := s.userRepository.UpdatePassword(ctx, user.ID, newHash); err != nil {
		log.Printf("не удалось сохранить обновлённый хэш пользователя %s: %v", user.Username, err)
	}
}

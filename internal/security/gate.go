package security

import (
	"context"

	"auth-web-server/internal/model"
	"auth-web-server/internal/util"
)

// AccountSource : минимум, который нужен гейту от хранилища учетных записей.
// Отсутствие записи — (nil, nil).
type AccountSource interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Gate разрешает предъявленный в заголовке токен в пользователя.
// Любой отказ проверки токена схлопывается в один сигнал для клиента,
// детали остаются во внутренней ошибке и логе.
type Gate struct {
	codec    *TokenCodec
	accounts AccountSource
}

func NewGate(codec *TokenCodec, accounts AccountSource) *Gate {
	return &Gate{codec: codec, accounts: accounts}
}

// Authenticate : проверяет access-токен и загружает учетную запись.
// Валидный токен при исчезнувшей записи — это ErrUserNotFound, а не отказ
// аутентификации: доверие токену уже установлено.
func (g *Gate) Authenticate(ctx context.Context, header string) (*model.User, error) {
	return g.resolve(ctx, header, TokenTypeAccess)
}

// AuthenticateRefresh : то же самое для refresh-токена.
// Возвращает ещё и предъявленную строку токена — она потом сверяется
// с записью в кэше сессий.
func (g *Gate) AuthenticateRefresh(ctx context.Context, header string) (*model.User, string, error) {
	user, err := g.resolve(ctx, header, TokenTypeRefresh)
	if err != nil {
		return nil, "", err
	}
	return user, header, nil
}

func (g *Gate) resolve(ctx context.Context, header string, expectedType string) (*model.User, error) {
	claims, err := g.codec.Verify(header, expectedType)
	if err != nil {
		return nil, err
	}

	user, err := g.accounts.FindByID(ctx, claims.UID)
	if err != nil {
		return nil, util.LogError("ошибка чтения учетной записи", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

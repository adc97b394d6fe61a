package ports

import (
	"context"

	"auth-web-server/internal/model"
)

type AuthenticationService interface {
	Login(ctx context.Context, username, email, password string) (*model.TokensPair, error)
	Refresh(ctx context.Context, user *model.User, presentedToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, username string) error
}

// AuthenticationGate : разрешает предъявленный токен в аутентифицированного
// пользователя. Результат возвращается явно и дальше передается параметром,
// в request-scope он не прячется.
type AuthenticationGate interface {
	Authenticate(ctx context.Context, header string) (*model.User, error)
	AuthenticateRefresh(ctx context.Context, header string) (*model.User, string, error)
}

package ports

import (
	"context"

	"auth-web-server/internal/model"
)

// UserRepository : внешнее хранилище учетных записей.
// Отсутствие записи — это (nil, nil), ошибкой считается только отказ хранилища.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)
	UpdatePassword(ctx context.Context, id, newPasswordHash string) error
	DeleteUser(ctx context.Context, id string) error
	Exists(ctx context.Context, username, email string) (bool, error)
	ListUsers(ctx context.Context, limit int) ([]*model.User, error)
}

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	GetUser(ctx context.Context, principal *model.User, userID string) (*model.User, error)
	UpdateUser(ctx context.Context, principal *model.User, userID string, update *model.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, principal *model.User, userID string) (*model.User, error)
	ChangePassword(ctx context.Context, principal *model.User, userID, oldPassword, newPassword string) error
	ListUsers(ctx context.Context, principal *model.User, limit int) ([]*model.User, error)
}

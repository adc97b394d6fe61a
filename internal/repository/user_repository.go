package repository

import (
	"context"
	"database/sql"
	"errors"

	"auth-web-server/config"
	"auth-web-server/internal/model"
	"auth-web-server/internal/util"
)

const userColumns = `id, username, email, password, first_name, second_name, last_name,
		is_active, is_staff, is_superuser, created, updated`

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO custom_users (id, username, email, password, first_name, second_name, last_name)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.SecondName, user.LastName,
	).StructScan(createdUser)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByID : ищет пользователя по id, отсутствие записи — не ошибка
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM custom_users WHERE id = $1`

	var user model.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByUsernameOrEmail : ищет пользователя по имени или почте.
// Если переданы оба идентификатора, достаточно совпадения любого из них.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + `
		FROM custom_users
		WHERE (username = $1 AND $1 <> '') OR (email = $2 AND $2 <> '')`

	var user model.User
	err := r.DB.GetContext(ctx, &user, query, username, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по username/email", err)
	}
	return &user, nil
}

// UpdateUser : обновляет изменяемые поля учетной записи
func (r *UserRepository) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		UPDATE custom_users
		SET username = $2, email = $3, first_name = $4, second_name = $5, last_name = $6, updated = now()
		WHERE id = $1
		RETURNING ` + userColumns

	updatedUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.ID, user.Username, user.Email, user.FirstName, user.SecondName, user.LastName,
	).StructScan(updatedUser)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}
	return updatedUser, nil
}

// UpdatePassword : меняет хэш пароля пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, id, newPasswordHash string) error {
	query := `UPDATE custom_users SET password = $2, updated = now() WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, id, newPasswordHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пароль", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, обновлён ли пароль", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[UserRepo] пользователь для смены пароля не найден", sql.ErrNoRows)
	}

	return nil
}

// DeleteUser : удаляет пользователя по его id
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	query := `DELETE FROM custom_users WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}
	return nil
}

// Exists : проверяет, занят ли username или email
func (r *UserRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM custom_users
		WHERE (username = $1 AND $1 <> '') OR (email = $2 AND $2 <> '')
	)`

	err := r.DB.GetContext(ctx, &exists, query, username, email)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// ListUsers : выводит список зарегистрированных пользователей
func (r *UserRepository) ListUsers(ctx context.Context, limit int) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM custom_users ORDER BY created ASC LIMIT $1`

	var users []*model.User
	err := r.DB.SelectContext(ctx, &users, query, limit)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}
	return users, nil
}

package security

import "auth-web-server/internal/model"

// RequireSuperuser : чистый предикат над уже разрешённым пользователем.
// Вызов без пользователя — нарушение контракта вызывающего кода, а не отказ
// в доступе, поэтому паника, а не ошибка.
func RequireSuperuser(user *model.User) error {
	if user == nil {
		panic("security: проверка роли вызвана до аутентификации")
	}
	if !user.IsSuperuser {
		return ErrForbidden
	}
	return nil
}

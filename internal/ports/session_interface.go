package ports

import "context"

// SessionStore : внешний кэш с единственным актуальным refresh-токеном
// на пользователя. Set перезаписывает безусловно, Get для отсутствующей
// записи возвращает ("", nil), Delete идемпотентен.
type SessionStore interface {
	Set(ctx context.Context, username, refreshToken string) error
	Get(ctx context.Context, username string) (string, error)
	Delete(ctx context.Context, username string) error
}

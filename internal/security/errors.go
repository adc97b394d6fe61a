package security

import "errors"

// Виды отказов ядра аутентификации. Наружу хендлеры отдают только обобщённый
// сигнал (401/403/404/500), различия нужны лишь для логов и тестов.
var (
	// ErrMalformedToken : в заголовке нет схемы "JWT "
	ErrMalformedToken = errors.New("токен не соответствует формату")
	// ErrInvalidToken : подпись не сошлась или токен просрочен
	ErrInvalidToken = errors.New("невалидный или просроченный токен")
	// ErrTokenTypeMismatch : тип токена не совпал с ожидаемым (access/refresh)
	ErrTokenTypeMismatch = errors.New("неверный тип токена")
	// ErrInvalidCredentials : неизвестный пользователь или неверный пароль
	ErrInvalidCredentials = errors.New("неверно указаны пользователь, почта или пароль")
	// ErrUserNotFound : токен валиден, но учетная запись исчезла
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrForbidden : аутентификация пройдена, но прав недостаточно
	ErrForbidden = errors.New("доступ запрещён")
	// ErrHashing : криптографический примитив не смог отработать
	ErrHashing = errors.New("хеширование не удалось")
	// ErrSigning : ключ подписи непригоден
	ErrSigning = errors.New("не удалось подписать токен")
	// ErrSessionUnavailable : не удалось опубликовать refresh-токен в кэше
	ErrSessionUnavailable = errors.New("не удалось сохранить сессию")
)

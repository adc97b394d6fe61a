package requestresponse

// LoginRequest : тело запроса на аутентификацию.
// Достаточно одного идентификатора: username или email.
type LoginRequest struct {
	Username string `json:"username,omitempty" example:"alice"`
	Email    string `json:"email,omitempty" example:"alice@example.com"`
	Password string `json:"password" example:"Str0ngP@ss"`
}

// LoginResponse : ответ на успешную аутентификацию.
// Сами токены уходят в заголовках access_token и refresh_token.
type LoginResponse struct {
	Response struct {
		Authenticated bool `json:"authenticated" example:"true"`
	} `json:"response"`
}

// RefreshResponse : ответ на успешную ротацию токенов.
// Новая пара уходит в заголовках access_token и refresh_token.
type RefreshResponse struct {
	Response struct {
		Refreshed bool `json:"refreshed" example:"true"`
	} `json:"response"`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	Response struct {
		LoggedOut bool `json:"logged_out" example:"true"`
	} `json:"response"`
}

package requestresponse

import "auth-web-server/internal/model"

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Str0ngP@ss!"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"403"`
	Text string `json:"text" example:"доступ запрещён"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Data *model.User `json:"data"`
}

// UpdateUserRequest : тело запроса на обновление пользователя, nil-поля не трогаются
type UpdateUserRequest struct {
	Username   *string `json:"username,omitempty" example:"alice_new"`
	Email      *string `json:"email,omitempty" example:"alice_new@example.com"`
	FirstName  *string `json:"first_name,omitempty"`
	SecondName *string `json:"second_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
}

// ChangePasswordRequest : тело запроса на смену пароля
type ChangePasswordRequest struct {
	OldPassword    string `json:"old_password"`
	NewPassword    string `json:"new_password"`
	RepeatPassword string `json:"repeat_password"`
}

// MessageResponse : успешный ответ с сообщением
type MessageResponse struct {
	Response struct {
		Message string `json:"msg"`
	} `json:"response"`
}

// ListUsersResponse : данные всех зарегистрированных пользователей
type ListUsersResponse struct {
	Data struct {
		Users []*model.User `json:"users"`
	} `json:"data"`
}

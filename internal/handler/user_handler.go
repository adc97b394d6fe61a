package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"auth-web-server/internal/model"
	"auth-web-server/internal/model/requestresponse"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
	"auth-web-server/internal/service"
)

type UserHandler struct {
	userService ports.UserService
	gate        ports.AuthenticationGate
}

func NewUserHandler(userService ports.UserService, gate ports.AuthenticationGate) *UserHandler {
	return &UserHandler{
		userService: userService,
		gate:        gate,
	}
}

// RegisterUser godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя по username, email и паролю. Занятые username или email — конфликт.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.UserResponse{Data: user})
}

// GetUser godoc
// @Summary Получение данных пользователя
// @Description Возвращает данные пользователя. Доступно только самому пользователю.
// @Tags Users
// @Produce json
// @Param Authorization header string true "Access-токен" default(JWT <access_token>)
// @Param user_id path string true "Идентификатор пользователя"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/user_info/{user_id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	principal, err := h.gate.Authenticate(ctx, r.Header.Get(AccessTokenHeader))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	user, err := h.userService.GetUser(ctx, principal, chi.URLParam(r, "user_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.UserResponse{Data: user})
}

// UpdateUser godoc
// @Summary Обновление данных пользователя
// @Description Обновляет переданные поля. Доступно только самому пользователю.
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Access-токен" default(JWT <access_token>)
// @Param user_id path string true "Идентификатор пользователя"
// @Param body body requestresponse.UpdateUserRequest true "Обновляемые поля"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/update_user/{user_id} [post]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	principal, err := h.gate.Authenticate(ctx, r.Header.Get(AccessTokenHeader))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req requestresponse.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	update := &model.UserUpdate{
		Username:   req.Username,
		Email:      req.Email,
		FirstName:  req.FirstName,
		SecondName: req.SecondName,
		LastName:   req.LastName,
	}

	user, err := h.userService.UpdateUser(ctx, principal, chi.URLParam(r, "user_id"), update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.UserResponse{Data: user})
}

// DeleteUser godoc
// @Summary Удаление пользователя
// @Description Удаляет учетную запись. Доступно только самому пользователю.
// @Tags Users
// @Produce json
// @Param Authorization header string true "Access-токен" default(JWT <access_token>)
// @Param user_id path string true "Идентификатор пользователя"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/remove_user/{user_id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	principal, err := h.gate.Authenticate(ctx, r.Header.Get(AccessTokenHeader))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	user, err := h.userService.DeleteUser(ctx, principal, chi.URLParam(r, "user_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := requestresponse.MessageResponse{}
	resp.Response.Message = fmt.Sprintf("Пользователь %s удален!", user.Username)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// ChangePassword godoc
// @Summary Смена пароля пользователя
// @Description Меняет пароль после сверки старого. Новый пароль и его повтор должны совпадать.
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Access-токен" default(JWT <access_token>)
// @Param user_id path string true "Идентификатор пользователя"
// @Param body body requestresponse.ChangePasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Введенные пароли не совпадают"
// @Failure 401 {object} requestresponse.ErrorResponse "Старый пароль неверен"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/change-password/{user_id} [post]
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	principal, err := h.gate.Authenticate(ctx, r.Header.Get(AccessTokenHeader))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req requestresponse.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if req.NewPassword != req.RepeatPassword {
		sendErrorResponse(w, http.StatusBadRequest, "введенные пароли не совпадают")
		return
	}

	err = h.userService.ChangePassword(ctx, principal, chi.URLParam(r, "user_id"), req.OldPassword, req.NewPassword)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := requestresponse.MessageResponse{}
	resp.Response.Message = fmt.Sprintf("Пароль пользователя %s изменён.", principal.Username)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// ListUsers godoc
// @Summary Список пользователей
// @Description Отдаёт данные о всех зарегистрированных пользователях. Только для суперпользователя.
// @Tags Users
// @Produce json
// @Param Authorization header string true "Access-токен" default(JWT <access_token>)
// @Param limit query int false "Максимум записей" default(10)
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	principal, err := h.gate.Authenticate(ctx, r.Header.Get(AccessTokenHeader))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := h.userService.ListUsers(ctx, principal, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := requestresponse.ListUsersResponse{}
	resp.Data.Users = users

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// handleServiceError переводит вид ошибки в HTTP-ответ.
// Клиент видит только обобщённый сигнал, подробности остаются в логе:
// отказы проверки токена любого вида отдаются одинаково.
func handleServiceError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case errors.Is(err, service.ErrValidation):
		sendErrorResponse(w, http.StatusBadRequest, "некорректные входные данные")
	case errors.Is(err, security.ErrInvalidCredentials):
		sendErrorResponse(w, http.StatusUnauthorized, "неверно указаны пользователь, почта или пароль")
	case errors.Is(err, security.ErrMalformedToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrTokenTypeMismatch):
		sendErrorResponse(w, http.StatusForbidden, "ошибка аутентификации")
	case errors.Is(err, security.ErrForbidden):
		sendErrorResponse(w, http.StatusForbidden, "доступ запрещён")
	case errors.Is(err, security.ErrUserNotFound):
		sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
	case errors.Is(err, service.ErrUserExists):
		sendErrorResponse(w, http.StatusConflict, "пользователь с таким username или email уже существует")
	default:
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	}
	json.NewEncoder(w).Encode(resp)
}

package handler

import (
	"encoding/json"
	"net/http"

	"auth-web-server/internal/model/requestresponse"
	"auth-web-server/internal/ports"
)

// Имена заголовков границы процесса: access-токен ходит в Authorization,
// refresh-токен — в отдельном заголовке RefreshToken. Выданная пара
// возвращается клиенту в заголовках ответа access_token / refresh_token.
const (
	AccessTokenHeader  = "Authorization"
	RefreshTokenHeader = "RefreshToken"

	accessTokenResponseHeader  = "access_token"
	refreshTokenResponseHeader = "refresh_token"
)

type AuthenticationHandler struct {
	authenticationService ports.AuthenticationService
	gate                  ports.AuthenticationGate
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService, gate ports.AuthenticationGate) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService: authenticationService,
		gate:                  gate,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Проверяет пароль по username или email и устанавливает заголовки access_token и refresh_token в ответе
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Не указан ни username, ни email"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверно указаны пользователь, почта или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	// Проверка формы выполняется до любого похода в хранилище
	if req.Username == "" && req.Email == "" {
		sendErrorResponse(w, http.StatusBadRequest, "укажите username или email")
		return
	}
	if req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "пароль обязателен")
		return
	}

	tokens, err := h.authenticationService.Login(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set(accessTokenResponseHeader, tokens.AccessToken)
	w.Header().Set(refreshTokenResponseHeader, tokens.RefreshToken)

	resp := requestresponse.LoginResponse{}
	resp.Response.Authenticated = true

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Refresh godoc
// @Summary Обновление пары токенов
// @Description Погашает refresh-токен из заголовка RefreshToken и устанавливает новую пару в заголовках ответа. Погасить можно только последний выданный refresh-токен.
// @Tags Authentication
// @Produce json
// @Param RefreshToken header string true "Refresh-токен" default(JWT <refresh_token>)
// @Success 200 {object} requestresponse.RefreshResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Ошибка аутентификации"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, presentedToken, err := h.gate.AuthenticateRefresh(ctx, r.Header.Get(RefreshTokenHeader))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	tokens, err := h.authenticationService.Refresh(ctx, user, presentedToken)
	if err != nil {
		// Никакой частичной выдачи: при отказе заголовки с токенами не ставятся
		handleServiceError(w, err)
		return
	}

	w.Header().Set(accessTokenResponseHeader, tokens.AccessToken)
	w.Header().Set(refreshTokenResponseHeader, tokens.RefreshToken)

	resp := requestresponse.RefreshResponse{}
	resp.Response.Refreshed = true

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Удаляет запись сессии пользователя. Повторный вызов не ошибка. Уже выданные access-токены продолжают действовать до истечения срока.
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Access-токен" default(JWT <access_token>)
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Ошибка аутентификации"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/logout [delete]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := h.gate.Authenticate(ctx, r.Header.Get(AccessTokenHeader))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.authenticationService.Logout(ctx, user.Username); err != nil {
		handleServiceError(w, err)
		return
	}

	resp := requestresponse.LogoutResponse{}
	resp.Response.LoggedOut = true

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

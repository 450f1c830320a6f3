package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"zhurnal/internal/config"
	"zhurnal/internal/logger"
	"zhurnal/internal/middleware"
	"zhurnal/internal/models"
	"zhurnal/internal/services"
	"zhurnal/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	ttl, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil || ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthHandler{
		authService: authService,
		jwtSecret:   cfg.JWTSecret,
		tokenTTL:    ttl,
	}
}

// Register godoc
// @Summary Регистрация
// @Description Создаёт пользователя (PUBLISHER или SUBSCRIBER) и возвращает токен сессии.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Данные регистрации"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]string
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	resp, err := h.authService.Register(r.Context(), req, h.jwtSecret, h.tokenTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusCreated, resp)
}

// Login godoc
// @Summary Вход
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Учётные данные"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "невалидный JSON")
		return
	}

	resp, err := h.authService.Login(r.Context(), req, h.jwtSecret, h.tokenTTL)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Неудачный вход", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, resp)
}

// Profile godoc
// @Summary Профиль текущего пользователя
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /api/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetProfile(r.Context(), middleware.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}

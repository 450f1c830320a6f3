package handlers

import (
	"errors"
	"net/http"
	"strings"

	"zhurnal/internal/logger"
	"zhurnal/internal/middleware"
	"zhurnal/internal/repository"
	"zhurnal/internal/services"
	"zhurnal/internal/utils/helpers"

	"go.uber.org/zap"
)

// writeError переводит ошибки сервисного слоя в HTTP-статусы:
// валидация — 400, скрытый/отсутствующий ресурс — 404, чужой ресурс — 403,
// остальное — 500 без деталей наружу.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")
		helpers.Error(w, http.StatusBadRequest, msg)
	case errors.Is(err, repository.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "не найдено")
	case errors.Is(err, repository.ErrForbidden):
		helpers.Error(w, http.StatusForbidden, "доступ запрещён")
	default:
		logger.WithCtx(r.Context()).Error("Внутренняя ошибка", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// callerFrom собирает личность вызывающего из контекста запроса.
func callerFrom(r *http.Request) services.Caller {
	return services.Caller{
		ID:   middleware.CallerID(r.Context()),
		Role: middleware.CallerRole(r.Context()),
	}
}

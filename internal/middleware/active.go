package middleware

import (
	"context"
	"net/http"

	"zhurnal/internal/logger"
	"zhurnal/internal/models"
	"zhurnal/internal/utils/helpers"

	"go.uber.org/zap"
)

type userStatusGetter interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ActiveOnly перекрывает все мутации пользователям со статусом SUSPENDED.
// Статус читается из БД на каждый запрос: токен мог быть выдан до
// блокировки. Ставится ПОСЛЕ RequireAuth.
func ActiveOnly(users userStatusGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := CallerID(r.Context())
			u, err := users.GetByID(r.Context(), id)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("ActiveOnly: пользователь не найден", zap.String("user_id", id), zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "требуется вход")
				return
			}
			if !u.IsActive() {
				logger.WithCtx(r.Context()).Warn("ActiveOnly: пользователь заблокирован", zap.String("user_id", id))
				helpers.Error(w, http.StatusForbidden, "учётная запись заблокирована")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

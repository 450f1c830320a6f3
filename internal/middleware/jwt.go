package middleware

import (
	"context"
	"net/http"
	"strings"

	"zhurnal/internal/logger"
	"zhurnal/internal/reqctx"
	"zhurnal/internal/utils"
	"zhurnal/internal/utils/helpers"

	"go.uber.org/zap"
)

// Identity разбирает bearer-токен, если он есть, и кладёт user_id и роль в
// контекст. Без токена запрос проходит анонимно: публичные ручки (каталог,
// статья) сами решают, что показать вызывающему.
func Identity(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			userID, role, err := utils.ParseToken(jwtSecret, tokenString)
			if err != nil {
				// Битый токен на публичной ручке не валит запрос в аноним
				// молча — клиент должен увидеть 401 и перелогиниться.
				logger.WithCtx(r.Context()).Warn("Identity: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "неверный или просроченный токен")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, userID)
			ctx = context.WithValue(ctx, ContextRole, role)
			ctx = reqctx.WithUserID(ctx, userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth пропускает только аутентифицированных. Ставится ПОСЛЕ Identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if CallerID(r.Context()) == "" {
			logger.WithCtx(r.Context()).Warn("RequireAuth: отсутствует access token")
			helpers.Error(w, http.StatusUnauthorized, "требуется вход")
			return
		}
		next.ServeHTTP(w, r)
	})
}

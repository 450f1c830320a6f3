package middleware

import (
	"net/http"

	"zhurnal/internal/utils/helpers"
)

func OnlyRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Фастлейн для админа — пропустить любые role-проверки
			if SkipGuards(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			if CallerRole(r.Context()) != role {
				helpers.Error(w, http.StatusForbidden, "доступ запрещён")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func AnyRole(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{})
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SkipGuards(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			role := CallerRole(r.Context())
			if role == "" {
				helpers.Error(w, http.StatusForbidden, "не удалось определить роль")
				return
			}
			if _, found := roleSet[role]; !found {
				helpers.Error(w, http.StatusForbidden, "доступ запрещён")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

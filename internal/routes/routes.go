package routes

import (
	"zhurnal/internal/config"
	"zhurnal/internal/handlers"
	"zhurnal/internal/middleware"
	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"strconv"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	cfg *config.Config,
	userRepo *repository.UserRepository,
	authHandler *handlers.AuthHandler,
	magazineHandler *handlers.MagazineHandler,
	articleHandler *handlers.ArticleHandler,
	commentHandler *handlers.CommentHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	adminHandler *handlers.AdminHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.Identity(cfg.JWTSecret))

	// --- Аутентификация (с лимитом запросов) ---
	rps, _ := strconv.ParseFloat(cfg.AuthRateLimit, 64)
	burst, _ := strconv.Atoi(cfg.AuthRateBurst)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(middleware.RateLimit(rps, burst))
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	// --- Публичные маршруты (личность учитывается, но не требуется) ---
	api.HandleFunc("/magazines", magazineHandler.List).Methods("GET")
	api.HandleFunc("/magazines/{id}", magazineHandler.Get).Methods("GET")
	api.HandleFunc("/magazines/{id}/articles", articleHandler.ListByMagazine).Methods("GET")
	api.HandleFunc("/articles/{id}", articleHandler.Get).Methods("GET")
	// Список комментариев публичен на уровне роутера; FULL-доступ к статье
	// проверяет сервис.
	api.HandleFunc("/articles/{id}/comments", commentHandler.List).Methods("GET")

	// --- Защищённые: вход + активный статус ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireAuth)
	protected.Use(middleware.AdminFastLane)
	protected.Use(middleware.ActiveOnly(userRepo))

	protected.HandleFunc("/profile", authHandler.Profile).Methods("GET")
	protected.HandleFunc("/subscriptions/me", subscriptionHandler.ListMine).Methods("GET")
	protected.HandleFunc("/magazines/{id}/subscribe", subscriptionHandler.Subscribe).Methods("POST")
	protected.HandleFunc("/articles/{id}/comments", commentHandler.Create).Methods("POST")
	protected.HandleFunc("/comments/{id}", commentHandler.Delete).Methods("DELETE")

	// --- Издатель (админ проходит фастлейном) ---
	publisher := protected.PathPrefix("").Subrouter()
	publisher.Use(middleware.AnyRole(models.RolePublisher))
	publisher.HandleFunc("/articles/preview", articleHandler.Preview).Methods("POST")
	publisher.HandleFunc("/magazines/{id}/articles", articleHandler.Create).Methods("POST")
	publisher.HandleFunc("/magazines/{id}", magazineHandler.Update).Methods("PATCH")
	publisher.HandleFunc("/magazines/{id}", magazineHandler.Delete).Methods("DELETE")
	publisher.HandleFunc("/articles/{id}", articleHandler.Update).Methods("PATCH")
	publisher.HandleFunc("/articles/{id}", articleHandler.Delete).Methods("DELETE")
	publisher.HandleFunc("/articles/{id}/publish", articleHandler.Publish).Methods("POST")
	publisher.HandleFunc("/articles/{id}/unpublish", articleHandler.Unpublish).Methods("POST")

	// --- Админ ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.OnlyRole(models.RoleAdmin))
	admin.HandleFunc("/magazines", magazineHandler.Create).Methods("POST")
	admin.HandleFunc("/admin/overview", adminHandler.Overview).Methods("GET")
	admin.HandleFunc("/admin/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/admin/users/{id}", adminHandler.UpdateUser).Methods("PATCH")
}

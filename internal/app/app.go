package app

import (
	"context"
	"time"

	"zhurnal/internal/cache"
	"zhurnal/internal/config"
	"zhurnal/internal/db"
	"zhurnal/internal/handlers"
	"zhurnal/internal/logger"
	"zhurnal/internal/repository"
	"zhurnal/internal/routes"
	"zhurnal/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	if err := db.RunMigrations(cfg); err != nil {
		return nil, err
	}

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Кеш (может быть выключен пустым REDIS_ADDR)
	responseCache, err := cache.InitServer(context.Background(), cfg)
	if err != nil {
		logger.Log.Warn("Redis недоступен, кеш выключен", zap.Error(err))
		responseCache = nil
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	magazineRepo := repository.NewMagazineRepo(conn)
	articleRepo := repository.NewArticleRepo(conn)
	commentRepo := repository.NewCommentRepo(conn)
	subscriptionRepo := repository.NewSubscriptionRepo(conn)

	// Сервисы
	accessResolver := services.NewAccessResolver(subscriptionRepo)
	authService := services.NewAuthService(userRepo)
	magazineService := services.NewMagazineService(magazineRepo, responseCache)
	articleService := services.NewArticleService(articleRepo, magazineRepo, accessResolver, responseCache)
	commentService := services.NewCommentService(commentRepo, articleRepo, magazineRepo, accessResolver, responseCache)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, magazineRepo, cfg.GetSubscriptionPeriod(), responseCache)
	adminService := services.NewAdminService(userRepo, magazineRepo, articleRepo, subscriptionRepo)
	previewService := services.NewPreviewService()

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, cfg)
	magazineHandler := handlers.NewMagazineHandler(magazineService)
	articleHandler := handlers.NewArticleHandler(articleService, previewService)
	commentHandler := handlers.NewCommentHandler(commentService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Сразу приберём просроченные подписки и запустим периодическую чистку
	_ = subscriptionService.ExpireOverdue(context.Background())
	StartSubscriptionCleaner(subscriptionService)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg, userRepo, authHandler, magazineHandler, articleHandler, commentHandler, subscriptionHandler, adminHandler)

	return router, nil
}

// StartSubscriptionCleaner раз в час переводит просроченные ACTIVE-подписки
// в EXPIRED. Решение о доступе при этом не ждёт тикера: живость подписки
// проверяется по end_at на каждом запросе.
func StartSubscriptionCleaner(svc services.SubscriptionService) {
	t := time.NewTicker(1 * time.Hour)
	go func() {
		for range t.C {
			_ = svc.ExpireOverdue(context.Background())
		}
	}()
}

package services

import (
	"context"
	"errors"
	"time"

	"zhurnal/internal/cache"
	"zhurnal/internal/logger"
	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"go.uber.org/zap"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, magazineID string, caller Caller) (*models.SubscribeResponse, error)
	ListMine(ctx context.Context, caller Caller, page, pageSize int) ([]*models.Subscription, int, error)
	ExpireOverdue(ctx context.Context) error
}

type subscriptionService struct {
	subs      repository.SubscriptionRepo
	magazines repository.MagazineRepo
	period    time.Duration
	cache     *cache.Cache
}

func NewSubscriptionService(subs repository.SubscriptionRepo, magazines repository.MagazineRepo, period time.Duration, c *cache.Cache) SubscriptionService {
	return &subscriptionService{subs: subs, magazines: magazines, period: period, cache: c}
}

// Subscribe идемпотентна: при живой подписке возвращаем её id с
// alreadyActive=true, дубликат не создаётся. Иначе — новая запись
// [now, now+период]. Партиальный уникальный индекс в схеме страхует от
// гонки двух одновременных подписок.
func (s *subscriptionService) Subscribe(ctx context.Context, magazineID string, caller Caller) (*models.SubscribeResponse, error) {
	log := logger.WithCtx(ctx)

	if _, err := s.magazines.GetByID(ctx, magazineID); err != nil {
		return nil, err
	}

	existing, err := s.subs.GetActive(ctx, caller.ID, magazineID)
	if err == nil {
		log.Info("Подписка уже активна",
			zap.String("magazine_id", magazineID),
			zap.String("subscription_id", existing.ID),
		)
		return &models.SubscribeResponse{ID: existing.ID, AlreadyActive: true}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	sub := &models.Subscription{
		SubscriberID: caller.ID,
		MagazineID:   magazineID,
		Status:       models.SubActive,
		StartAt:      now,
		EndAt:        now.Add(s.period),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		log.Error("Ошибка создания подписки (repo)", zap.String("magazine_id", magazineID), zap.Error(err))
		return nil, err
	}

	// Прежние решения о доступе к статьям журнала устарели.
	_ = s.cache.InvalidatePrefix(ctx, cache.Key("mag-articles", magazineID))

	log.Info("Подписка оформлена",
		zap.String("magazine_id", magazineID),
		zap.String("subscription_id", sub.ID),
		zap.Time("end_at", sub.EndAt),
	)
	return &models.SubscribeResponse{ID: sub.ID, AlreadyActive: false}, nil
}

func (s *subscriptionService) ListMine(ctx context.Context, caller Caller, page, pageSize int) ([]*models.Subscription, int, error) {
	offset := (page - 1) * pageSize
	return s.subs.ListBySubscriber(ctx, caller.ID, pageSize, offset)
}

func (s *subscriptionService) ExpireOverdue(ctx context.Context) error {
	n, err := s.subs.ExpireOverdue(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Log.Info("Просроченные подписки переведены в EXPIRED", zap.Int64("count", n))
	}
	return nil
}

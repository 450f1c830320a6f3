package services

import (
	"context"

	"zhurnal/internal/logger"
	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"go.uber.org/zap"
)

// AccessResolver решает, видит ли вызывающий полный текст статьи или только
// превью. Решение принимается здесь и только здесь: при SUMMARY_ONLY поле
// content вырезается до кодирования ответа, клиенту оно не уходит вовсе.
type AccessResolver struct {
	subs repository.SubscriptionRepo
}

func NewAccessResolver(subs repository.SubscriptionRepo) *AccessResolver {
	return &AccessResolver{subs: subs}
}

// Resolve возвращает FULL, если вызывающий — админ, владелец журнала или
// держатель живой подписки на журнал статьи. Иначе SUMMARY_ONLY.
//
// Черновик для всех, кроме владельца и админа, — repository.ErrNotFound:
// чужой черновик неотличим от несуществующей статьи.
func (r *AccessResolver) Resolve(ctx context.Context, article *models.Article, mag *models.Magazine, caller Caller) (string, error) {
	owner := !caller.IsAnonymous() && mag.OwnedBy(caller.ID)

	if article.Status == models.ArticleDraft && !owner && !caller.IsAdmin() {
		return "", repository.ErrNotFound
	}

	if caller.IsAdmin() || owner {
		return models.AccessFull, nil
	}

	if !caller.IsAnonymous() {
		active, err := r.subs.HasActive(ctx, caller.ID, article.MagazineID)
		if err != nil {
			logger.WithCtx(ctx).Error("Ошибка проверки подписки при выдаче доступа", zap.Error(err))
			return "", err
		}
		if active {
			return models.AccessFull, nil
		}
	}

	return models.AccessSummaryOnly, nil
}

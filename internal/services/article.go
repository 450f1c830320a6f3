package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"zhurnal/internal/cache"
	"zhurnal/internal/logger"
	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"go.uber.org/zap"
)

type ArticleService interface {
	GetWithAccess(ctx context.Context, id string, caller Caller) (*models.ArticleWithAccess, error)
	ListByMagazine(ctx context.Context, magazineID string, page, pageSize int, status string, caller Caller) ([]*models.ArticleRow, int, error)
	Create(ctx context.Context, magazineID string, req models.CreateArticleRequest, caller Caller) (*models.Article, error)
	Update(ctx context.Context, id string, req models.UpdateArticleRequest, caller Caller) (*models.Article, error)
	Delete(ctx context.Context, id string, caller Caller) error
	SetPublished(ctx context.Context, id string, published bool, caller Caller) (*models.Article, error)
}

type articleService struct {
	articles  repository.ArticleRepo
	magazines repository.MagazineRepo
	access    *AccessResolver
	cache     *cache.Cache
}

func NewArticleService(articles repository.ArticleRepo, magazines repository.MagazineRepo, access *AccessResolver, c *cache.Cache) ArticleService {
	return &articleService{articles: articles, magazines: magazines, access: access, cache: c}
}

// GetWithAccess — GET /api/articles/{id}: статья + решение о доступе.
// Ответ не кешируется: решение зависит от подписок вызывающего.
func (s *articleService) GetWithAccess(ctx context.Context, id string, caller Caller) (*models.ArticleWithAccess, error) {
	log := logger.WithCtx(ctx)

	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья не найдена (repo)", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	mag, err := s.magazines.GetByID(ctx, a.MagazineID)
	if err != nil {
		log.Error("Журнал статьи не найден (repo)", zap.String("magazine_id", a.MagazineID), zap.Error(err))
		return nil, err
	}

	decision, err := s.access.Resolve(ctx, a, mag, caller)
	if err != nil {
		return nil, err
	}

	out := a
	if decision == models.AccessSummaryOnly {
		out = a.Trimmed()
	}

	log.Debug("Доступ к статье решён",
		zap.String("id", id),
		zap.String("access", decision),
	)
	return &models.ArticleWithAccess{Article: out, Access: decision}, nil
}

// ListByMagazine — список статей журнала. Не владелец и не админ видит только
// PUBLISHED: фильтр по статусу молча приводится, а не запрещается.
func (s *articleService) ListByMagazine(ctx context.Context, magazineID string, page, pageSize int, status string, caller Caller) ([]*models.ArticleRow, int, error) {
	log := logger.WithCtx(ctx)

	mag, err := s.magazines.GetByID(ctx, magazineID)
	if err != nil {
		return nil, 0, err
	}

	manager := caller.IsAdmin() || (!caller.IsAnonymous() && mag.OwnedBy(caller.ID))
	if !manager {
		status = models.ArticlePublished
	}
	if status != "" && status != models.ArticleDraft && status != models.ArticlePublished {
		return nil, 0, fmt.Errorf("%w: неизвестный статус %q", ErrValidation, status)
	}

	offset := (page - 1) * pageSize

	// Публичная выдача кешируется; выдача владельца — нет.
	type cached struct {
		Items []*models.ArticleRow `json:"items"`
		Total int                  `json:"total"`
	}
	key := cache.Key("mag-articles", magazineID, page, pageSize)
	if !manager {
		var cc cached
		if ok, _ := s.cache.Get(ctx, key, &cc); ok {
			return cc.Items, cc.Total, nil
		}
	}

	items, total, err := s.articles.ListByMagazine(ctx, magazineID, pageSize, offset, status)
	if err != nil {
		log.Error("Ошибка списка статей (repo)", zap.String("magazine_id", magazineID), zap.Error(err))
		return nil, 0, err
	}

	if !manager {
		_ = s.cache.Set(ctx, key, cached{Items: items, Total: total})
	}
	return items, total, nil
}

func (s *articleService) Create(ctx context.Context, magazineID string, req models.CreateArticleRequest, caller Caller) (*models.Article, error) {
	log := logger.WithCtx(ctx)

	mag, err := s.magazines.GetByID(ctx, magazineID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(mag, caller); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if l := utf8.RuneCountInString(title); l < 3 || l > 255 {
		return nil, fmt.Errorf("%w: длина заголовка должна быть от 3 до 255 символов", ErrValidation)
	}

	status := models.ArticlePublished // дефолт фронтенда
	if req.Status != nil {
		status = *req.Status
	}
	if status != models.ArticleDraft && status != models.ArticlePublished {
		return nil, fmt.Errorf("%w: недопустимый статус %q", ErrValidation, status)
	}

	a := &models.Article{
		MagazineID: magazineID,
		Title:      title,
		Summary:    strPtr(req.Summary),
		Content:    strPtr(req.Content),
		Status:     status,
	}
	if err := s.articles.Create(ctx, a); err != nil {
		log.Error("Ошибка создания статьи (repo)", zap.Error(err))
		return nil, err
	}

	s.invalidateMagazine(ctx, magazineID)

	log.Info("Статья создана",
		zap.String("id", a.ID),
		zap.String("magazine_id", magazineID),
		zap.String("status", a.Status),
	)
	return a, nil
}

func (s *articleService) Update(ctx context.Context, id string, req models.UpdateArticleRequest, caller Caller) (*models.Article, error) {
	log := logger.WithCtx(ctx)

	a, mag, err := s.loadOwned(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if l := utf8.RuneCountInString(t); l < 3 || l > 255 {
			return nil, fmt.Errorf("%w: длина заголовка должна быть от 3 до 255 символов", ErrValidation)
		}
		a.Title = t
	}
	if req.Summary != nil {
		a.Summary = strPtr(*req.Summary)
	}
	if req.Content != nil {
		a.Content = strPtr(*req.Content)
	}

	if err := s.articles.Update(ctx, a); err != nil {
		log.Error("Ошибка обновления статьи (repo)", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateMagazine(ctx, mag.ID)

	log.Info("Статья обновлена", zap.String("id", id))
	return a, nil
}

func (s *articleService) Delete(ctx context.Context, id string, caller Caller) error {
	log := logger.WithCtx(ctx)

	a, mag, err := s.loadOwned(ctx, id, caller)
	if err != nil {
		return err
	}

	// Комментарии уходят каскадом на стороне БД.
	if err := s.articles.Delete(ctx, a.ID); err != nil {
		log.Error("Ошибка удаления статьи (repo)", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidateMagazine(ctx, mag.ID)
	_ = s.cache.InvalidatePrefix(ctx, cache.Key("comments", a.ID))

	log.Info("Статья удалена", zap.String("id", id))
	return nil
}

// SetPublished — publish/unpublish. Снятие с публикации возвращает статью
// в DRAFT: видимость — только владелец и админ.
func (s *articleService) SetPublished(ctx context.Context, id string, published bool, caller Caller) (*models.Article, error) {
	log := logger.WithCtx(ctx)

	a, mag, err := s.loadOwned(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	status := models.ArticleDraft
	if published {
		status = models.ArticlePublished
	}
	if err := s.articles.SetStatus(ctx, a.ID, status); err != nil {
		log.Error("Ошибка смены статуса публикации (repo)", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateMagazine(ctx, mag.ID)

	out, err := s.articles.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	log.Info("Статус публикации изменён", zap.String("id", id), zap.String("status", out.Status))
	return out, nil
}

// loadOwned грузит статью и её журнал и требует права владельца или админа.
func (s *articleService) loadOwned(ctx context.Context, id string, caller Caller) (*models.Article, *models.Magazine, error) {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	mag, err := s.magazines.GetByID(ctx, a.MagazineID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireOwner(mag, caller); err != nil {
		return nil, nil, err
	}
	return a, mag, nil
}

func (s *articleService) requireOwner(mag *models.Magazine, caller Caller) error {
	if caller.IsAdmin() {
		return nil
	}
	if !caller.IsAnonymous() && mag.OwnedBy(caller.ID) {
		return nil
	}
	return repository.ErrForbidden
}

func (s *articleService) invalidateMagazine(ctx context.Context, magazineID string) {
	_ = s.cache.InvalidatePrefix(ctx, cache.Key("mag-articles", magazineID))
}

func strPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

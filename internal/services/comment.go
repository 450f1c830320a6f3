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

type CommentService interface {
	ListByArticle(ctx context.Context, articleID string, page, pageSize int, caller Caller) ([]*models.Comment, int, error)
	Create(ctx context.Context, articleID, body string, caller Caller) (*models.Comment, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type commentService struct {
	comments  repository.CommentRepo
	articles  repository.ArticleRepo
	magazines repository.MagazineRepo
	access    *AccessResolver
	cache     *cache.Cache
}

func NewCommentService(comments repository.CommentRepo, articles repository.ArticleRepo, magazines repository.MagazineRepo, access *AccessResolver, c *cache.Cache) CommentService {
	return &commentService{comments: comments, articles: articles, magazines: magazines, access: access, cache: c}
}

// ListByArticle — страница комментариев. Комментарии видны только под FULL:
// без подписки список недоступен так же, как и полный текст.
func (s *commentService) ListByArticle(ctx context.Context, articleID string, page, pageSize int, caller Caller) ([]*models.Comment, int, error) {
	if err := s.requireFull(ctx, articleID, caller); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	type cached struct {
		Items []*models.Comment `json:"items"`
		Total int               `json:"total"`
	}
	key := cache.Key("comments", articleID, page, pageSize)
	var cc cached
	if ok, _ := s.cache.Get(ctx, key, &cc); ok {
		return cc.Items, cc.Total, nil
	}

	items, total, err := s.comments.ListByArticle(ctx, articleID, pageSize, offset)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка списка комментариев (repo)", zap.String("article_id", articleID), zap.Error(err))
		return nil, 0, err
	}

	_ = s.cache.Set(ctx, key, cached{Items: items, Total: total})
	return items, total, nil
}

func (s *commentService) Create(ctx context.Context, articleID, body string, caller Caller) (*models.Comment, error) {
	log := logger.WithCtx(ctx)

	if err := s.requireFull(ctx, articleID, caller); err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: пустой комментарий", ErrValidation)
	}
	if utf8.RuneCountInString(body) > 4000 {
		return nil, fmt.Errorf("%w: комментарий длиннее 4000 символов", ErrValidation)
	}

	c := &models.Comment{
		ArticleID: articleID,
		AuthorID:  caller.ID,
		Body:      body,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		log.Error("Ошибка создания комментария (repo)", zap.String("article_id", articleID), zap.Error(err))
		return nil, err
	}

	// Накопленные страницы устарели целиком: порядок и total сдвинулись.
	_ = s.cache.InvalidatePrefix(ctx, cache.Key("comments", articleID))

	log.Info("Комментарий добавлен", zap.String("id", c.ID), zap.String("article_id", articleID))
	return c, nil
}

// Delete — автор, издатель журнала этой статьи или админ. Издатель чужого
// журнала удалять не может.
func (s *commentService) Delete(ctx context.Context, id string, caller Caller) error {
	log := logger.WithCtx(ctx)

	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.canDelete(ctx, c, caller) {
		return repository.ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		log.Error("Ошибка удаления комментария (repo)", zap.String("id", id), zap.Error(err))
		return err
	}

	_ = s.cache.InvalidatePrefix(ctx, cache.Key("comments", c.ArticleID))

	log.Info("Комментарий удалён", zap.String("id", id), zap.String("article_id", c.ArticleID))
	return nil
}

func (s *commentService) canDelete(ctx context.Context, c *models.Comment, caller Caller) bool {
	if caller.IsAnonymous() {
		return false
	}
	if caller.IsAdmin() || caller.ID == c.AuthorID {
		return true
	}
	if caller.Role != models.RolePublisher {
		return false
	}
	a, err := s.articles.GetByID(ctx, c.ArticleID)
	if err != nil {
		return false
	}
	mag, err := s.magazines.GetByID(ctx, a.MagazineID)
	if err != nil {
		return false
	}
	return mag.OwnedBy(caller.ID)
}

// requireFull повторяет решение резолвера доступа для родительской статьи.
func (s *commentService) requireFull(ctx context.Context, articleID string, caller Caller) error {
	a, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	mag, err := s.magazines.GetByID(ctx, a.MagazineID)
	if err != nil {
		return err
	}
	decision, err := s.access.Resolve(ctx, a, mag, caller)
	if err != nil {
		return err
	}
	if decision != models.AccessFull {
		return repository.ErrForbidden
	}
	return nil
}

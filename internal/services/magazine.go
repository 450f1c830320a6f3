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

type MagazineService interface {
	List(ctx context.Context, page, pageSize int, search string, mine bool, caller Caller) ([]*models.Magazine, int, error)
	GetByID(ctx context.Context, id string) (*models.Magazine, error)
	Create(ctx context.Context, req models.CreateMagazineRequest, caller Caller) (*models.Magazine, error)
	Update(ctx context.Context, id string, req models.UpdateMagazineRequest, caller Caller) (*models.Magazine, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type magazineService struct {
	magazines repository.MagazineRepo
	cache     *cache.Cache
}

func NewMagazineService(magazines repository.MagazineRepo, c *cache.Cache) MagazineService {
	return &magazineService{magazines: magazines, cache: c}
}

// List — каталог журналов; mine=true ограничивает выдачу журналами самого
// вызывающего (кабинет издателя).
func (s *magazineService) List(ctx context.Context, page, pageSize int, search string, mine bool, caller Caller) ([]*models.Magazine, int, error) {
	publisherID := ""
	if mine {
		if caller.IsAnonymous() {
			return nil, 0, repository.ErrForbidden
		}
		publisherID = caller.ID
	}

	offset := (page - 1) * pageSize

	type cached struct {
		Items []*models.Magazine `json:"items"`
		Total int                `json:"total"`
	}
	key := cache.Key("magazines", page, pageSize, search)
	if publisherID == "" {
		var cc cached
		if ok, _ := s.cache.Get(ctx, key, &cc); ok {
			return cc.Items, cc.Total, nil
		}
	}

	items, total, err := s.magazines.List(ctx, pageSize, offset, search, publisherID)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка списка журналов (repo)", zap.Error(err))
		return nil, 0, err
	}

	if publisherID == "" {
		_ = s.cache.Set(ctx, key, cached{Items: items, Total: total})
	}
	return items, total, nil
}

func (s *magazineService) GetByID(ctx context.Context, id string) (*models.Magazine, error) {
	return s.magazines.GetByID(ctx, id)
}

// Create — только админ: журналы заводит редакция и закрепляет за издателем.
func (s *magazineService) Create(ctx context.Context, req models.CreateMagazineRequest, caller Caller) (*models.Magazine, error) {
	log := logger.WithCtx(ctx)

	if !caller.IsAdmin() {
		return nil, repository.ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if l := utf8.RuneCountInString(title); l < 2 || l > 255 {
		return nil, fmt.Errorf("%w: длина названия должна быть от 2 до 255 символов", ErrValidation)
	}

	publisherID := caller.ID
	if strings.TrimSpace(req.PublisherID) != "" {
		publisherID = strings.TrimSpace(req.PublisherID)
	}
	m := &models.Magazine{
		Title:       title,
		Description: strPtr(req.Description),
		CoverURL:    strPtr(req.CoverURL),
		PublisherID: &publisherID,
	}
	if err := s.magazines.Create(ctx, m); err != nil {
		return nil, err
	}

	_ = s.cache.InvalidatePrefix(ctx, "magazines")

	log.Info("Журнал создан", zap.String("id", m.ID), zap.String("title", m.Title))
	return m, nil
}

func (s *magazineService) Update(ctx context.Context, id string, req models.UpdateMagazineRequest, caller Caller) (*models.Magazine, error) {
	log := logger.WithCtx(ctx)

	m, err := s.magazines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !(!caller.IsAnonymous() && m.OwnedBy(caller.ID)) {
		return nil, repository.ErrForbidden
	}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if l := utf8.RuneCountInString(t); l < 2 || l > 255 {
			return nil, fmt.Errorf("%w: длина названия должна быть от 2 до 255 символов", ErrValidation)
		}
		m.Title = t
	}
	if req.Description != nil {
		m.Description = strPtr(*req.Description)
	}
	if req.CoverURL != nil {
		m.CoverURL = strPtr(*req.CoverURL)
	}

	if err := s.magazines.Update(ctx, m); err != nil {
		log.Error("Ошибка обновления журнала (repo)", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	_ = s.cache.InvalidatePrefix(ctx, "magazines")

	log.Info("Журнал обновлён", zap.String("id", id))
	return m, nil
}

// Delete — владелец или админ; статьи и комментарии уходят каскадом в БД.
func (s *magazineService) Delete(ctx context.Context, id string, caller Caller) error {
	log := logger.WithCtx(ctx)

	m, err := s.magazines.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && !(!caller.IsAnonymous() && m.OwnedBy(caller.ID)) {
		return repository.ErrForbidden
	}

	if err := s.magazines.Delete(ctx, id); err != nil {
		log.Error("Ошибка удаления журнала (repo)", zap.String("id", id), zap.Error(err))
		return err
	}

	_ = s.cache.InvalidatePrefix(ctx, "magazines")
	_ = s.cache.InvalidatePrefix(ctx, cache.Key("mag-articles", id))

	log.Info("Журнал удалён", zap.String("id", id))
	return nil
}

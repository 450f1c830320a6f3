package services

import (
	"context"
	"fmt"

	"zhurnal/internal/logger"
	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"go.uber.org/zap"
)

type AdminService interface {
	Overview(ctx context.Context) (*models.AdminOverview, error)
	ListUsers(ctx context.Context, page, pageSize int, search string) ([]*models.User, int, error)
	UpdateUser(ctx context.Context, id string, req models.AdminUpdateUserRequest) error
}

type adminService struct {
	users     UserRepo
	magazines repository.MagazineRepo
	articles  repository.ArticleRepo
	subs      repository.SubscriptionRepo
}

func NewAdminService(users UserRepo, magazines repository.MagazineRepo, articles repository.ArticleRepo, subs repository.SubscriptionRepo) AdminService {
	return &adminService{users: users, magazines: magazines, articles: articles, subs: subs}
}

func (s *adminService) Overview(ctx context.Context) (*models.AdminOverview, error) {
	var out models.AdminOverview
	var err error

	if out.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if out.Magazines, err = s.magazines.Count(ctx); err != nil {
		return nil, err
	}
	if out.Articles, err = s.articles.Count(ctx); err != nil {
		return nil, err
	}
	if out.ActiveSubs, err = s.subs.CountActive(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *adminService) ListUsers(ctx context.Context, page, pageSize int, search string) ([]*models.User, int, error) {
	offset := (page - 1) * pageSize
	return s.users.GetAllPaginated(ctx, pageSize, offset, search)
}

// UpdateUser — частичное изменение роли/статуса. SUSPENDED отрезает
// пользователю все мутации при следующем же запросе.
func (s *adminService) UpdateUser(ctx context.Context, id string, req models.AdminUpdateUserRequest) error {
	log := logger.WithCtx(ctx)

	if req.Role == nil && req.Status == nil {
		return fmt.Errorf("%w: нечего обновлять", ErrValidation)
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		return fmt.Errorf("%w: недопустимая роль %q", ErrValidation, *req.Role)
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return fmt.Errorf("%w: недопустимый статус %q", ErrValidation, *req.Status)
	}

	if err := s.users.UpdateRoleStatus(ctx, id, req.Role, req.Status); err != nil {
		return err
	}

	log.Info("Пользователь обновлён (админка)",
		zap.String("id", id),
		zap.Any("role", req.Role),
		zap.Any("status", req.Status),
	)
	return nil
}

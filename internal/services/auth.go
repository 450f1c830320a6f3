package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zhurnal/internal/logger"
	"zhurnal/internal/models"
	"zhurnal/internal/repository"
	"zhurnal/internal/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	GetAllPaginated(ctx context.Context, limit, offset int, search string) ([]*models.User, int, error)
	UpdateRoleStatus(ctx context.Context, id string, role, status *string) error
	Count(ctx context.Context) (int, error)
}

// Register создаёт пользователя и сразу выдаёт токен сессии.
// Роль ADMIN через регистрацию получить нельзя.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest, jwtSecret string, tokenTTL time.Duration) (*models.AuthResponse, error) {
	log := logger.WithCtx(ctx)
	log.Info("Регистрация пользователя (service)", zap.String("email", req.Email), zap.String("role", req.Role))

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: некорректный email", ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: пароль короче 6 символов", ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = models.RoleSubscriber
	}
	if role != models.RolePublisher && role != models.RoleSubscriber {
		return nil, fmt.Errorf("%w: недопустимая роль %q", ErrValidation, req.Role)
	}

	if taken, err := s.repo.IsEmailTaken(ctx, email); taken || err != nil {
		if err != nil {
			log.Error("Ошибка проверки email", zap.Error(err))
			return nil, err
		}
		return nil, fmt.Errorf("%w: адрес электронной почты уже зарегистрирован", ErrValidation)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         strPtr(req.Name),
		PasswordHash: hashed,
		Role:         role,
		Status:       models.StatusActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: адрес электронной почты уже зарегистрирован", ErrValidation)
		}
		log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, err
	}

	token, err := utils.GenerateToken(jwtSecret, user.ID, user.Role, tokenTTL)
	if err != nil {
		log.Error("Ошибка генерации токена", zap.Error(err))
		return nil, err
	}

	log.Info("Пользователь зарегистрирован (service)", zap.String("id", user.ID))
	return &models.AuthResponse{User: user, Token: token}, nil
}

// Login проверяет пароль и выдаёт токен. SUSPENDED пользователь может войти:
// его останавливает гейт статуса на каждой мутации, а не на входе.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, jwtSecret string, tokenTTL time.Duration) (*models.AuthResponse, error) {
	log := logger.WithCtx(ctx)
	log.Info("Попытка входа (service)", zap.String("email", req.Email))

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		log.Warn("Пользователь не найден (service)", zap.String("email", req.Email))
		return nil, errors.New("неверный email или пароль")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Warn("Неверный пароль (service)", zap.String("email", req.Email))
		return nil, errors.New("неверный email или пароль")
	}

	token, err := utils.GenerateToken(jwtSecret, user.ID, user.Role, tokenTTL)
	if err != nil {
		log.Error("Ошибка генерации токена", zap.Error(err))
		return nil, err
	}

	log.Info("Вход выполнен (service)", zap.String("id", user.ID))
	return &models.AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zhurnal/internal/logger"
	"zhurnal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, status, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	logger.WithCtx(ctx).Info("Создание пользователя (repo)", zap.String("email", user.Email), zap.String("role", user.Role))
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `
	INSERT INTO users (id, email, name, password_hash, role, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		user.Name,
		user.PasswordHash,
		user.Role,
		user.Status,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email)))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(&exists)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

// GetAllPaginated — постраничный список пользователей с поиском по email/имени.
func (r *UserRepository) GetAllPaginated(ctx context.Context, limit, offset int, search string) ([]*models.User, int, error) {
	where := ""
	args := []interface{}{}
	i := 1
	if s := strings.TrimSpace(search); s != "" {
		where = fmt.Sprintf(` WHERE email ILIKE $%d OR name ILIKE $%d`, i, i)
		args = append(args, "%"+s+"%")
		i++
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// UpdateRoleStatus — частичное обновление роли/статуса (админка).
func (r *UserRepository) UpdateRoleStatus(ctx context.Context, id string, role, status *string) error {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}
	i := 1
	if role != nil {
		set = append(set, fmt.Sprintf("role = $%d", i))
		args = append(args, *role)
		i++
	}
	if status != nil {
		set = append(set, fmt.Sprintf("status = $%d", i))
		args = append(args, *status)
		i++
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), i)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка обновления пользователя (repo)", zap.String("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

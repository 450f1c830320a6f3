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
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MagazineRepo interface {
	Create(ctx context.Context, m *models.Magazine) error
	GetByID(ctx context.Context, id string) (*models.Magazine, error)
	List(ctx context.Context, limit, offset int, search, publisherID string) ([]*models.Magazine, int, error)
	Update(ctx context.Context, m *models.Magazine) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type magazineRepo struct{ db *pgxpool.Pool }

func NewMagazineRepo(db *pgxpool.Pool) MagazineRepo { return &magazineRepo{db: db} }

func (r *magazineRepo) Create(ctx context.Context, m *models.Magazine) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO magazines (id, title, description, cover_url, publisher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, q, m.ID, m.Title, m.Description, m.CoverURL, m.PublisherID).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка создания журнала (repo)", zap.Error(err))
	}
	return err
}

func (r *magazineRepo) GetByID(ctx context.Context, id string) (*models.Magazine, error) {
	const q = `
		SELECT m.id, m.title, m.description, m.cover_url, m.publisher_id,
		       m.created_at, m.updated_at,
		       u.id, u.name, u.email
		FROM magazines m
		LEFT JOIN users u ON u.id = m.publisher_id
		WHERE m.id = $1
	`
	var m models.Magazine
	var pubID, pubName, pubEmail *string
	err := r.db.QueryRow(ctx, q, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.CoverURL, &m.PublisherID,
		&m.CreatedAt, &m.UpdatedAt,
		&pubID, &pubName, &pubEmail,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if pubID != nil {
		m.Publisher = &models.UserLite{ID: *pubID, Name: pubName}
		if pubEmail != nil {
			m.Publisher.Email = *pubEmail
		}
	}
	return &m, nil
}

// List — постраничный список с ILIKE-поиском; publisherID != "" ограничивает
// выдачу журналами одного издателя (режим mine=true).
func (r *magazineRepo) List(ctx context.Context, limit, offset int, search, publisherID string) ([]*models.Magazine, int, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if s := strings.TrimSpace(search); s != "" {
		where = append(where, fmt.Sprintf("(m.title ILIKE $%d OR m.description ILIKE $%d)", i, i))
		args = append(args, "%"+s+"%")
		i++
	}
	if publisherID != "" {
		where = append(where, fmt.Sprintf("m.publisher_id = $%d", i))
		args = append(args, publisherID)
		i++
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM magazines m`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
		SELECT m.id, m.title, m.description, m.cover_url, m.publisher_id,
		       m.created_at, m.updated_at,
		       u.id, u.name, u.email
		FROM magazines m
		LEFT JOIN users u ON u.id = m.publisher_id` + cond +
		fmt.Sprintf(` ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.Magazine
	for rows.Next() {
		var m models.Magazine
		var pubID, pubName, pubEmail *string
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.CoverURL, &m.PublisherID,
			&m.CreatedAt, &m.UpdatedAt,
			&pubID, &pubName, &pubEmail,
		); err != nil {
			return nil, 0, err
		}
		if pubID != nil {
			m.Publisher = &models.UserLite{ID: *pubID, Name: pubName}
			if pubEmail != nil {
				m.Publisher.Email = *pubEmail
			}
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

func (r *magazineRepo) Update(ctx context.Context, m *models.Magazine) error {
	const q = `
		UPDATE magazines
		SET title = $1, description = $2, cover_url = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, q, m.Title, m.Description, m.CoverURL, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete — каскад на статьи и их комментарии обеспечивают FK в схеме.
func (r *magazineRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM magazines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *magazineRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM magazines`).Scan(&n)
	return n, err
}

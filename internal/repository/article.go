package repository

import (
	"context"
	"errors"
	"fmt"

	"zhurnal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	ListByMagazine(ctx context.Context, magazineID string, limit, offset int, status string) ([]*models.ArticleRow, int, error)
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status string) error
	Count(ctx context.Context) (int, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

const articleColumns = `id, magazine_id, title, summary, content, status, published_at, created_at, updated_at`

func (r *articleRepo) Create(ctx context.Context, a *models.Article) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO articles (id, magazine_id, title, summary, content, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, CASE WHEN $6 = 'PUBLISHED' THEN NOW() ELSE NULL END)
		RETURNING published_at, created_at, updated_at
	`
	return r.db.QueryRow(ctx, q, a.ID, a.MagazineID, a.Title, a.Summary, a.Content, a.Status).
		Scan(&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
}

func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	var a models.Article
	err := r.db.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.MagazineID, &a.Title, &a.Summary, &a.Content,
		&a.Status, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByMagazine — список статей журнала без content. Пустой status — без
// фильтра (все статусы, режим управления для владельца).
func (r *articleRepo) ListByMagazine(ctx context.Context, magazineID string, limit, offset int, status string) ([]*models.ArticleRow, int, error) {
	cond := ` WHERE magazine_id = $1`
	args := []interface{}{magazineID}
	i := 2
	if status != "" {
		cond += fmt.Sprintf(` AND status = $%d`, i)
		args = append(args, status)
		i++
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT id, title, summary, status, published_at, updated_at FROM articles` + cond +
		fmt.Sprintf(` ORDER BY COALESCE(published_at, created_at) DESC LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.ArticleRow
	for rows.Next() {
		var row models.ArticleRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Summary, &row.Status, &row.PublishedAt, &row.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, &row)
	}
	return list, total, rows.Err()
}

func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	const q = `
		UPDATE articles
		SET title = $1, summary = $2, content = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, q, a.Title, a.Summary, a.Content, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *articleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus переключает DRAFT/PUBLISHED; published_at ставится один раз,
// при снятии с публикации не затирается.
func (r *articleRepo) SetStatus(ctx context.Context, id string, status string) error {
	const q = `
		UPDATE articles
		SET status = $2,
		    published_at = CASE WHEN $2 = 'PUBLISHED' THEN COALESCE(published_at, NOW()) ELSE published_at END,
		    updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, q, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles WHERE status = 'PUBLISHED'`).Scan(&n)
	return n, err
}

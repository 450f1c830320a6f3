package repository

import (
	"context"
	"errors"

	"zhurnal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID string, limit, offset int) ([]*models.Comment, int, error)
	Delete(ctx context.Context, id string) error
}

type commentRepo struct{ db *pgxpool.Pool }

func NewCommentRepo(db *pgxpool.Pool) CommentRepo { return &commentRepo{db: db} }

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO comments (id, article_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, q, c.ID, c.ArticleID, c.AuthorID, c.Body).Scan(&c.CreatedAt)
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	const q = `
		SELECT c.id, c.article_id, c.author_id, c.body, c.created_at, u.id, u.name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`
	var c models.Comment
	err := r.db.QueryRow(ctx, q, id).Scan(
		&c.ID, &c.ArticleID, &c.AuthorID, &c.Body, &c.CreatedAt,
		&c.User.ID, &c.User.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByArticle — страницы комментариев в стабильном порядке:
// created_at ASC, id ASC как tie-break, чтобы при равных метках времени
// склейка страниц на клиенте не давала ни дублей, ни пропусков.
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string, limit, offset int) ([]*models.Comment, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE article_id = $1`, articleID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
		SELECT c.id, c.article_id, c.author_id, c.body, c.created_at, u.id, u.name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, q, articleID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.ArticleID, &c.AuthorID, &c.Body, &c.CreatedAt,
			&c.User.ID, &c.User.Name,
		); err != nil {
			return nil, 0, err
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

func (r *commentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"zhurnal/internal/logger"
	"zhurnal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type SubscriptionRepo interface {
	Create(ctx context.Context, s *models.Subscription) error
	GetActive(ctx context.Context, subscriberID, magazineID string) (*models.Subscription, error)
	HasActive(ctx context.Context, subscriberID, magazineID string) (bool, error)
	ListBySubscriber(ctx context.Context, subscriberID string, limit, offset int) ([]*models.Subscription, int, error)
	ExpireOverdue(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int, error)
}

type subscriptionRepo struct{ db *pgxpool.Pool }

func NewSubscriptionRepo(db *pgxpool.Pool) SubscriptionRepo { return &subscriptionRepo{db: db} }

func (r *subscriptionRepo) Create(ctx context.Context, s *models.Subscription) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO subscriptions (id, subscriber_id, magazine_id, status, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, q, s.ID, s.SubscriberID, s.MagazineID, s.Status, s.StartAt, s.EndAt)
	return err
}

// GetActive — живая подписка пары (подписчик, журнал): статус ACTIVE и срок
// не истёк. Просроченный ACTIVE сюда не попадает, даже если тикер ещё не
// успел переписать статус.
func (r *subscriptionRepo) GetActive(ctx context.Context, subscriberID, magazineID string) (*models.Subscription, error) {
	const q = `
		SELECT id, subscriber_id, magazine_id, status, start_at, end_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND magazine_id = $2 AND status = 'ACTIVE' AND end_at > NOW()
		ORDER BY end_at DESC
		LIMIT 1
	`
	var s models.Subscription
	err := r.db.QueryRow(ctx, q, subscriberID, magazineID).Scan(
		&s.ID, &s.SubscriberID, &s.MagazineID, &s.Status, &s.StartAt, &s.EndAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepo) HasActive(ctx context.Context, subscriberID, magazineID string) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1 FROM subscriptions
			WHERE subscriber_id = $1 AND magazine_id = $2 AND status = 'ACTIVE' AND end_at > NOW()
		)
	`
	var ok bool
	err := r.db.QueryRow(ctx, q, subscriberID, magazineID).Scan(&ok)
	return ok, err
}

func (r *subscriptionRepo) ListBySubscriber(ctx context.Context, subscriberID string, limit, offset int) ([]*models.Subscription, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1`, subscriberID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
		SELECT s.id, s.subscriber_id, s.magazine_id, s.status, s.start_at, s.end_at,
		       m.id, m.title, m.cover_url
		FROM subscriptions s
		JOIN magazines m ON m.id = s.magazine_id
		WHERE s.subscriber_id = $1
		ORDER BY s.start_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, q, subscriberID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	now := time.Now()
	var list []*models.Subscription
	for rows.Next() {
		var s models.Subscription
		var m models.MagazineLite
		if err := rows.Scan(
			&s.ID, &s.SubscriberID, &s.MagazineID, &s.Status, &s.StartAt, &s.EndAt,
			&m.ID, &m.Title, &m.CoverURL,
		); err != nil {
			return nil, 0, err
		}
		s.Status = s.EffectiveStatus(now)
		s.Magazine = &m
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// ExpireOverdue переводит просроченные ACTIVE-записи в EXPIRED.
func (r *subscriptionRepo) ExpireOverdue(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE subscriptions SET status = 'EXPIRED' WHERE status = 'ACTIVE' AND end_at <= NOW()`,
	)
	if err != nil {
		logger.Log.Error("Ошибка чистки просроченных подписок (repo)", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *subscriptionRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE status = 'ACTIVE' AND end_at > NOW()`,
	).Scan(&n)
	return n, err
}

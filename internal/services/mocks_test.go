package services

import (
	"context"
	"fmt"
	"os"
	"testing"

	"zhurnal/internal/logger"
	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// --- подписки ---

type subRepoMock struct {
	active  map[string]*models.Subscription // "subscriber|magazine"
	created []*models.Subscription
	hasErr  error
}

func newSubRepoMock() *subRepoMock {
	return &subRepoMock{active: map[string]*models.Subscription{}}
}

func subKey(subscriberID, magazineID string) string {
	return subscriberID + "|" + magazineID
}

func (m *subRepoMock) Create(_ context.Context, s *models.Subscription) error {
	if s.ID == "" {
		s.ID = fmt.Sprintf("sub-%d", len(m.created)+1)
	}
	m.created = append(m.created, s)
	m.active[subKey(s.SubscriberID, s.MagazineID)] = s
	return nil
}

func (m *subRepoMock) GetActive(_ context.Context, subscriberID, magazineID string) (*models.Subscription, error) {
	s, ok := m.active[subKey(subscriberID, magazineID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (m *subRepoMock) HasActive(_ context.Context, subscriberID, magazineID string) (bool, error) {
	if m.hasErr != nil {
		return false, m.hasErr
	}
	_, ok := m.active[subKey(subscriberID, magazineID)]
	return ok, nil
}

func (m *subRepoMock) ListBySubscriber(_ context.Context, subscriberID string, limit, offset int) ([]*models.Subscription, int, error) {
	var all []*models.Subscription
	for _, s := range m.created {
		if s.SubscriberID == subscriberID {
			all = append(all, s)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *subRepoMock) ExpireOverdue(_ context.Context) (int64, error) { return 0, nil }

func (m *subRepoMock) CountActive(_ context.Context) (int, error) { return len(m.active), nil }

// --- журналы ---

type magRepoMock struct {
	items map[string]*models.Magazine
}

func newMagRepoMock(mags ...*models.Magazine) *magRepoMock {
	m := &magRepoMock{items: map[string]*models.Magazine{}}
	for _, mag := range mags {
		m.items[mag.ID] = mag
	}
	return m
}

func (m *magRepoMock) Create(_ context.Context, mag *models.Magazine) error {
	if mag.ID == "" {
		mag.ID = fmt.Sprintf("mag-%d", len(m.items)+1)
	}
	m.items[mag.ID] = mag
	return nil
}

func (m *magRepoMock) GetByID(_ context.Context, id string) (*models.Magazine, error) {
	mag, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return mag, nil
}

func (m *magRepoMock) List(_ context.Context, limit, offset int, search, publisherID string) ([]*models.Magazine, int, error) {
	var all []*models.Magazine
	for _, mag := range m.items {
		if publisherID != "" && !mag.OwnedBy(publisherID) {
			continue
		}
		all = append(all, mag)
	}
	return all, len(all), nil
}

func (m *magRepoMock) Update(_ context.Context, mag *models.Magazine) error {
	if _, ok := m.items[mag.ID]; !ok {
		return repository.ErrNotFound
	}
	m.items[mag.ID] = mag
	return nil
}

func (m *magRepoMock) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *magRepoMock) Count(_ context.Context) (int, error) { return len(m.items), nil }

// --- статьи ---

type articleRepoMock struct {
	items map[string]*models.Article
	order []string
}

func newArticleRepoMock(articles ...*models.Article) *articleRepoMock {
	m := &articleRepoMock{items: map[string]*models.Article{}}
	for _, a := range articles {
		m.items[a.ID] = a
		m.order = append(m.order, a.ID)
	}
	return m
}

func (m *articleRepoMock) Create(_ context.Context, a *models.Article) error {
	if a.ID == "" {
		a.ID = fmt.Sprintf("art-%d", len(m.items)+1)
	}
	m.items[a.ID] = a
	m.order = append(m.order, a.ID)
	return nil
}

func (m *articleRepoMock) GetByID(_ context.Context, id string) (*models.Article, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (m *articleRepoMock) ListByMagazine(_ context.Context, magazineID string, limit, offset int, status string) ([]*models.ArticleRow, int, error) {
	var rows []*models.ArticleRow
	for _, id := range m.order {
		a := m.items[id]
		if a.MagazineID != magazineID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		rows = append(rows, &models.ArticleRow{ID: a.ID, Title: a.Title, Status: a.Status})
	}
	total := len(rows)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return rows[offset:end], total, nil
}

func (m *articleRepoMock) Update(_ context.Context, a *models.Article) error {
	if _, ok := m.items[a.ID]; !ok {
		return repository.ErrNotFound
	}
	m.items[a.ID] = a
	return nil
}

func (m *articleRepoMock) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *articleRepoMock) SetStatus(_ context.Context, id string, status string) error {
	a, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = status
	return nil
}

func (m *articleRepoMock) Count(_ context.Context) (int, error) { return len(m.items), nil }

// --- комментарии ---

type commentRepoMock struct {
	items map[string]*models.Comment
	order []string
}

func newCommentRepoMock() *commentRepoMock {
	return &commentRepoMock{items: map[string]*models.Comment{}}
}

func (m *commentRepoMock) Create(_ context.Context, c *models.Comment) error {
	if c.ID == "" {
		c.ID = fmt.Sprintf("com-%d", len(m.items)+1)
	}
	m.items[c.ID] = c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *commentRepoMock) GetByID(_ context.Context, id string) (*models.Comment, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (m *commentRepoMock) ListByArticle(_ context.Context, articleID string, limit, offset int) ([]*models.Comment, int, error) {
	var all []*models.Comment
	for _, id := range m.order {
		if c, ok := m.items[id]; ok && c.ArticleID == articleID {
			all = append(all, c)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *commentRepoMock) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// --- пользователи ---

type userRepoMock struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newUserRepoMock(users ...*models.User) *userRepoMock {
	m := &userRepoMock{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
	for _, u := range users {
		m.byEmail[u.Email] = u
		m.byID[u.ID] = u
	}
	return m
}

func (m *userRepoMock) Create(_ context.Context, u *models.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(m.byID)+1)
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *userRepoMock) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *userRepoMock) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *userRepoMock) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *userRepoMock) GetAllPaginated(_ context.Context, limit, offset int, search string) ([]*models.User, int, error) {
	var all []*models.User
	for _, u := range m.byID {
		all = append(all, u)
	}
	return all, len(all), nil
}

func (m *userRepoMock) UpdateRoleStatus(_ context.Context, id string, role, status *string) error {
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if role != nil {
		u.Role = *role
	}
	if status != nil {
		u.Status = *status
	}
	return nil
}

func (m *userRepoMock) Count(_ context.Context) (int, error) { return len(m.byID), nil }

// --- фикстуры ---

func strp(s string) *string { return &s }

func fixtureMagazine(id, publisherID string) *models.Magazine {
	return &models.Magazine{ID: id, Title: "Вестник Go", PublisherID: strp(publisherID)}
}

func fixtureArticle(id, magazineID, status string) *models.Article {
	return &models.Article{
		ID:         id,
		MagazineID: magazineID,
		Title:      "Про горутины",
		Summary:    strp("Коротко о главном"),
		Content:    strp("Полный текст статьи"),
		Status:     status,
	}
}

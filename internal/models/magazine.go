package models

import "time"

type Magazine struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CoverURL    *string   `json:"coverUrl,omitempty"`
	PublisherID *string   `json:"publisherId,omitempty"`
	Publisher   *UserLite `json:"publisher,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MagazineLite — карточка журнала для вложенных ответов (подписки и т.п.).
type MagazineLite struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	CoverURL *string `json:"coverUrl,omitempty"`
}

func (m *Magazine) Lite() MagazineLite {
	return MagazineLite{ID: m.ID, Title: m.Title, CoverURL: m.CoverURL}
}

// OwnedBy — принадлежит ли журнал пользователю.
func (m *Magazine) OwnedBy(userID string) bool {
	return m.PublisherID != nil && *m.PublisherID == userID
}

// swagger:model CreateMagazineRequest
type CreateMagazineRequest struct {
	Title       string `json:"title" example:"Вестник Go"`
	Description string `json:"description,omitempty" example:"Ежемесячный журнал о бэкенде"`
	CoverURL    string `json:"coverUrl,omitempty" example:"https://cdn.example.com/cover.png"`
	// Издатель, за которым закрепляется журнал; пусто — создатель.
	PublisherID string `json:"publisherId,omitempty"`
}

// swagger:model UpdateMagazineRequest
type UpdateMagazineRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"coverUrl,omitempty"`
}

package models

import "time"

const (
	ArticleDraft     = "DRAFT"
	ArticlePublished = "PUBLISHED"
)

// Решение о доступе к статье. Считается только на сервере: при SUMMARY_ONLY
// поле content вырезается из ответа, а не прячется на клиенте.
const (
	AccessFull        = "FULL"
	AccessSummaryOnly = "SUMMARY_ONLY"
)

type Article struct {
	ID          string     `json:"id"`
	MagazineID  string     `json:"magazineId"`
	Title       string     `json:"title"`
	Summary     *string    `json:"summary,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Trimmed возвращает копию статьи без content — для ответа SUMMARY_ONLY.
func (a *Article) Trimmed() *Article {
	cp := *a
	cp.Content = nil
	return &cp
}

// ArticleWithAccess — ответ GET /api/articles/{id}.
type ArticleWithAccess struct {
	Article *Article `json:"article"`
	Access  string   `json:"access"`
}

// ArticleRow — строка списка статей журнала (без content).
type ArticleRow struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     *string    `json:"summary,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// swagger:model CreateArticleRequest
type CreateArticleRequest struct {
	Title   string  `json:"title" example:"Как писать middleware в Go"`
	Summary string  `json:"summary,omitempty" example:"Короткое описание для превью"`
	Content string  `json:"content,omitempty" example:"# Заголовок\n\nТекст в markdown"`
	Status  *string `json:"status,omitempty" example:"PUBLISHED"`
}

// swagger:model UpdateArticleRequest
type UpdateArticleRequest struct {
	Title   *string `json:"title,omitempty"`
	Summary *string `json:"summary,omitempty"`
	Content *string `json:"content,omitempty"`
}

// swagger:model PreviewRequest
type PreviewRequest struct {
	Content string `json:"content" example:"# Markdown"`
}

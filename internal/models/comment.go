package models

import "time"

type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"-"`
	AuthorID  string    `json:"-"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	User      UserLite  `json:"user"`
}

// swagger:model CreateCommentRequest
type CreateCommentRequest struct {
	Body string `json:"body" example:"Отличная статья!"`
}

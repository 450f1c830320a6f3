package apiclient

import (
	"context"
	"io"

	"zhurnal/internal/models"
)

// CommentPager постранично накапливает комментарии статьи. Двигается только
// вперёд; после создания или удаления комментария нужно вызвать Invalidate,
// локальная правка накопленного не предусмотрена.
type CommentPager struct {
	client    *Client
	articleID string
	pageSize  int

	page  int
	total int
	acc   []*models.Comment
	done  bool
}

func NewCommentPager(client *Client, articleID string, pageSize int) *CommentPager {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &CommentPager{client: client, articleID: articleID, pageSize: pageSize}
}

// Next загружает следующую страницу и возвращает её элементы.
// Когда накоплено всё, возвращает io.EOF.
func (p *CommentPager) Next(ctx context.Context) ([]*models.Comment, error) {
	if p.done {
		return nil, io.EOF
	}
	list, err := p.client.Comments(ctx, p.articleID, p.page+1, p.pageSize)
	if err != nil {
		return nil, err
	}
	p.page++
	p.total = list.Total
	p.acc = append(p.acc, list.Items...)
	if len(p.acc) >= p.total || len(list.Items) == 0 {
		p.done = true
	}
	return list.Items, nil
}

// Comments возвращает всё накопленное к этому моменту.
func (p *CommentPager) Comments() []*models.Comment {
	return p.acc
}

// Total — общее число комментариев по данным последней загрузки.
func (p *CommentPager) Total() int {
	return p.total
}

// Done сообщает, что все страницы загружены.
func (p *CommentPager) Done() bool {
	return p.done
}

// Invalidate сбрасывает пагинатор к первой странице и забывает накопленное.
func (p *CommentPager) Invalidate() {
	p.page = 0
	p.total = 0
	p.acc = nil
	p.done = false
}

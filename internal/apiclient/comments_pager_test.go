package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"zhurnal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentServer отдаёт страницы из живого среза, как это делает сервер.
type commentServer struct {
	comments []*models.Comment
}

func (s *commentServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if page < 1 {
			page = 1
		}
		if size < 1 {
			size = 20
		}
		start := (page - 1) * size
		end := start + size
		total := len(s.comments)
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}
		json.NewEncoder(w).Encode(List[*models.Comment]{
			Items:    s.comments[start:end],
			Total:    total,
			Page:     page,
			PageSize: size,
		})
	})
}

func makeComments(n int) []*models.Comment {
	out := make([]*models.Comment, n)
	for i := range out {
		out[i] = &models.Comment{ID: fmt.Sprintf("com-%d", i+1), Body: fmt.Sprintf("Комментарий %d", i+1)}
	}
	return out
}

func TestCommentPager_AccumulatesAllPages(t *testing.T) {
	cs := &commentServer{comments: makeComments(25)}
	srv := httptest.NewServer(cs.handler())
	defer srv.Close()

	pager := NewCommentPager(NewClient(srv.URL), "art-1", 10)
	ctx := context.Background()

	var pages int
	for {
		_, err := pager.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		pages++
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, 25, pager.Total())
	require.Len(t, pager.Comments(), 25)

	// Без пропусков и дублей.
	seen := map[string]bool{}
	for i, c := range pager.Comments() {
		assert.Equal(t, fmt.Sprintf("com-%d", i+1), c.ID)
		assert.False(t, seen[c.ID], "дубль %s", c.ID)
		seen[c.ID] = true
	}
}

func TestCommentPager_ExhaustionIsSticky(t *testing.T) {
	cs := &commentServer{comments: makeComments(3)}
	srv := httptest.NewServer(cs.handler())
	defer srv.Close()

	pager := NewCommentPager(NewClient(srv.URL), "art-1", 10)
	ctx := context.Background()

	_, err := pager.Next(ctx)
	require.NoError(t, err)
	assert.True(t, pager.Done())

	for i := 0; i < 3; i++ {
		_, err = pager.Next(ctx)
		require.ErrorIs(t, err, io.EOF)
	}
}

func TestCommentPager_EmptyArticle(t *testing.T) {
	cs := &commentServer{}
	srv := httptest.NewServer(cs.handler())
	defer srv.Close()

	pager := NewCommentPager(NewClient(srv.URL), "art-1", 10)

	items, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, pager.Done())
}

// После создания комментария пагинатор перечитывается с первой страницы,
// а не дописывает новый элемент в накопленное.
func TestCommentPager_InvalidateRefetches(t *testing.T) {
	cs := &commentServer{comments: makeComments(12)}
	srv := httptest.NewServer(cs.handler())
	defer srv.Close()

	pager := NewCommentPager(NewClient(srv.URL), "art-1", 10)
	ctx := context.Background()

	for {
		if _, err := pager.Next(ctx); err == io.EOF {
			break
		} else {
			require.NoError(t, err)
		}
	}
	require.Len(t, pager.Comments(), 12)

	// На сервере появился новый комментарий.
	cs.comments = append(cs.comments, &models.Comment{ID: "com-13", Body: "Новый"})
	pager.Invalidate()
	assert.False(t, pager.Done())
	assert.Empty(t, pager.Comments())

	for {
		if _, err := pager.Next(ctx); err == io.EOF {
			break
		} else {
			require.NoError(t, err)
		}
	}
	require.Len(t, pager.Comments(), 13)
	assert.Equal(t, "com-13", pager.Comments()[12].ID)
}

func TestCommentPager_ForbiddenWithoutAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	pager := NewCommentPager(NewClient(srv.URL), "art-1", 10)
	_, err := pager.Next(context.Background())
	require.ErrorIs(t, err, ErrForbidden)
	assert.False(t, pager.Done(), "ошибка не считается исчерпанием")
}

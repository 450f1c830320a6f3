package services

import (
	"context"
	"strings"
	"testing"

	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	comments *commentRepoMock
	svc      CommentService
}

// Журнал mag-1 принадлежит pub-1; статья art-1 опубликована; у sub-1 есть
// активная подписка, у sub-2 — нет.
func newCommentFixture() *commentFixture {
	mags := newMagRepoMock(
		fixtureMagazine("mag-1", "pub-1"),
		fixtureMagazine("mag-2", "pub-2"),
	)
	articles := newArticleRepoMock(
		fixtureArticle("art-1", "mag-1", models.ArticlePublished),
		fixtureArticle("art-2", "mag-1", models.ArticleDraft),
	)
	subs := newSubRepoMock()
	subs.active[subKey("sub-1", "mag-1")] = &models.Subscription{ID: "s-1"}

	comments := newCommentRepoMock()
	resolver := NewAccessResolver(subs)
	return &commentFixture{
		comments: comments,
		svc:      NewCommentService(comments, articles, mags, resolver, nil),
	}
}

func TestCommentCreate_RequiresFullAccess(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "art-1", "Отличная статья", Caller{ID: "sub-2", Role: models.RoleSubscriber})
	require.ErrorIs(t, err, repository.ErrForbidden)

	c, err := f.svc.Create(ctx, "art-1", "Отличная статья", Caller{ID: "sub-1", Role: models.RoleSubscriber})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", c.AuthorID)
}

func TestCommentCreate_Validation(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	caller := Caller{ID: "sub-1", Role: models.RoleSubscriber}

	_, err := f.svc.Create(ctx, "art-1", "   ", caller)
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(ctx, "art-1", strings.Repeat("я", 4001), caller)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCommentList_GatedLikeContent(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	_, _, err := f.svc.ListByArticle(ctx, "art-1", 1, 10, Caller{})
	require.ErrorIs(t, err, repository.ErrForbidden)

	_, _, err = f.svc.ListByArticle(ctx, "art-1", 1, 10, Caller{ID: "sub-2", Role: models.RoleSubscriber})
	require.ErrorIs(t, err, repository.ErrForbidden)

	items, total, err := f.svc.ListByArticle(ctx, "art-1", 1, 10, Caller{ID: "sub-1", Role: models.RoleSubscriber})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, items)
}

func TestCommentDelete_Permissions(t *testing.T) {
	cases := []struct {
		name    string
		caller  Caller
		wantErr error
	}{
		{"автор удаляет свой комментарий", Caller{ID: "sub-1", Role: models.RoleSubscriber}, nil},
		{"админ удаляет любой", Caller{ID: "adm-1", Role: models.RoleAdmin}, nil},
		{"издатель своего журнала удаляет", Caller{ID: "pub-1", Role: models.RolePublisher}, nil},
		{"издатель чужого журнала — нет", Caller{ID: "pub-2", Role: models.RolePublisher}, repository.ErrForbidden},
		{"посторонний подписчик — нет", Caller{ID: "sub-3", Role: models.RoleSubscriber}, repository.ErrForbidden},
		{"аноним — нет", Caller{}, repository.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCommentFixture()
			ctx := context.Background()

			c, err := f.svc.Create(ctx, "art-1", "Комментарий", Caller{ID: "sub-1", Role: models.RoleSubscriber})
			require.NoError(t, err)

			err = f.svc.Delete(ctx, c.ID, tc.caller)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				_, getErr := f.comments.GetByID(ctx, c.ID)
				assert.NoError(t, getErr, "комментарий должен остаться")
				return
			}
			require.NoError(t, err)
			_, getErr := f.comments.GetByID(ctx, c.ID)
			assert.ErrorIs(t, getErr, repository.ErrNotFound)
		})
	}
}

func TestCommentDelete_NotFound(t *testing.T) {
	f := newCommentFixture()
	err := f.svc.Delete(context.Background(), "missing", Caller{ID: "adm-1", Role: models.RoleAdmin})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

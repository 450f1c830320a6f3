package services

import (
	"context"
	"testing"

	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessResolver_Resolve(t *testing.T) {
	const (
		publisherID  = "pub-1"
		subscriberID = "sub-1"
		adminID      = "adm-1"
		strangerID   = "sub-2"
	)

	mag := fixtureMagazine("mag-1", publisherID)
	published := fixtureArticle("art-1", "mag-1", models.ArticlePublished)
	draft := fixtureArticle("art-2", "mag-1", models.ArticleDraft)

	subs := newSubRepoMock()
	subs.active[subKey(subscriberID, "mag-1")] = &models.Subscription{ID: "s-1"}

	resolver := NewAccessResolver(subs)
	ctx := context.Background()

	cases := []struct {
		name    string
		article *models.Article
		caller  Caller
		want    string
		wantErr error
	}{
		{"аноним видит превью опубликованной", published, Caller{}, models.AccessSummaryOnly, nil},
		{"подписчик с активной подпиской видит полный текст", published, Caller{ID: subscriberID, Role: models.RoleSubscriber}, models.AccessFull, nil},
		{"без подписки — только превью", published, Caller{ID: strangerID, Role: models.RoleSubscriber}, models.AccessSummaryOnly, nil},
		{"владелец журнала видит полный текст без подписки", published, Caller{ID: publisherID, Role: models.RolePublisher}, models.AccessFull, nil},
		{"админ видит полный текст", published, Caller{ID: adminID, Role: models.RoleAdmin}, models.AccessFull, nil},
		{"черновик для анонима — как несуществующая статья", draft, Caller{}, "", repository.ErrNotFound},
		{"черновик для подписчика с подпиской — тоже не найден", draft, Caller{ID: subscriberID, Role: models.RoleSubscriber}, "", repository.ErrNotFound},
		{"черновик виден владельцу", draft, Caller{ID: publisherID, Role: models.RolePublisher}, models.AccessFull, nil},
		{"черновик виден админу", draft, Caller{ID: adminID, Role: models.RoleAdmin}, models.AccessFull, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolver.Resolve(ctx, tc.article, mag, tc.caller)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAccessResolver_PublisherOfOtherMagazine(t *testing.T) {
	mag := fixtureMagazine("mag-1", "pub-1")
	article := fixtureArticle("art-1", "mag-1", models.ArticlePublished)

	resolver := NewAccessResolver(newSubRepoMock())

	// Издатель, но не этого журнала: привилегий нет.
	got, err := resolver.Resolve(context.Background(), article, mag, Caller{ID: "pub-2", Role: models.RolePublisher})
	require.NoError(t, err)
	assert.Equal(t, models.AccessSummaryOnly, got)
}

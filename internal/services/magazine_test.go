package services

import (
	"context"
	"testing"

	"zhurnal/internal/models"
	"zhurnal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagazineCreate_AdminOnly(t *testing.T) {
	repo := newMagRepoMock()
	svc := NewMagazineService(repo, nil)
	ctx := context.Background()
	req := models.CreateMagazineRequest{Title: "Вестник Go"}

	for _, caller := range []Caller{
		{},
		{ID: "pub-1", Role: models.RolePublisher},
		{ID: "sub-1", Role: models.RoleSubscriber},
	} {
		_, err := svc.Create(ctx, req, caller)
		require.ErrorIs(t, err, repository.ErrForbidden)
	}

	m, err := svc.Create(ctx, req, Caller{ID: "adm-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotNil(t, m.PublisherID)
	assert.Equal(t, "adm-1", *m.PublisherID, "без publisherId журнал закрепляется за создателем")
}

func TestMagazineCreate_AssignsPublisher(t *testing.T) {
	svc := NewMagazineService(newMagRepoMock(), nil)

	m, err := svc.Create(context.Background(), models.CreateMagazineRequest{
		Title:       "Вестник Go",
		PublisherID: "pub-7",
	}, Caller{ID: "adm-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotNil(t, m.PublisherID)
	assert.Equal(t, "pub-7", *m.PublisherID)
}

func TestMagazineUpdate_OwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	newTitle := "Новое имя"

	cases := []struct {
		name    string
		caller  Caller
		wantErr error
	}{
		{"владелец", Caller{ID: "pub-1", Role: models.RolePublisher}, nil},
		{"админ", Caller{ID: "adm-1", Role: models.RoleAdmin}, nil},
		{"чужой издатель", Caller{ID: "pub-2", Role: models.RolePublisher}, repository.ErrForbidden},
		{"аноним", Caller{}, repository.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewMagazineService(newMagRepoMock(fixtureMagazine("mag-1", "pub-1")), nil)
			m, err := svc.Update(ctx, "mag-1", models.UpdateMagazineRequest{Title: &newTitle}, tc.caller)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, newTitle, m.Title)
		})
	}
}

func TestMagazineList_MineRequiresAuth(t *testing.T) {
	svc := NewMagazineService(newMagRepoMock(
		fixtureMagazine("mag-1", "pub-1"),
		fixtureMagazine("mag-2", "pub-2"),
	), nil)
	ctx := context.Background()

	_, _, err := svc.List(ctx, 1, 10, "", true, Caller{})
	require.ErrorIs(t, err, repository.ErrForbidden)

	items, total, err := svc.List(ctx, 1, 10, "", true, Caller{ID: "pub-1", Role: models.RolePublisher})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "mag-1", items[0].ID)
}

func TestMagazineDelete_Forbidden(t *testing.T) {
	svc := NewMagazineService(newMagRepoMock(fixtureMagazine("mag-1", "pub-1")), nil)
	err := svc.Delete(context.Background(), "mag-1", Caller{ID: "sub-1", Role: models.RoleSubscriber})
	require.ErrorIs(t, err, repository.ErrForbidden)
}

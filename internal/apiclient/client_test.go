package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"zhurnal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"401 → ErrUnauthenticated", http.StatusUnauthorized, ErrUnauthenticated},
		{"403 → ErrForbidden", http.StatusForbidden, ErrForbidden},
		{"404 → ErrNotFound", http.StatusNotFound, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			_, err := c.Article(context.Background(), "art-1")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClient_ValidationErrorKeepsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "пустой комментарий"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CreateComment(context.Background(), "art-1", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "пустой комментарий", apiErr.Message)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{ID: "user-1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok-123")
	_, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_LoginStoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.AuthResponse{
			User:  &models.User{ID: "user-1", Email: "a@b.ru"},
			Token: "tok-from-login",
		})
	})
	var gotAuth string
	mux.HandleFunc("GET /api/profile", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{ID: "user-1"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Login(context.Background(), "a@b.ru", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-from-login", resp.Token)

	_, err = c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-from-login", gotAuth)
}

// Сценарий платного доступа: без подписки статья приходит без content,
// после оформления подписки — полностью.
func TestClient_SubscriptionGateScenario(t *testing.T) {
	content := "Полный текст"
	subscribed := false

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/articles/art-1", func(w http.ResponseWriter, r *http.Request) {
		a := &models.Article{ID: "art-1", MagazineID: "mag-1", Title: "Про горутины", Status: models.ArticlePublished}
		access := models.AccessSummaryOnly
		if subscribed {
			a.Content = &content
			access = models.AccessFull
		}
		json.NewEncoder(w).Encode(models.ArticleWithAccess{Article: a, Access: access})
	})
	mux.HandleFunc("POST /api/magazines/mag-1/subscribe", func(w http.ResponseWriter, r *http.Request) {
		already := subscribed
		subscribed = true
		if !already {
			w.WriteHeader(http.StatusCreated)
		}
		json.NewEncoder(w).Encode(models.SubscribeResponse{ID: "sub-1", AlreadyActive: already})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	before, err := c.Article(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, models.AccessSummaryOnly, before.Access)
	assert.Nil(t, before.Article.Content)

	sub, err := c.Subscribe(ctx, "mag-1")
	require.NoError(t, err)
	assert.False(t, sub.AlreadyActive)

	after, err := c.Article(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, models.AccessFull, after.Access)
	require.NotNil(t, after.Article.Content)
	assert.Equal(t, content, *after.Article.Content)

	// Повторная подписка идемпотентна.
	again, err := c.Subscribe(ctx, "mag-1")
	require.NoError(t, err)
	assert.True(t, again.AlreadyActive)
	assert.Equal(t, sub.ID, again.ID)
}

package apiclient

import (
	"os"
	"path/filepath"
	"testing"

	"zhurnal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_SaveLoadClear(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "пустой каталог — нет сессии")

	sess := &Session{
		User:  &models.User{ID: "user-1", Email: "a@b.ru", Role: models.RoleSubscriber},
		Token: "tok-123",
	}
	require.NoError(t, store.Save(sess))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-123", loaded.Token)
	assert.Equal(t, "user-1", loaded.User.ID)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionStore_SaveRemovesLegacyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth_token"), []byte("old-token"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth_user"), []byte(`{"id":"u"}`), 0o600))

	store := NewSessionStore(dir)
	require.NoError(t, store.Save(&Session{Token: "tok"}))

	assert.NoFileExists(t, filepath.Join(dir, "auth_token"))
	assert.NoFileExists(t, filepath.Join(dir, "auth_user"))
	assert.FileExists(t, filepath.Join(dir, "session.json"))
}

func TestSessionStore_ClearRemovesLegacyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth_token"), []byte("old-token"), 0o600))

	store := NewSessionStore(dir)
	require.NoError(t, store.Clear())

	assert.NoFileExists(t, filepath.Join(dir, "auth_token"))
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	store := NewSessionStore(t.TempDir())
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

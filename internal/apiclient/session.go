package apiclient

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"zhurnal/internal/models"
)

const sessionFile = "session.json"

// Старый формат хранил токен и пользователя в двух отдельных файлах.
// При входе и выходе они подчищаются.
var legacyFiles = []string{"auth_token", "auth_user"}

// Session — сохранённая авторизация: пользователь и его токен.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// SessionStore хранит сессию одним JSON-файлом в каталоге dir.
type SessionStore struct {
	dir string
}

func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

func (s *SessionStore) path() string {
	return filepath.Join(s.dir, sessionFile)
}

// Save записывает сессию и удаляет файлы старого формата.
func (s *SessionStore) Save(sess *Session) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return err
	}
	s.removeLegacy()
	return nil
}

// Load читает сохранённую сессию. Если её нет, возвращает (nil, nil).
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Clear удаляет сессию вместе с файлами старого формата.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.removeLegacy()
	return nil
}

func (s *SessionStore) removeLegacy() {
	for _, name := range legacyFiles {
		os.Remove(filepath.Join(s.dir, name))
	}
}

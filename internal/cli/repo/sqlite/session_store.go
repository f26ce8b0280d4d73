package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"Almonium/internal/cli/repo"

	_ "modernc.org/sqlite"
)

const (
	keyToken = "auth_token"
	keyLogin = "last_login"
)

// SessionStore — хранилище токена и логина в локальной БД SQLite.
type SessionStore struct {
	db *sql.DB
}

var _ repo.SessionStore = (*SessionStore)(nil)

// Open открывает (и создаёт при необходимости) файл БД по пути path.
// Каталог создаётся с правами 0700.
func Open(path string) (*SessionStore, error) {
	if path == "" {
		return nil, errors.New("empty session db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SessionStore{db: db}, nil
}

// Close закрывает соединение с БД.
func (s *SessionStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate гарантирует наличие таблицы session.
func (s *SessionStore) Migrate() error {
	_, err := s.db.Exec(initialDDL())
	return err
}

// Save сохраняет auth-токен.
func (s *SessionStore) Save(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return s.put(keyToken, token)
}

// Load читает auth-токен.
func (s *SessionStore) Load() (string, error) {
	return s.get(keyToken, "no stored token")
}

// Clear удаляет auth-токен.
func (s *SessionStore) Clear() error {
	return s.del(keyToken)
}

// SaveLogin сохраняет логин пользователя.
func (s *SessionStore) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	return s.put(keyLogin, login)
}

// LoadLogin читает логин пользователя.
func (s *SessionStore) LoadLogin() (string, error) {
	return s.get(keyLogin, "no stored login")
}

// ClearLogin удаляет логин пользователя.
func (s *SessionStore) ClearLogin() error {
	return s.del(keyLogin)
}

func (s *SessionStore) put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO session(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, strings.TrimSpace(value), time.Now().Unix(),
	)
	return err
}

func (s *SessionStore) get(key, missingMsg string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errors.New(missingMsg)
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	if v == "" {
		return "", errors.New(missingMsg)
	}
	return v, nil
}

func (s *SessionStore) del(key string) error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, key)
	return err
}

package auth

import (
	"errors"
	"fmt"

	"Almonium/internal/cli/interceptor"
	"Almonium/internal/cli/repo"

	"go.uber.org/zap"
)

// Session — клиентское хранилище учётных данных: токен и логин текущего пользователя.
// Именно его читает AuthInterceptor и очищает при 401.
type Session struct {
	tokens repo.TokenStore
	users  repo.UserContextStore
	logger *zap.SugaredLogger
}

var _ interceptor.TokenStorage = (*Session)(nil)

// NewSession создаёт сессию поверх хранилищ токена и логина.
func NewSession(tokens repo.TokenStore, users repo.UserContextStore, logger *zap.SugaredLogger) *Session {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Session{tokens: tokens, users: users, logger: logger}
}

// GetToken returns the stored token, or false when none is stored.
func (s *Session) GetToken() (string, bool) {
	tok, err := s.tokens.Load()
	if err != nil {
		s.logger.Debugw("no stored token", "error", err)
		return "", false
	}
	return tok, tok != ""
}

// SignIn сохраняет токен и логин после успешного входа.
func (s *Session) SignIn(login, token string) error {
	if err := s.tokens.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if login == "" {
		return nil
	}
	if err := s.users.SaveLogin(login); err != nil {
		return fmt.Errorf("save login: %w", err)
	}
	return nil
}

// SignOut clears both the token and the stored login. Both are attempted
// even if the first one fails.
func (s *Session) SignOut() error {
	var errs []error
	if err := s.tokens.Clear(); err != nil {
		errs = append(errs, fmt.Errorf("clear token: %w", err))
	}
	if err := s.users.ClearLogin(); err != nil {
		errs = append(errs, fmt.Errorf("clear login: %w", err))
	}
	return errors.Join(errs...)
}

// CurrentUser возвращает логин текущего пользователя.
func (s *Session) CurrentUser() (string, error) {
	return s.users.LoadLogin()
}

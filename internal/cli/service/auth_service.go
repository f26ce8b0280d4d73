package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"Almonium/internal/cli/api"
	"Almonium/internal/cli/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrLoginTaken         = errors.New("login already in use")
	ErrNotLoggedIn        = errors.New("not logged in: run login first")
)

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService interface {
	// Register регистрирует пользователя; при успехе сразу выполняет вход.
	Register(ctx context.Context, login, password string) error

	// Login логирование пользователя.
	Login(ctx context.Context, login, password string) error

	// Logout очищает локальный контекст аутентификации.
	Logout() error

	// CurrentUser возвращает логин текущего пользователя, если он установлен.
	CurrentUser() (string, error)

	// Profile запрашивает у сервера данные текущего пользователя.
	Profile(ctx context.Context) (*api.UserInfo, error)
}

type authService struct {
	api     *api.Client
	session *auth.Session
}

// NewAuthService создаёт сервис аутентификации поверх API-клиента и сессии.
func NewAuthService(client *api.Client, session *auth.Session) AuthService {
	return &authService{api: client, session: session}
}

func (s *authService) Register(ctx context.Context, login, password string) error {
	resp, body, err := s.api.PostJSON(ctx, "/api/auth/signup", api.Credentials{Login: login, Password: password})
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		return ErrLoginTaken
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	return s.Login(ctx, login, password)
}

func (s *authService) Login(ctx context.Context, login, password string) error {
	resp, body, err := s.api.PostJSON(ctx, "/api/auth/signin", api.Credentials{Login: login, Password: password})
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidCredentials
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	ar, err := api.ParseAuthResponse(body)
	if err != nil {
		return err
	}
	name := ar.User.Login
	if name == "" {
		name = login
	}
	if err := s.session.SignIn(name, ar.AccessToken); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	return nil
}

func (s *authService) Logout() error {
	return s.session.SignOut()
}

func (s *authService) CurrentUser() (string, error) {
	login, err := s.session.CurrentUser()
	if err != nil {
		return "", ErrNotLoggedIn
	}
	return login, nil
}

func (s *authService) Profile(ctx context.Context) (*api.UserInfo, error) {
	resp, body, err := s.api.GetJSON(ctx, "/api/users/me")
	if err != nil {
		return nil, err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return nil, err
	}
	var u api.UserInfo
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &u, nil
}

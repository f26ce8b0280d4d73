package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Credentials — тело запросов signup/signin.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UserInfo — публичная информация о пользователе.
type UserInfo struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// AuthResponse — ответ /api/auth/signin.
type AuthResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	User        UserInfo `json:"user"`
}

// ParseAuthResponse извлекает токен и данные пользователя из ответа signin.
func ParseAuthResponse(body []byte) (*AuthResponse, error) {
	var ar AuthResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if ar.AccessToken == "" {
		return nil, errors.New("no access token in response")
	}
	return &ar, nil
}

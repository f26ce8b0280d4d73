package api

import (
	"fmt"
	"net/http"
)

// StatusError — ответ сервера с неуспешным статусом.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server status %d", e.StatusCode)
	}
	return fmt.Sprintf("server status %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus lets the auth interceptor and callers read the status via errors.As.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// CheckStatus возвращает *StatusError для любого статуса вне 2xx.
func CheckStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}

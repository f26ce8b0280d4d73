package interceptor

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// DefaultLoginPath — путь экрана входа, куда уводим пользователя после 401.
const DefaultLoginPath = "/login"

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// TokenStorage — хранилище токена, из которого интерсептор читает токен и которое очищает при 401.
type TokenStorage interface {
	// GetToken возвращает текущий токен; false, если токена нет.
	GetToken() (string, bool)
	// SignOut очищает локально сохранённые учётные данные.
	SignOut() error
}

// Navigator даёт доступ к текущему пути клиента и позволяет сменить его.
type Navigator interface {
	CurrentPath() string
	Redirect(path string)
}

// StatusCoder реализуют ошибки, несущие HTTP-статус ответа.
type StatusCoder interface {
	HTTPStatus() int
}

// AuthInterceptor добавляет bearer-токен к исходящим запросам и возвращает
// клиента на экран входа, когда сервер отвечает 401.
type AuthInterceptor struct {
	Next      http.RoundTripper
	Tokens    TokenStorage
	Navigator Navigator
	LoginPath string
	Logger    *zap.SugaredLogger
}

// NewAuthInterceptor создаёт интерсептор с путём входа по умолчанию.
func NewAuthInterceptor(next http.RoundTripper, tokens TokenStorage, nav Navigator) *AuthInterceptor {
	if next == nil {
		next = http.DefaultTransport
	}
	return &AuthInterceptor{
		Next:      next,
		Tokens:    tokens,
		Navigator: nav,
		LoginPath: DefaultLoginPath,
		Logger:    zap.NewNop().Sugar(),
	}
}

// RoundTrip реализует http.RoundTripper. Ответ и ошибка возвращаются без изменений.
func (a *AuthInterceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	authReq := req
	if token, ok := a.Tokens.GetToken(); ok {
		// исходный запрос не трогаем, работаем с копией
		authReq = req.Clone(req.Context())
		if authReq.Header == nil {
			authReq.Header = make(http.Header)
		}
		authReq.Header.Set(authorizationHeader, bearerPrefix+token)
	}

	resp, err := a.next().RoundTrip(authReq)
	if status, ok := failureStatus(resp, err); ok {
		a.handleFailure(status)
	}
	return resp, err
}

func (a *AuthInterceptor) handleFailure(status int) {
	if status != http.StatusUnauthorized {
		return
	}
	loginPath := a.loginPath()
	if a.Navigator.CurrentPath() == loginPath {
		return
	}
	log := a.logger()
	if err := a.Tokens.SignOut(); err != nil {
		log.Warnw("sign-out after 401 failed", "error", err)
	}
	log.Debugw("unauthorized, redirecting", "from", a.Navigator.CurrentPath(), "to", loginPath)
	a.Navigator.Redirect(loginPath)
}

func (a *AuthInterceptor) next() http.RoundTripper {
	if a.Next == nil {
		return http.DefaultTransport
	}
	return a.Next
}

func (a *AuthInterceptor) loginPath() string {
	if a.LoginPath == "" {
		return DefaultLoginPath
	}
	return a.LoginPath
}

func (a *AuthInterceptor) logger() *zap.SugaredLogger {
	if a.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return a.Logger
}

// failureStatus возвращает HTTP-статус неудачного обмена.
// Ошибка без статуса (сетевая и т.п.) статуса не несёт.
func failureStatus(resp *http.Response, err error) (int, bool) {
	if err != nil {
		var sc StatusCoder
		if errors.As(err, &sc) {
			return sc.HTTPStatus(), true
		}
		return 0, false
	}
	if resp != nil && resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, true
	}
	return 0, false
}

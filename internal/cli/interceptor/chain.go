package interceptor

import (
	"net/http"

	"go.uber.org/zap"
)

// Interceptor оборачивает следующий транспорт в цепочке.
type Interceptor func(next http.RoundTripper) http.RoundTripper

// Chain собирает интерсепторы поверх base. Первый зарегистрированный оказывается
// внешним, поэтому запрос проходит их в порядке регистрации.
func Chain(base http.RoundTripper, interceptors ...Interceptor) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	for i := len(interceptors) - 1; i >= 0; i-- {
		rt = interceptors[i](rt)
	}
	return rt
}

// WithAuth возвращает Interceptor на базе AuthInterceptor.
// Пустой loginPath означает DefaultLoginPath, nil-логгер отключает логирование.
func WithAuth(tokens TokenStorage, nav Navigator, loginPath string, logger *zap.SugaredLogger) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		a := NewAuthInterceptor(next, tokens, nav)
		if loginPath != "" {
			a.LoginPath = loginPath
		}
		if logger != nil {
			a.Logger = logger
		}
		return a
	}
}

// WithLogging возвращает Interceptor на базе LoggingInterceptor.
func WithLogging(logger *zap.SugaredLogger) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return NewLoggingInterceptor(next, logger)
	}
}

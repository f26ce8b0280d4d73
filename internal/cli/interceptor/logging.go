package interceptor

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader — заголовок для корреляции запросов клиента с логами сервера.
const RequestIDHeader = "X-Request-ID"

// LoggingInterceptor пишет в лог каждый исходящий запрос и его результат.
type LoggingInterceptor struct {
	Next   http.RoundTripper
	Logger *zap.SugaredLogger
}

// NewLoggingInterceptor создаёт интерсептор логирования; nil-логгер ничего не пишет.
func NewLoggingInterceptor(next http.RoundTripper, logger *zap.SugaredLogger) *LoggingInterceptor {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LoggingInterceptor{Next: next, Logger: logger}
}

// RoundTrip проставляет X-Request-ID, если его нет, и логирует обмен.
func (l *LoggingInterceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	reqID := req.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
		req = req.Clone(req.Context())
		if req.Header == nil {
			req.Header = make(http.Header)
		}
		req.Header.Set(RequestIDHeader, reqID)
	}

	start := time.Now()
	l.Logger.Debugw("outgoing request",
		"request_id", reqID,
		"method", req.Method,
		"url", req.URL.String(),
	)

	resp, err := l.Next.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		l.Logger.Warnw("request failed",
			"request_id", reqID,
			"duration", duration.String(),
			"error", err,
		)
		return resp, err
	}

	l.Logger.Debugw("received response",
		"request_id", reqID,
		"status_code", resp.StatusCode,
		"duration", duration.String(),
		"content_length", resp.ContentLength,
	)
	return resp, nil
}

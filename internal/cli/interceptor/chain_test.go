package interceptor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func tagging(tag string, order *[]string) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(r *http.Request) (*http.Response, error) {
			*order = append(*order, tag)
			return next.RoundTrip(r)
		})
	}
}

func TestChain_RegistrationOrder(t *testing.T) {
	var order []string
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return respond(http.StatusOK)(r)
	})

	rt := Chain(base, tagging("first", &order), tagging("second", &order))
	_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://example.test/", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "base"}, order)
}

func TestChain_NoInterceptorsReturnsBase(t *testing.T) {
	base := respond(http.StatusOK)
	rt := Chain(base)
	resp, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://example.test/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChain_MultipleAuthRegistrations(t *testing.T) {
	var got string
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Get("Authorization")
		return respond(http.StatusUnauthorized)(r)
	})
	tokens := &fakeTokens{token: "t1", has: true}
	nav := &fakeNav{path: "/items"}

	rt := Chain(base,
		WithLogging(nil),
		WithAuth(tokens, nav, "", nil),
		WithAuth(tokens, nav, "", nil),
	)
	_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://example.test/", nil))
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", got)
	// внутренний перехватчик уже увёл на /login — внешний повторно не реагирует
	assert.Equal(t, 1, tokens.signOuts)
	assert.Equal(t, []string{"/login"}, nav.redirects)
}

func TestLoggingInterceptor_RequestIDAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core).Sugar()

	var seenID string
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seenID = r.Header.Get(RequestIDHeader)
		return respond(http.StatusTeapot)(r)
	})
	l := NewLoggingInterceptor(base, logger)

	req := httptest.NewRequest(http.MethodGet, "http://example.test/x", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := l.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	assert.NotEmpty(t, seenID)
	assert.Empty(t, req.Header.Get(RequestIDHeader), "request id is set on a copy")
	assert.Equal(t, 1, logs.FilterMessage("outgoing request").Len())
	assert.Equal(t, 1, logs.FilterMessage("received response").Len())
	for _, e := range logs.All() {
		for _, f := range e.Context {
			assert.NotContains(t, f.String, "secret")
		}
	}
}

func TestLoggingInterceptor_KeepsExistingRequestID(t *testing.T) {
	var seenID string
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seenID = r.Header.Get(RequestIDHeader)
		return respond(http.StatusOK)(r)
	})
	req := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	_, err := NewLoggingInterceptor(base, nil).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "req-1", seenID)
}

func TestLoggingInterceptor_PassesStatusErrorThrough(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	want := statusErr{code: http.StatusUnauthorized}
	base := roundTripFunc(func(*http.Request) (*http.Response, error) { return nil, want })

	_, err := NewLoggingInterceptor(base, zap.New(core).Sugar()).
		RoundTrip(httptest.NewRequest(http.MethodGet, "http://example.test/", nil))
	assert.Equal(t, want, err)
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}

func TestLoggingInterceptor_NilHeader(t *testing.T) {
	var seenID string
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seenID = r.Header.Get(RequestIDHeader)
		return respond(http.StatusOK)(r)
	})
	req := &http.Request{Method: http.MethodGet, URL: httptest.NewRequest(http.MethodGet, "http://example.test/", nil).URL}
	require.NotPanics(t, func() {
		_, err := NewLoggingInterceptor(base, nil).RoundTrip(req)
		require.NoError(t, err)
	})
	assert.NotEmpty(t, seenID)
}

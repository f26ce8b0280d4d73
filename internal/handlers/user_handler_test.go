package handlers_test

import (
	"Almonium/internal/handlers"
	"Almonium/internal/model"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- Tests ---
func TestUser_Register(t *testing.T) {
	m := new(mockUserRepo)
	router, _ := newTestRouter(t, m, 100)

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		created := &model.User{ID: 42, Login: "john"}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool { return u.Login == "john" && u.Password != "p" })).Return(created, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", jsonBody(`{"login":"john","password":"p"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Success bool              `json:"success"`
			User    handlers.UserDTO `json:"user"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, int64(42), body.User.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return(&model.User{ID: 1, Login: "john"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", jsonBody(`{"login":"john","password":"p"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("bad json", func(t *testing.T) {
		m.ExpectedCalls = nil
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", jsonBody(`{`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty password", func(t *testing.T) {
		m.ExpectedCalls = nil
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", jsonBody(`{"login":"john","password":""}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("repo failure", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return((*model.User)(nil), errors.New("db down")).Once()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", jsonBody(`{"login":"john","password":"p"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestUser_Login(t *testing.T) {
	m := new(mockUserRepo)
	router, tokens := newTestRouter(t, m, 100)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "alice").Return(&model.User{ID: 2, Login: "alice", Password: string(hash)}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", jsonBody(`{"login":"alice","password":"secret"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp handlers.AuthResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "alice", resp.User.Login)
		uid, err := tokens.Parse(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(2), uid)
		m.AssertExpectations(t)
	})

	t.Run("unauthorized", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "alice").Return(&model.User{ID: 2, Login: "alice", Password: string(hash)}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", jsonBody(`{"login":"alice","password":"bad"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "ghost").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", jsonBody(`{"login":"ghost","password":"x"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		m.ExpectedCalls = nil
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", jsonBody(`{"login":"alice"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUser_LoginRateLimited(t *testing.T) {
	m := new(mockUserRepo)
	router, _ := newTestRouter(t, m, 1)
	m.On("GetUserByLogin", mock.Anything, "alice").Return((*model.User)(nil), gorm.ErrRecordNotFound)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", jsonBody(`{"login":"alice","password":"x"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestUser_Me(t *testing.T) {
	m := new(mockUserRepo)
	router, tokens := newTestRouter(t, m, 100)

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("authorized", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(77)).Return(&model.User{ID: 77, Login: "bob"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		addBearer(t, req, tokens, 77)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var u handlers.UserDTO
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&u)
		assert.Equal(t, handlers.UserDTO{ID: 77, Login: "bob"}, u)
		m.AssertExpectations(t)
	})

	t.Run("deleted user", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(5)).Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		addBearer(t, req, tokens, 5)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	m := new(mockUserRepo)
	router, _ := newTestRouter(t, m, 100)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	assert.Contains(t, string(body), `almonium_http_requests_total{method="GET",route="/api/users/me",status="401"} 1`)
}

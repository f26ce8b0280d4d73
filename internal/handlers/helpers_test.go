package handlers_test

import (
	"Almonium/internal/config"
	"Almonium/internal/handlers"
	"Almonium/internal/model"
	"Almonium/internal/repo"
	"Almonium/internal/service"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

const testSecret = "test-secret"

// --- Helpers ---
func newTestRouter(t *testing.T, ur repo.UserRepository, rps float64) (http.Handler, *service.TokenIssuer) {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, TokenTTL: time.Hour, SigninRPS: rps}
	logger := zap.NewNop().Sugar()

	tokens := service.NewTokenIssuer(cfg.AuthSecret, cfg.TokenTTL)
	userSvc := service.NewUserService(ur, tokens)
	h := handlers.NewHandler(userSvc, tokens, logger, cfg)
	t.Cleanup(h.Close)
	return h.Router, tokens
}

func addBearer(t *testing.T, req *http.Request, tokens *service.TokenIssuer, userID int64) {
	t.Helper()
	tok, _, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
}

func jsonBody(s string) *strings.Reader { return strings.NewReader(s) }

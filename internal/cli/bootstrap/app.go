package bootstrap

import (
	"errors"
	"fmt"
	"net/http"

	"Almonium/internal/cli/api"
	"Almonium/internal/cli/auth"
	"Almonium/internal/cli/interceptor"
	"Almonium/internal/cli/nav"
	"Almonium/internal/cli/repo"
	fsrepo "Almonium/internal/cli/repo/fs"
	reposqlite "Almonium/internal/cli/repo/sqlite"
	"Almonium/internal/config"

	"go.uber.org/zap"
)

// App — собранный клиент: хранилище сессии, роутер и API-клиент с интерсепторами.
type App struct {
	Config  *config.Config
	Logger  *zap.SugaredLogger
	Session *auth.Session
	Router  *nav.Router
	API     *api.Client

	closers []func() error
}

// New собирает клиента по конфигу. Base — нижний транспорт (nil → http.DefaultTransport).
// Close необходимо вызвать после работы, чтобы закрыть хранилище.
func New(cfg *config.Config, logger *zap.SugaredLogger, base http.RoundTripper) (*App, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	app := &App{Config: cfg, Logger: logger}

	store, err := app.openStore()
	if err != nil {
		return nil, err
	}
	app.Session = auth.NewSession(store, store, logger)
	app.Router = nav.NewRouter("/")

	transport := interceptor.Chain(base,
		interceptor.WithLogging(logger),
		interceptor.WithAuth(app.Session, app.Router, cfg.LoginPath, logger),
	)
	app.API = api.NewClient(cfg.ServerURL, transport, cfg.RequestTimeout)
	return app, nil
}

func (a *App) openStore() (repo.SessionStore, error) {
	switch a.Config.TokenStore {
	case config.TokenStoreSQLite:
		s, err := reposqlite.Open(a.Config.ClientDBPath)
		if err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
		if err := s.Migrate(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migrate session db: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	default:
		return fsrepo.AuthFSStore{}, nil
	}
}

// Close освобождает ресурсы; повторный вызов безопасен.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Token store backends for the client.
const (
	TokenStoreFile   = "file"
	TokenStoreSQLite = "sqlite"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`
	SigninRPS   float64       `env:"SIGNIN_RPS"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	Debug       bool   `env:"DEBUG"`

	// Client-side settings
	ServerURL      string        `env:"-"`
	ClientDBPath   string        `env:"CLIENT_DB_PATH"`
	TokenStore     string        `env:"TOKEN_STORE"`
	LoginPath      string        `env:"LOGIN_PATH"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	Version        bool          `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// значения из env служат дефолтами для флагов
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни выдаваемого токена")
	flag.Float64Var(&cfg.SigninRPS, "signin-rps", cfg.SigninRPS, "лимит попыток входа в секунду с одного адреса")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the Almonium server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	// Client flags
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "path to client SQLite session DB")
	flag.StringVar(&cfg.TokenStore, "token-store", cfg.TokenStore, "where the client keeps its token: file|sqlite")
	flag.StringVar(&cfg.LoginPath, "login-path", cfg.LoginPath, "client route to redirect to on 401")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "HTTP request timeout (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.SigninRPS <= 0 {
		cfg.SigninRPS = 5
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// Fill client defaults if empty
	if cfg.ClientDBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.ClientDBPath = filepath.Join(home, ".almonium", "session.sqlite")
	}
	cfg.TokenStore = strings.ToLower(strings.TrimSpace(cfg.TokenStore))
	if cfg.TokenStore != TokenStoreSQLite {
		cfg.TokenStore = TokenStoreFile
	}
	if cfg.LoginPath == "" || !strings.HasPrefix(cfg.LoginPath, "/") {
		cfg.LoginPath = "/login"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
}

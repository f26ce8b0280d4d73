package commands

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"Almonium/internal/cli/bootstrap"
	"Almonium/internal/config"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы артефакты (токен/логин/база) создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// newTestApp собирает клиента, указывающего на serverURL, с файловым хранилищем.
// Каталог хранилища задаётся через withTempConfig в начале теста.
func newTestApp(t *testing.T, serverURL string) *bootstrap.App {
	t.Helper()
	return newTestAppWithLoginPath(t, serverURL, "/login")
}

// newTestAppWithLoginPath как newTestApp, но с заданным путём экрана входа.
func newTestAppWithLoginPath(t *testing.T, serverURL, loginPath string) *bootstrap.App {
	t.Helper()
	cfg := &config.Config{
		ServerURL:    serverURL,
		TokenStore:   config.TokenStoreFile,
		ClientDBPath: filepath.Join(t.TempDir(), "session.sqlite"),
		LoginPath:    loginPath,
	}
	app, err := bootstrap.New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

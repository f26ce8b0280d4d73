package repo

// UserContextStore абстракция для хранения контекста пользователя (последний логин).
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
	ClearLogin() error
}

// SessionStore объединяет оба хранилища (файловая и SQLite-реализации).
type SessionStore interface {
	TokenStore
	UserContextStore
}

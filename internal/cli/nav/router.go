package nav

import "sync"

// Router хранит текущий «экран» CLI (путь вида /login, /me) и отложенный редирект.
type Router struct {
	mu      sync.Mutex
	current string
	pending string
}

// NewRouter создаёт роутер, стоящий на пути start.
func NewRouter(start string) *Router {
	return &Router{current: start}
}

// Navigate переходит на path и сбрасывает отложенный редирект.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = path
	r.pending = ""
}

// CurrentPath returns the current location.
func (r *Router) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Redirect moves the router to path and records it so the caller can act on it
// once the running command returns.
func (r *Router) Redirect(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = path
	r.pending = path
}

// Pending сообщает, был ли редирект с момента последнего Navigate.
func (r *Router) Pending() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending, r.pending != ""
}

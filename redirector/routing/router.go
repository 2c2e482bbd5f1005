package routing

import (
	"net/http"

	"github.com/gorilla/mux"
)

type Router interface {
	Get() []*Definition
}

type Definition struct {
	Path    string
	Methods []string
	Handler func(http.ResponseWriter, *http.Request)
}

type Manager struct {
	mux *mux.Router
}

func NewManager() *Manager {
	m := mux.NewRouter()

	return &Manager{
		mux: m,
	}
}

func (m *Manager) Add(router Router) {
	for _, d := range router.Get() {
		route := m.mux.HandleFunc(d.Path, d.Handler)
		if len(d.Methods) > 0 {
			route.Methods(d.Methods...)
		}
	}
}

func (m *Manager) Get() *mux.Router {
	return m.mux
}

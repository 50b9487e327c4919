package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mkondo/giveaway/internal/repositories"
)

// Router bundles the handlers behind a single ServeMux.
type Router struct {
	auth     *AuthHandler
	users    *UserHandler
	admin    *AdminHandler
	types    *TypeHandler
	items    *ItemHandler
	sessions *SessionStore
}

func NewRouter(
	userRepo repositories.UserRepository,
	typeRepo repositories.ItemTypeRepository,
	itemRepo repositories.ItemRepository,
	sessions *SessionStore,
	logger *zap.Logger,
) *Router {
	return &Router{
		auth:     NewAuthHandler(userRepo, sessions, logger),
		users:    NewUserHandler(userRepo, logger),
		admin:    NewAdminHandler(userRepo, logger),
		types:    NewTypeHandler(typeRepo, logger),
		items:    NewItemHandler(itemRepo, typeRepo, userRepo, logger),
		sessions: sessions,
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", rt.auth.Register)
	mux.HandleFunc("POST /login", rt.auth.Login)

	mux.HandleFunc("GET /users/{id}", rt.sessions.RequireAuth(rt.users.Get))
	mux.HandleFunc("PUT /users/{id}", rt.sessions.RequireAuth(rt.users.Update))

	mux.HandleFunc("GET /types", rt.types.List)
	mux.HandleFunc("GET /types/{id}", rt.types.Get)
	mux.HandleFunc("POST /types", rt.sessions.RequireAdmin(rt.types.Create))
	mux.HandleFunc("PUT /types/{id}", rt.sessions.RequireAdmin(rt.types.Update))
	mux.HandleFunc("DELETE /types/{id}", rt.sessions.RequireAdmin(rt.types.Delete))

	mux.HandleFunc("GET /items", rt.items.List)
	mux.HandleFunc("GET /items/{id}", rt.items.Get)
	mux.HandleFunc("GET /items/{id}/view", rt.items.View)
	mux.HandleFunc("POST /items", rt.sessions.RequireAuth(rt.items.Create))
	mux.HandleFunc("PUT /items/{id}", rt.sessions.RequireAuth(rt.items.Update))
	mux.HandleFunc("DELETE /items/{id}", rt.sessions.RequireAuth(rt.items.Delete))

	mux.HandleFunc("GET /admin/users", rt.sessions.RequireAdmin(rt.admin.ListUsers))
	mux.HandleFunc("POST /admin/approve/{id}", rt.sessions.RequireAdmin(rt.admin.Approve))
	mux.HandleFunc("POST /admin/promote/{id}", rt.sessions.RequireAdmin(rt.admin.Promote))
	mux.HandleFunc("POST /admin/demote/{id}", rt.sessions.RequireAdmin(rt.admin.Demote))
	mux.HandleFunc("DELETE /admin/users/{id}", rt.sessions.RequireAdmin(rt.admin.DeleteUser))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"member-gateway/internal/platform/middleware"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Users    *UserHandler
	Admin    *AdminHandler
	Tokens   middleware.TokenValidator
	AdminCfg AdminCredentials
	Logger   *slog.Logger
}

// AdminCredentials are the basic auth credentials guarding the admin surface.
type AdminCredentials struct {
	Account  string
	Password string
}

// NewRouter assembles the full HTTP surface: public member endpoints, the
// token-guarded profile, the basic-auth admin API, and Prometheus metrics.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timestamp)
	r.Use(middleware.Device)

	deps.Users.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Tokens, deps.Logger))
		deps.Users.RegisterAuthenticated(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(deps.AdminCfg.Account, deps.AdminCfg.Password, deps.Logger))
		deps.Admin.Register(r)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

package apihttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/txsim/internal/auth"
	"github.com/example/txsim/internal/handlers"
	"github.com/example/txsim/internal/rate"
)

// NewRouter wires routes and middlewares. admin may be nil when no admin
// token is configured.
func NewRouter(sh *handlers.SimulateHandler, admin *handlers.AdminHandler, lm *rate.LimiterMap, store auth.APIKeyStore) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger)
	r.Use(CORS)
	r.Use(RateLimit(lm))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if store != nil {
			if err := store.Ping(req.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"status":"unhealthy"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(Auth(store))
		api.Post("/simulate", sh.ServeHTTP)
	})

	if admin != nil {
		r.Post("/admin/create-key", admin.ServeHTTP)
	}

	return r
}

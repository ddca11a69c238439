package middleware

import (
	"net/http"

	"petcare/internal/platform/logger"
	"petcare/internal/session"
	"petcare/internal/web"
)

// LoadSession carga la sesión (o una nueva, sin persistir) en el contexto.
// No corta el request: los handlers deciden si exigen identidad.
func LoadSession(m *session.Manager, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := m.Load(r)
			if err != nil {
				log.Error("session store unavailable", map[string]any{"err": err, "path": r.URL.Path})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithData(r.Context(), d)))
		})
	}
}

// RequireIdentity es el gate de las rutas protegidas: sin login, flash + redirect a /login
// y nada más.
func RequireIdentity(rs *web.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := rs.Identity(r); !ok {
				rs.Flash(r, web.FlashError, "You need to log in to continue.")
				rs.Redirect(w, r, "/login")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

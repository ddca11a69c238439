package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"petcare/internal/platform/logger"
	"petcare/internal/ports/auth"
	"petcare/internal/session"

	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageFiles = []string{
	"index.html",
	"register.html",
	"login.html",
	"dashboard.html",
	"pets.html",
	"edit_pet.html",
	"upload.html",
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Page es lo que recibe cada template.
type Page struct {
	Identity *auth.Identity
	Flashes  []session.Flash
	Data     any
}

// Responder junta lo que necesitan los handlers HTML: sesión (flashes, commit)
// y templates. Ningún handler escribe la cookie de sesión por su cuenta.
type Responder struct {
	sessions *session.Manager
	pages    map[string]*template.Template
	log      logger.Logger
}

func NewResponder(sessions *session.Manager, log logger.Logger) (*Responder, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		t, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Responder{sessions: sessions, pages: pages, log: log}, nil
}

func (rs *Responder) Sessions() *session.Manager { return rs.sessions }

// Session devuelve la sesión del request. Sin middleware, una descartable.
func (rs *Responder) Session(r *http.Request) *session.Data {
	if d := session.FromContext(r.Context()); d != nil {
		return d
	}
	return &session.Data{}
}

// Identity devuelve la identidad logueada, si hay.
func (rs *Responder) Identity(r *http.Request) (auth.Identity, bool) {
	d := rs.Session(r)
	if d.Identity == nil {
		return auth.Identity{}, false
	}
	return *d.Identity, true
}

func (rs *Responder) Flash(r *http.Request, category, message string) {
	rs.Session(r).AddFlash(category, message)
}

// Redirect persiste la sesión y redirige con 303 (POST -> GET).
func (rs *Responder) Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if err := rs.sessions.Commit(r.Context(), w, rs.Session(r)); err != nil {
		rs.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Render ejecuta el template y consume los flashes pendientes.
// extra son mensajes para esta misma respuesta (re-render de un form con error).
func (rs *Responder) Render(w http.ResponseWriter, r *http.Request, status int, name string, data any, extra ...session.Flash) {
	t, ok := rs.pages[name]
	if !ok {
		rs.ServerError(w, r, fmt.Errorf("unknown template %q", name))
		return
	}

	sess := rs.Session(r)
	page := Page{
		Identity: sess.Identity,
		Flashes:  append(sess.PopFlashes(), extra...),
		Data:     data,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, page); err != nil {
		rs.ServerError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}

	if err := rs.sessions.Commit(r.Context(), w, sess); err != nil {
		rs.ServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (rs *Responder) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	rs.log.Error("request failed", map[string]any{
		"err":        err,
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": middleware.GetReqID(r.Context()),
	})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

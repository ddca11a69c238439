package users

import (
	"context"
	"errors"
	"net/http"

	"petcare/internal/session"
	"petcare/internal/web"

	"github.com/go-chi/chi/v5"
)

// PetCounter lo implementa pets.Service; así users no importa pets.
type PetCounter interface {
	CountByOwner(ctx context.Context, ownerUserID string) (int, error)
}

func RegisterRoutes(r chi.Router, svc *Service, rs *web.Responder, pets PetCounter, gate func(http.Handler) http.Handler) {
	r.Get("/register", registerFormHandler(rs))
	r.Post("/register", registerHandler(svc, rs))

	r.Get("/login", loginFormHandler(rs))
	r.Post("/login", loginHandler(svc, rs))

	r.Get("/logout", logoutHandler(rs))

	r.With(gate).Get("/dashboard", dashboardHandler(rs, pets))
}

// registerForm se re-renderiza con lo que el usuario ya escribió (nunca con las passwords).
type registerForm struct {
	FullName string
	Email    string
}

type dashboardData struct {
	PetCount int
}

func registerFormHandler(rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs.Render(w, r, http.StatusOK, "register.html", registerForm{})
	}
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea una cuenta. Si el email coincide con ADMIN_EMAIL la cuenta queda como administrador. Ante un error de validación se re-renderiza el formulario con 422.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param fullname formData string true "Nombre completo"
// @Param email formData string true "Email (único)"
// @Param password formData string true "Password"
// @Param confirm formData string true "Confirmación de password"
// @Success 303 {string} string "redirect a /login"
// @Failure 422 {string} string "passwords distintas / password de más de 72 bytes / email existente / campos faltantes"
// @Router /register [post]
func registerHandler(svc *Service, rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := registerForm{
			FullName: r.PostFormValue("fullname"),
			Email:    r.PostFormValue("email"),
		}

		_, err := svc.Register(r.Context(), RegisterInput{
			FullName: form.FullName,
			Email:    form.Email,
			Password: r.PostFormValue("password"),
			Confirm:  r.PostFormValue("confirm"),
		})

		var msg string
		switch {
		case err == nil:
			rs.Flash(r, web.FlashSuccess, "Registration successful. Please log in.")
			rs.Redirect(w, r, "/login")
			return
		case errors.Is(err, ErrPasswordMismatch):
			msg = "Password confirmation does not match."
		case errors.Is(err, ErrPasswordTooLong):
			msg = "Password must be at most 72 bytes long."
		case errors.Is(err, ErrEmailTaken):
			msg = "Email already exists."
		case errors.Is(err, ErrInvalidInput):
			msg = "Please fill in every field with a valid email address."
		default:
			rs.ServerError(w, r, err)
			return
		}

		rs.Render(w, r, http.StatusUnprocessableEntity, "register.html", form,
			session.Flash{Category: web.FlashError, Message: msg})
	}
}

func loginFormHandler(rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs.Render(w, r, http.StatusOK, "login.html", nil)
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Verifica credenciales y guarda la identidad (id, nombre, rol) en la sesión. El error es el mismo si el email no existe o la password no coincide.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303 {string} string "redirect a /dashboard (ok) o /login (credenciales inválidas)"
// @Router /login [post]
func loginHandler(svc *Service, rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		u, err := svc.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				rs.Flash(r, web.FlashError, "Wrong email or password.")
				rs.Redirect(w, r, "/login")
				return
			}
			rs.ServerError(w, r, err)
			return
		}

		rs.Session(r).SetIdentity(u.Identity())
		rs.Flash(r, web.FlashSuccess, "Login successful!")
		rs.Redirect(w, r, "/dashboard")
	}
}

// logoutHandler borra la sesión entera; el flash va en una sesión nueva.
func logoutHandler(rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fresh, err := rs.Sessions().Clear(r.Context(), rs.Session(r))
		if err != nil {
			rs.ServerError(w, r, err)
			return
		}
		r = r.WithContext(session.WithData(r.Context(), fresh))

		rs.Flash(r, web.FlashInfo, "You have been logged out.")
		rs.Redirect(w, r, "/")
	}
}

func dashboardHandler(rs *web.Responder, pets PetCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := rs.Identity(r)

		n, err := pets.CountByOwner(r.Context(), id.UserID)
		if err != nil {
			rs.ServerError(w, r, err)
			return
		}

		rs.Render(w, r, http.StatusOK, "dashboard.html", dashboardData{PetCount: n})
	}
}

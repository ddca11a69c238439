package pets

import (
	"errors"
	"net/http"

	"petcare/internal/ports/auth"
	"petcare/internal/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, rs *web.Responder, gate func(http.Handler) http.Handler) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Use(gate)

		pr.Get("/", listPetsHandler(svc, rs))
		pr.Post("/", createPetHandler(svc, rs))

		// Solo admins (cualquier mascota, no solo las propias)
		pr.Get("/edit/{petID}", editPetFormHandler(svc, rs))
		pr.Post("/edit/{petID}", updatePetHandler(svc, rs))
		pr.Post("/delete/{petID}", deletePetHandler(svc, rs))
	})
}

type listData struct {
	Pets    []Pet
	Role    auth.Role
	IsAdmin bool
}

// formInput lee name/type/age. La edad inválida vuelve como ErrInvalidAge.
func formInput(r *http.Request) (Input, error) {
	if err := r.ParseForm(); err != nil {
		return Input{}, ErrInvalidInput
	}
	age, err := ParseAge(r.PostFormValue("age"))
	if err != nil {
		return Input{}, err
	}
	return Input{
		Name: r.PostFormValue("name"),
		Type: r.PostFormValue("type"),
		Age:  age,
	}, nil
}

func listPetsHandler(svc *Service, rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := rs.Identity(r)

		items, err := svc.List(r.Context())
		if err != nil {
			rs.ServerError(w, r, err)
			return
		}

		rs.Render(w, r, http.StatusOK, "pets.html", listData{
			Pets:    items,
			Role:    id.Role,
			IsAdmin: id.Role.IsAdmin(),
		})
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota a nombre del usuario logueado. Una edad no numérica o negativa vuelve como mensaje de error.
// @Tags pets
// @Accept x-www-form-urlencoded
// @Produce html
// @Param name formData string true "Nombre"
// @Param type formData string true "Tipo (perro, gato...)"
// @Param age formData integer true "Edad en años"
// @Success 303 {string} string "redirect a /pets"
// @Router /pets [post]
func createPetHandler(svc *Service, rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := rs.Identity(r)

		in, err := formInput(r)
		if err == nil {
			_, err = svc.Create(r.Context(), id.UserID, in)
		}
		if err != nil {
			if !flashValidation(rs, r, err) {
				rs.ServerError(w, r, err)
				return
			}
			rs.Redirect(w, r, "/pets")
			return
		}

		rs.Flash(r, web.FlashSuccess, "Pet added!")
		rs.Redirect(w, r, "/pets")
	}
}

func editPetFormHandler(svc *Service, rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := rs.Identity(r)
		if err := Authorize(id); err != nil {
			denied(w, r, rs, "You do not have permission to edit pets.")
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			notFoundOr(w, r, rs, err)
			return
		}

		rs.Render(w, r, http.StatusOK, "edit_pet.html", p)
	}
}

// updatePetHandler godoc
// @Summary Editar mascota
// @Description Sobrescribe nombre, tipo y edad. Requiere rol admin; un usuario normal es redirigido a /pets sin cambios.
// @Tags pets
// @Accept x-www-form-urlencoded
// @Produce html
// @Param petID path string true "ID de la mascota"
// @Param name formData string true "Nombre"
// @Param type formData string true "Tipo"
// @Param age formData integer true "Edad en años"
// @Success 303 {string} string "redirect a /pets"
// @Failure 404 {string} string "pet not found"
// @Router /pets/edit/{petID} [post]
func updatePetHandler(svc *Service, rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := rs.Identity(r)
		if err := Authorize(id); err != nil {
			denied(w, r, rs, "You do not have permission to edit pets.")
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := svc.GetByID(r.Context(), petID); err != nil {
			notFoundOr(w, r, rs, err)
			return
		}

		in, err := formInput(r)
		if err == nil {
			_, err = svc.Update(r.Context(), id, petID, in)
		}
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			if !flashValidation(rs, r, err) {
				rs.ServerError(w, r, err)
				return
			}
			rs.Redirect(w, r, "/pets/edit/"+petID)
			return
		}

		rs.Flash(r, web.FlashSuccess, "Pet updated!")
		rs.Redirect(w, r, "/pets")
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota. Requiere rol admin.
// @Tags pets
// @Produce html
// @Param petID path string true "ID de la mascota"
// @Success 303 {string} string "redirect a /pets"
// @Failure 404 {string} string "pet not found"
// @Router /pets/delete/{petID} [post]
func deletePetHandler(svc *Service, rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := rs.Identity(r)
		if err := Authorize(id); err != nil {
			denied(w, r, rs, "You do not have permission to delete pets.")
			return
		}

		if err := svc.Delete(r.Context(), id, chi.URLParam(r, "petID")); err != nil {
			notFoundOr(w, r, rs, err)
			return
		}

		rs.Flash(r, web.FlashInfo, "Pet deleted.")
		rs.Redirect(w, r, "/pets")
	}
}

func denied(w http.ResponseWriter, r *http.Request, rs *web.Responder, msg string) {
	rs.Flash(r, web.FlashError, msg)
	rs.Redirect(w, r, "/pets")
}

func notFoundOr(w http.ResponseWriter, r *http.Request, rs *web.Responder, err error) {
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	rs.ServerError(w, r, err)
}

// flashValidation deja el mensaje si err es de validación. false = error inesperado.
func flashValidation(rs *web.Responder, r *http.Request, err error) bool {
	switch {
	case errors.Is(err, ErrInvalidAge):
		rs.Flash(r, web.FlashError, "Age must be a whole number between 0 and 1000.")
	case errors.Is(err, ErrInvalidInput):
		rs.Flash(r, web.FlashError, "Name and type are required.")
	case errors.Is(err, ErrOwnerNotFound):
		rs.Flash(r, web.FlashError, "Your account no longer exists. Please log in again.")
	default:
		return false
	}
	return true
}

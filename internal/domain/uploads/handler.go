package uploads

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"petcare/internal/web"

	"github.com/go-chi/chi/v5"
)

const multipartMemory = 1 << 20

func RegisterRoutes(r chi.Router, svc *Service, rs *web.Responder, maxBytes int64) {
	r.Get("/upload", uploadFormHandler(rs))
	r.Post("/upload", uploadHandler(svc, rs, maxBytes))
	r.Get("/uploads/{filename}", serveUploadHandler(svc, rs))
}

func uploadFormHandler(rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs.Render(w, r, http.StatusOK, "upload.html", nil)
	}
}

// uploadHandler godoc
// @Summary Subir imagen de mascota
// @Description Acepta png/jpg/jpeg/gif (sin distinguir mayúsculas). El nombre se sanitiza y el archivo queda en el directorio de uploads.
// @Tags uploads
// @Accept multipart/form-data
// @Produce plain
// @Param pet_image formData file true "Imagen"
// @Success 303 {string} string "redirect a /uploads/{filename}"
// @Failure 400 {string} string "No file part / No selected file / File type not allowed"
// @Failure 413 {string} string "file too large"
// @Router /upload [post]
func uploadHandler(svc *Service, rs *web.Responder, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		f, cleanup, err := readFile(r)
		if err != nil {
			if isTooLarge(err) {
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		defer cleanup()

		name, err := svc.Save(r.Context(), f)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoFilePart):
				http.Error(w, "No file part", http.StatusBadRequest)
			case errors.Is(err, ErrEmptyFilename):
				http.Error(w, "No selected file", http.StatusBadRequest)
			case errors.Is(err, ErrDisallowedType):
				http.Error(w, "File type not allowed", http.StatusBadRequest)
			case isTooLarge(err):
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			default:
				rs.ServerError(w, r, err)
			}
			return
		}

		http.Redirect(w, r, "/uploads/"+url.PathEscape(name), http.StatusSeeOther)
	}
}

// readFile distingue "no vino la parte" de "vino con filename vacío": Go guarda
// una parte sin filename como valor de form, no como archivo.
func readFile(r *http.Request) (File, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return File{}, noop, nil
		}
		return File{}, noop, err
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	file, hdr, err := r.FormFile(FormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			_, present := r.MultipartForm.Value[FormField]
			return File{Present: present}, cleanup, nil
		}
		cleanup()
		return File{}, noop, err
	}

	return File{
		Present:  true,
		Filename: hdr.Filename,
		Size:     hdr.Size,
		Body:     file,
	}, func() { _ = file.Close(); cleanup() }, nil
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func serveUploadHandler(svc *Service, rs *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc, contentType, err := svc.Open(r.Context(), chi.URLParam(r, "filename"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			rs.ServerError(w, r, err)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		_, _ = io.Copy(w, rc)
	}
}

package uploads

import (
	"errors"
	"strings"
)

// FormField es el nombre del input file del formulario.
const FormField = "pet_image"

var (
	ErrNoFilePart     = errors.New("no file part")
	ErrEmptyFilename  = errors.New("no selected file")
	ErrDisallowedType = errors.New("file type not allowed")
	ErrNotFound       = errors.New("upload not found")
)

// AllowedExtensions son las extensiones de imagen aceptadas (comparación case-insensitive).
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// Allowed exige un punto y que lo que sigue al último punto esté en AllowedExtensions.
func Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := AllowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

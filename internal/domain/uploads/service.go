package uploads

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
)

type Service struct {
	store BlobStore
}

func NewService(store BlobStore) *Service {
	return &Service{store: store}
}

// File es lo que el handler extrae del multipart.
// Present=false significa que el form no traía la parte pet_image.
type File struct {
	Present  bool
	Filename string
	Size     int64
	Body     io.Reader
}

// Save valida presencia, extensión, sanitiza el nombre y guarda.
// Devuelve el nombre final con el que quedó almacenado.
func (s *Service) Save(ctx context.Context, f File) (string, error) {
	if !f.Present {
		return "", ErrNoFilePart
	}
	if strings.TrimSpace(f.Filename) == "" {
		return "", ErrEmptyFilename
	}
	if !Allowed(f.Filename) {
		return "", ErrDisallowedType
	}

	name := SanitizeFilename(f.Filename)
	// la sanitización puede comerse la extensión (p.ej. "日本.png" -> "png")
	if name == "" || !Allowed(name) {
		return "", ErrDisallowedType
	}

	if err := s.store.Put(ctx, name, f.Body, f.Size, ContentType(name)); err != nil {
		return "", fmt.Errorf("store upload %q: %w", name, err)
	}
	return name, nil
}

// ContentType sale de la extensión (ya validada), nunca del contenido: un .png
// con HTML adentro se sirve igual como image/png.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); strings.HasPrefix(ct, "image/") {
		return ct
	}
	return "application/octet-stream"
}

// Open abre una imagen ya subida. Nombres que no están sanitizados no pueden existir.
func (s *Service) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if name == "" || SanitizeFilename(name) != name {
		return nil, "", ErrNotFound
	}
	rc, _, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, "", err
	}
	// el tipo lo define la extensión, no lo que tenga guardado el store
	return rc, ContentType(name), nil
}

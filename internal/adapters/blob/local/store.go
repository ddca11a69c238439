package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"petcare/internal/domain/uploads"
)

var ErrOutsideRoot = errors.New("path escapes upload directory")

// Store guarda los archivos en un directorio fijo del filesystem.
type Store struct {
	root string
}

// New crea el directorio si no existe (se crea una vez al arrancar, no por request).
func New(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{root: abs}, nil
}

func (s *Store) Root() string { return s.root }

// Put escribe el archivo. Dos uploads con el mismo nombre: gana el último.
func (s *Store) Put(ctx context.Context, name string, r io.Reader, _ int64, _ string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return err
	}
	return f.Close()
}

func (s *Store) Get(ctx context.Context, name string) (io.ReadCloser, string, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, "", uploads.ErrNotFound
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", uploads.ErrNotFound
		}
		return nil, "", err
	}

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return f, ct, nil
}

// path resuelve name dentro de root; el nombre ya viene sanitizado, esto es la última barrera.
func (s *Store) path(name string) (string, error) {
	p := filepath.Join(s.root, name)
	rel, err := filepath.Rel(s.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return "", ErrOutsideRoot
	}
	return p, nil
}

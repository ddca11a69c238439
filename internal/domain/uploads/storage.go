package uploads

import (
	"context"
	"io"
)

// BlobStore guarda las imágenes. Put con un nombre existente lo pisa (last-write-wins).
// Get devuelve ErrNotFound si no existe.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, name string) (io.ReadCloser, string, error)
}

package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Store guarda Data por ID. Get devuelve ErrNotFound si no existe o expiró.
type Store interface {
	Get(ctx context.Context, id string) (Data, error)
	Save(ctx context.Context, d Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

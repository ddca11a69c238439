package users

import "context"

// Repository persiste usuarios.
// Create debe devolver ErrEmailTaken si el store rechaza el email por unicidad.
// GetByEmail / GetByID devuelven ErrNotFound si no existe.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

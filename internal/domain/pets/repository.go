package pets

import "context"

// Repository persiste mascotas.
// Create devuelve ErrOwnerNotFound si el dueño no existe.
// GetByID, Update y Delete devuelven ErrNotFound si la mascota no existe.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}

package pets

import "context"

// CountByOwner expone cuántas mascotas tiene un usuario (back-reference User -> Pets).
// Lo usa el dashboard sin que el paquete users dependa de pets.
func (s *Service) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	items, err := s.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

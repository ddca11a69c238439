package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petcare/internal/domain/pets"
	"petcare/internal/domain/users"
)

type petEntry struct {
	pet pets.Pet
	seq uint64
}

type petRepo struct {
	mu     sync.RWMutex
	byID   map[string]petEntry
	seq    uint64
	owners users.Repository
}

// NewPetRepo: si owners != nil se valida que el dueño exista (equivalente a la FK en SQL).
func NewPetRepo(owners users.Repository) pets.Repository {
	return &petRepo{
		byID:   make(map[string]petEntry),
		owners: owners,
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if r.owners != nil {
		if _, err := r.owners.GetByID(ctx, p.OwnerUserID); err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return pets.ErrOwnerNotFound
			}
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.seq++
	r.byID[p.ID] = petEntry{pet: p, seq: r.seq}
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}
	// el dueño no se cambia por update
	p.OwnerUserID = e.pet.OwnerUserID
	p.CreatedAt = e.pet.CreatedAt
	e.pet = p
	r.byID[p.ID] = e
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return e.pet, nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.filter(func(pets.Pet) bool { return true }), nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool { return p.OwnerUserID == ownerUserID }), nil
}

// filter devuelve en orden de alta (created_at asc, desempata por orden de inserción).
func (r *petRepo) filter(keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]petEntry, 0, len(r.byID))
	for _, e := range r.byID {
		if keep(e.pet) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].pet.CreatedAt.Equal(entries[j].pet.CreatedAt) {
			return entries[i].pet.CreatedAt.Before(entries[j].pet.CreatedAt)
		}
		return entries[i].seq < entries[j].seq
	})

	out := make([]pets.Pet, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.pet)
	}
	return out
}

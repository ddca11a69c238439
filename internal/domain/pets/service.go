package pets

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"petcare/internal/ports/auth"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAge    = errors.New("age must be a whole number of years")
	ErrNotFound      = errors.New("pet not found")
	ErrOwnerNotFound = errors.New("owner not found")
	ErrForbidden     = errors.New("forbidden")
)

type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Input sirve tanto para crear como para editar: se sobrescriben los tres campos.
type Input struct {
	Name string `validate:"required"`
	Type string `validate:"required"`
	Age  int    `validate:"gte=0,lte=1000"`
}

// MaxAge acota la edad; también mantiene el valor dentro de un INTEGER de SQL.
const MaxAge = 1000

// ParseAge convierte el texto del formulario. Un valor no numérico, negativo
// o mayor a MaxAge es ErrInvalidAge.
func ParseAge(raw string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || age < 0 || age > MaxAge {
		return 0, ErrInvalidAge
	}
	return age, nil
}

func (s *Service) normalize(in Input) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	if in.Age < 0 || in.Age > MaxAge {
		return Input{}, ErrInvalidAge
	}
	if err := s.validate.Struct(in); err != nil {
		return Input{}, ErrInvalidInput
	}
	return in, nil
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	in, err := s.normalize(in)
	if err != nil {
		return Pet{}, err
	}

	now := s.now().UTC()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        in.Name,
		Type:        in.Type,
		Age:         in.Age,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve todas las mascotas de todos los dueños (sin filtro ni paginado).
func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, nil
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Authorize: editar/borrar es por rol, no por dueño. Cualquier admin puede tocar cualquier mascota.
func Authorize(id auth.Identity) error {
	if !id.Role.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// Update sobrescribe nombre/tipo/edad. El rol se chequea antes de buscar la mascota.
func (s *Service) Update(ctx context.Context, actor auth.Identity, id string, in Input) (Pet, error) {
	if err := Authorize(actor); err != nil {
		return Pet{}, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	in, err = s.normalize(in)
	if err != nil {
		return Pet{}, err
	}

	current.Name = in.Name
	current.Type = in.Type
	current.Age = in.Age
	current.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if err := Authorize(actor); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

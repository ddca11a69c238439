package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcare/internal/ports/auth"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes es el límite de bcrypt.
const MaxPasswordBytes = 72

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrPasswordTooLong    = errors.New("password longer than 72 bytes")
	ErrInvalidCredentials = errors.New("wrong email or password")
)

type Service struct {
	repo       Repository
	hasher     PasswordHasher
	validate   *validator.Validate
	adminEmail string
	now        func() time.Time
}

type Options struct {
	// AdminEmail: quien se registre con este email exacto queda como admin.
	// Vacío = nadie se bootstrapea como admin.
	AdminEmail string
	Hasher     PasswordHasher
}

func NewService(repo Repository, opts Options) *Service {
	h := opts.Hasher
	if h == nil {
		h = NewBcryptHasher(0)
	}
	return &Service{
		repo:       repo,
		hasher:     h,
		validate:   validator.New(),
		adminEmail: strings.TrimSpace(opts.AdminEmail),
		now:        time.Now,
	}
}

type RegisterInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Confirm  string `validate:"required"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validate.Struct(in); err != nil {
		return User{}, ErrInvalidInput
	}
	if in.Password != in.Confirm {
		return User{}, ErrPasswordMismatch
	}
	// bcrypt no acepta más de 72 bytes
	if len(in.Password) > MaxPasswordBytes {
		return User{}, ErrPasswordTooLong
	}

	// Pre-check para el mensaje amigable; la constraint única del store cubre la carrera.
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return User{}, ErrPasswordTooLong
		}
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	role := auth.RoleUser
	if s.adminEmail != "" && in.Email == s.adminEmail {
		role = auth.RoleAdmin
	}

	u := User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// Authenticate no distingue entre "no existe" y "password incorrecta".
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if !s.hasher.Compare(u.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

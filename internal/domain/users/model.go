package users

import (
	"time"

	"petcare/internal/ports/auth"
)

// User es una cuenta registrada. La password nunca se guarda en claro.
type User struct {
	ID       string
	FullName string
	Email    string

	PasswordHash string
	Role         auth.Role

	CreatedAt time.Time
}

// Identity arma la identidad de sesión a partir del usuario.
func (u User) Identity() auth.Identity {
	return auth.Identity{
		UserID:   u.ID,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

package auth

// Role distingue administradores (pueden editar/borrar cualquier mascota) de usuarios normales.
type Role int

const (
	RoleAdmin Role = 1
	RoleUser  Role = 2
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// Identity es lo que guardamos en la sesión al hacer login.
// Se copia desde el User; no se refresca hasta el próximo login.
type Identity struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

package pets

import "time"

// Pet es una mascota registrada por un usuario.
// Type es texto libre (perro, gato, conejo...).
type Pet struct {
	ID          string
	OwnerUserID string

	Name string
	Type string
	Age  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

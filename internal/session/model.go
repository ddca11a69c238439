package session

import (
	"time"

	"petcare/internal/ports/auth"
)

// Flash es un mensaje de estado de un solo uso: se setea en un request y se muestra (y borra) en el siguiente.
type Flash struct {
	Category string `json:"category"` // success | error | info
	Message  string `json:"message"`
}

// Data es el estado server-side de una sesión de navegador.
type Data struct {
	ID        string         `json:"id"`
	Identity  *auth.Identity `json:"identity,omitempty"`
	Flashes   []Flash        `json:"flashes,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`

	dirty bool
}

func (d *Data) SetIdentity(id auth.Identity) {
	d.Identity = &id
	d.dirty = true
}

func (d *Data) AddFlash(category, message string) {
	d.Flashes = append(d.Flashes, Flash{Category: category, Message: message})
	d.dirty = true
}

// PopFlashes devuelve y limpia los mensajes pendientes.
func (d *Data) PopFlashes() []Flash {
	if len(d.Flashes) == 0 {
		return nil
	}
	out := d.Flashes
	d.Flashes = nil
	d.dirty = true
	return out
}

// Dirty indica si hay cambios sin persistir.
func (d *Data) Dirty() bool { return d.dirty }

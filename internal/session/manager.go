package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultCookieName = "petcare_session"
	DefaultTTL        = 24 * time.Hour
)

var ErrSecretRequired = errors.New("session secret required")

type Config struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// Manager une el Store con la cookie. La cookie solo lleva el ID de sesión
// firmado (JWT HS256, jti = ID); la identidad vive server-side.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	cookie string
	secure bool
	now    func() time.Time
}

func NewManager(store Store, cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrSecretRequired
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	name := cfg.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	return &Manager{
		store:  store,
		secret: cfg.Secret,
		ttl:    ttl,
		cookie: name,
		secure: cfg.Secure,
		now:    time.Now,
	}, nil
}

// Load devuelve la sesión del request o una nueva (sin persistir) si la cookie
// falta, está adulterada o la sesión expiró.
func (m *Manager) Load(r *http.Request) (*Data, error) {
	c, err := r.Cookie(m.cookie)
	if err != nil || c.Value == "" {
		return m.fresh(), nil
	}

	id, err := m.parse(c.Value)
	if err != nil {
		return m.fresh(), nil
	}

	d, err := m.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return m.fresh(), nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &d, nil
}

// Commit persiste la sesión (si cambió) y escribe la cookie. Debe llamarse antes de escribir headers.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, d *Data) error {
	if d == nil || !d.dirty {
		return nil
	}

	d.ExpiresAt = m.now().Add(m.ttl).UTC()
	snapshot := *d
	snapshot.dirty = false
	if err := m.store.Save(ctx, snapshot, m.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	d.dirty = false

	token, err := m.sign(d.ID, d.ExpiresAt)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    token,
		Path:     "/",
		Expires:  d.ExpiresAt,
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear borra la sesión server-side y devuelve una nueva vacía en su lugar
// (así el logout todavía puede dejar un flash).
func (m *Manager) Clear(ctx context.Context, d *Data) (*Data, error) {
	if d != nil && d.ID != "" {
		if err := m.store.Delete(ctx, d.ID); err != nil {
			return nil, fmt.Errorf("delete session: %w", err)
		}
	}
	return m.fresh(), nil
}

func (m *Manager) fresh() *Data {
	return &Data{ID: uuid.NewString()}
}

func (m *Manager) sign(id string, exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(m.now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return s, nil
}

func (m *Manager) parse(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("session cookie without id")
	}
	return claims.ID, nil
}

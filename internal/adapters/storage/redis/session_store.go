package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"petcare/internal/session"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "petcare:session:"

// SessionStore guarda cada sesión como JSON en "petcare:session:<id>" con TTL.
// La expiración la maneja Redis.
type SessionStore struct {
	rdb goredis.Cmdable
}

func NewSessionStore(rdb goredis.Cmdable) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Open crea el cliente y hace ping.
func Open(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (session.Data, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return session.Data{}, session.ErrNotFound
		}
		return session.Data{}, err
	}

	var d session.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return session.Data{}, fmt.Errorf("decode session: %w", err)
	}
	return d, nil
}

func (s *SessionStore) Save(ctx context.Context, d session.Data, ttl time.Duration) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.rdb.Set(ctx, keyPrefix+d.ID, raw, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config se lee de variables de entorno (y de .env si existe).
type Config struct {
	Port string `validate:"required,numeric"`

	// DB_DSN (Postgres) tiene prioridad sobre SQLITE_PATH. Sin ninguno: in-memory.
	PostgresDSN string
	SQLitePath  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	SessionSecret       string        `validate:"required,min=16"`
	SessionTTL          time.Duration `validate:"gt=0"`
	SessionCookieSecure bool

	// AdminEmail: email que al registrarse queda como administrador.
	AdminEmail string `validate:"omitempty,email"`

	UploadDir      string `validate:"required"`
	UploadMaxBytes int64  `validate:"gt=0"`

	MinioEndpoint  string
	MinioAccessKey string `validate:"required_with=MinioEndpoint"`
	MinioSecretKey string `validate:"required_with=MinioEndpoint"`
	MinioBucket    string
	MinioUseSSL    bool

	CORSAllowedOrigins []string
}

const (
	DefaultUploadDir      = "uploads/pets"
	DefaultUploadMaxBytes = 16 << 20
)

// Load carga .env (si está) y arma la config. Falla si falta SESSION_SECRET.
func Load() (Config, error) {
	// .env es opcional; en prod las vars vienen del entorno.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv arma la config con un lookup arbitrario (os.Getenv en prod, map en tests).
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var errs []error

	redisDB, err := strconv.Atoi(get("REDIS_DB", "0"))
	if err != nil {
		errs = append(errs, fmt.Errorf("REDIS_DB: %w", err))
	}
	ttl, err := time.ParseDuration(get("SESSION_TTL", "24h"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SESSION_TTL: %w", err))
	}
	maxBytes, err := strconv.ParseInt(get("UPLOAD_MAX_BYTES", strconv.Itoa(DefaultUploadMaxBytes)), 10, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("UPLOAD_MAX_BYTES: %w", err))
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	cfg := Config{
		Port:                get("PORT", "8080"),
		PostgresDSN:         get("DB_DSN", ""),
		SQLitePath:          get("SQLITE_PATH", ""),
		RedisAddr:           get("REDIS_ADDR", ""),
		RedisPassword:       getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		SessionSecret:       getenv("SESSION_SECRET"),
		SessionTTL:          ttl,
		SessionCookieSecure: get("SESSION_COOKIE_SECURE", "false") == "true",
		AdminEmail:          get("ADMIN_EMAIL", ""),
		UploadDir:           get("UPLOAD_DIR", DefaultUploadDir),
		UploadMaxBytes:      maxBytes,
		MinioEndpoint:       get("MINIO_ENDPOINT", ""),
		MinioAccessKey:      get("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:      getenv("MINIO_SECRET_KEY"),
		MinioBucket:         get("MINIO_BUCKET", "pet-images"),
		MinioUseSSL:         get("MINIO_USE_SSL", "false") == "true",
		CORSAllowedOrigins:  splitList(get("CORS_ALLOWED_ORIGINS", "")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

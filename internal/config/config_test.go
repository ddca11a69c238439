package config

import (
	"strings"
	"testing"
	"time"
)

func lookup(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"SESSION_SECRET": "0123456789abcdef",
	}))
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %v", cfg.SessionTTL)
	}
	if cfg.UploadDir != DefaultUploadDir || cfg.UploadMaxBytes != DefaultUploadMaxBytes {
		t.Fatalf("unexpected upload defaults: %q %d", cfg.UploadDir, cfg.UploadMaxBytes)
	}
	if cfg.AdminEmail != "" {
		t.Fatalf("expected no bootstrap admin by default")
	}
	if cfg.PostgresDSN != "" || cfg.SQLitePath != "" || cfg.RedisAddr != "" || cfg.MinioEndpoint != "" {
		t.Fatalf("expected in-memory defaults")
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"PORT":                  "9090",
		"SESSION_SECRET":        "0123456789abcdef",
		"SESSION_TTL":           "30m",
		"SESSION_COOKIE_SECURE": "true",
		"ADMIN_EMAIL":           "admin@example.com",
		"SQLITE_PATH":           "/tmp/petcare.db",
		"REDIS_ADDR":            "localhost:6379",
		"REDIS_DB":              "2",
		"UPLOAD_MAX_BYTES":      "1024",
		"CORS_ALLOWED_ORIGINS":  " http://a.test , ,http://b.test",
		"MINIO_ENDPOINT":        "localhost:9000",
		"MINIO_ACCESS_KEY":      "key",
		"MINIO_SECRET_KEY":      "secret",
	}))
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}

	if cfg.Port != "9090" || cfg.SessionTTL != 30*time.Minute || !cfg.SessionCookieSecure {
		t.Fatalf("unexpected session/port config: %#v", cfg)
	}
	if cfg.RedisDB != 2 || cfg.UploadMaxBytes != 1024 {
		t.Fatalf("unexpected numeric config: %#v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.MinioBucket != "pet-images" {
		t.Fatalf("expected default bucket, got %q", cfg.MinioBucket)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"SESSION_SECRET": "0123456789abcdef"}
	}

	cases := map[string]struct {
		set  map[string]string
		want string
	}{
		"missing secret":   {set: map[string]string{"SESSION_SECRET": ""}, want: "SessionSecret"},
		"short secret":     {set: map[string]string{"SESSION_SECRET": "short"}, want: "SessionSecret"},
		"bad ttl":          {set: map[string]string{"SESSION_TTL": "forever"}, want: "SESSION_TTL"},
		"bad redis db":     {set: map[string]string{"REDIS_DB": "x"}, want: "REDIS_DB"},
		"bad admin email":  {set: map[string]string{"ADMIN_EMAIL": "nope"}, want: "AdminEmail"},
		"minio no keys":    {set: map[string]string{"MINIO_ENDPOINT": "localhost:9000"}, want: "MinioAccessKey"},
		"non numeric port": {set: map[string]string{"PORT": "http"}, want: "Port"},
	}
	for name, tc := range cases {
		env := base()
		for k, v := range tc.set {
			env[k] = v
		}
		_, err := FromEnv(lookup(env))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error mentioning %q, got %v", name, tc.want, err)
		}
	}
}

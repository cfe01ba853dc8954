package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_STORE_DRIVER", "memory")
	t.Setenv("CATALOG_AUTH_JWT_SECRET", "test-secret")
	t.Setenv("CATALOG_PAGINATION_MAX_LIMIT", "200")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Driver != "memory" {
		t.Errorf("expected memory driver, got %q", cfg.Store.Driver)
	}
	if cfg.Pagination.DefaultLimit != 50 {
		t.Errorf("expected default limit 50, got %d", cfg.Pagination.DefaultLimit)
	}
	if cfg.Pagination.MaxLimit != 200 {
		t.Errorf("expected max limit 200 from env, got %d", cfg.Pagination.MaxLimit)
	}
	if cfg.Store.QueryTimeout != 3*time.Second {
		t.Errorf("expected 3s query timeout, got %v", cfg.Store.QueryTimeout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Server.Addr)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := []byte(`
store:
  driver: memory
auth:
  jwt_secret: from-file
log:
  level: debug
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-file" {
		t.Errorf("expected secret from file, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Store:      StoreConfig{Driver: "memory"},
		Auth:       AuthConfig{JWTSecret: "s"},
		Pagination: PaginationConfig{DefaultLimit: 50, MaxLimit: 100},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.Store.Driver = "postgres" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "cassandra" }, wantErr: true},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: true},
		{name: "max below default", mutate: func(c *Config) { c.Pagination.MaxLimit = 10 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

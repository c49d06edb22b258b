package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  rateLimit:
    capacity: 50
    refillRate: 10
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: app
  password: secret
  name: analyses
ai:
  provider: openai
  apiKey: sk-test
  model: gpt-4o-mini
  timeoutSeconds: 30
analysis:
  maxTextChars: 5000
  keywordCount: 7
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.Host != "db.internal" {
		t.Errorf("database block mismatch: %+v", cfg.Database)
	}
	if cfg.AI.Provider != "openai" || cfg.AI.TimeoutSeconds != 30 {
		t.Errorf("ai block mismatch: %+v", cfg.AI)
	}
	if cfg.Analysis.MaxTextChars != 5000 || cfg.Analysis.KeywordCount != 7 {
		t.Errorf("analysis block mismatch: %+v", cfg.Analysis)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "ai:\n  provider: local\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("default driver = %q, want memory", cfg.Database.Driver)
	}
}

func TestLoadEnvOverridesSecrets(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("DB_PASSWORD", "pw-from-env")

	cfg, err := Load(writeConfig(t, `
database:
  password: from-file
ai:
  apiKey: from-file
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want env override", cfg.AI.APIKey)
	}
	if cfg.Database.Password != "pw-from-env" {
		t.Errorf("Password = %q, want env override", cfg.Database.Password)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDSNHelpers(t *testing.T) {
	var cfg Config
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 3306
	cfg.Database.User = "root"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "app"

	wantMySQL := "root:pw@tcp(localhost:3306)/app?parseTime=true&charset=utf8mb4&loc=UTC"
	if got := cfg.MySQLDSN(); got != wantMySQL {
		t.Errorf("MySQLDSN() = %q, want %q", got, wantMySQL)
	}

	cfg.Database.Port = 5432
	wantPG := "host=localhost port=5432 user=root password=pw dbname=app sslmode=disable"
	if got := cfg.PostgresDSN(); got != wantPG {
		t.Errorf("PostgresDSN() = %q, want %q", got, wantPG)
	}
}

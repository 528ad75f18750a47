package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "config", "test.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	writeConfig(t, "http:\n  port: 8080\n")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Pipeline.ChunkSize != 400 || cfg.Pipeline.ChunkOverlap != 80 {
		t.Errorf("pipeline defaults = %d/%d, want 400/80", cfg.Pipeline.ChunkSize, cfg.Pipeline.ChunkOverlap)
	}
	if cfg.Pipeline.MinChunkChars != 20 || cfg.Pipeline.EmbedBatchSize != 10 {
		t.Errorf("pipeline defaults = %d/%d, want 20/10", cfg.Pipeline.MinChunkChars, cfg.Pipeline.EmbedBatchSize)
	}
	if cfg.Embedding.CacheSize != 1000 {
		t.Errorf("cache size = %d, want 1000", cfg.Embedding.CacheSize)
	}
	if cfg.Embedding.Available() {
		t.Error("embedding should be unavailable without an api key")
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("RAGDEX_TEST_KEY", "sk-test-123")
	writeConfig(t, `
http:
  port: 8080
embedding:
  api_key: ${RAGDEX_TEST_KEY}
  model: ${RAGDEX_TEST_MODEL:-text-embedding-3-small}
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Embedding.APIKey != "sk-test-123" {
		t.Errorf("api key = %q, want expanded env value", cfg.Embedding.APIKey)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("model = %q, want the :-default", cfg.Embedding.Model)
	}
	if !cfg.Embedding.Available() {
		t.Error("embedding should be available with an api key")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	writeConfig(t, "http:\n  port: 0\n")
	if _, err := Load("test"); err == nil {
		t.Fatal("expected error for port 0")
	}
}

func TestLoadRejectsOverlapAboveChunkSize(t *testing.T) {
	writeConfig(t, `
http:
  port: 8080
pipeline:
  chunk_size: 100
  chunk_overlap: 150
`)
	if _, err := Load("test"); err == nil {
		t.Fatal("expected error for overlap above chunk size")
	}
}

func TestLoadRejectsKeyWithoutModel(t *testing.T) {
	writeConfig(t, `
http:
  port: 8080
embedding:
  api_key: sk-abc
  model: ${RAGDEX_UNSET_MODEL_VAR}
`)
	if _, err := Load("test"); err == nil {
		t.Fatal("expected error for api key without model")
	}
}

func TestLoadMissingFile(t *testing.T) {
	writeConfig(t, "http:\n  port: 8080\n")
	if _, err := Load("nonexistent"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetEnvDefaultsToLocal(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("GetEnv() = %q, want local", env)
	}
	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("GetEnv() = %q, want prod", env)
	}
}

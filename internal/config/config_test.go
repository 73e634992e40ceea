package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "career-compass")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP_PORT") {
		t.Fatalf("expected HTTP_PORT in error, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATASET_SOURCE", "")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("REDIS_TTL", "")
	t.Setenv("LINKCHECK_SCHEDULE", "")
	t.Setenv("LINKCHECK_WORKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Dataset.Source != DatasetSourceFile || cfg.Dataset.Path == "" {
		t.Fatalf("unexpected dataset config: %+v", cfg.Dataset)
	}
	if cfg.Catalog.Source != CatalogSourceDefault {
		t.Fatalf("unexpected catalog source: %q", cfg.Catalog.Source)
	}
	if cfg.Redis.TTL != 600*time.Second {
		t.Fatalf("unexpected redis ttl: %v", cfg.Redis.TTL)
	}
	if cfg.LinkCheck.Schedule != "" || cfg.LinkCheck.Workers != 4 {
		t.Fatalf("unexpected linkcheck config: %+v", cfg.LinkCheck)
	}
}

func TestLoad_S3RequiresBucketAndKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATASET_SOURCE", "S3")
	t.Setenv("DATASET_S3_BUCKET", "")
	t.Setenv("DATASET_S3_KEY", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "DATASET_S3_BUCKET") || !strings.Contains(err.Error(), "DATASET_S3_KEY") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidSource(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATASET_SOURCE", "ftp")
	if _, err := Load(); !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestLoadKeywords(t *testing.T) {
	def, err := LoadKeywords("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if def.Education[0] != "bachelor" {
		t.Fatalf("expected default keywords, got %+v", def)
	}

	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte("interests:\n  - robotics\n  - finance\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	kw, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(kw.Interests, []string{"robotics", "finance"}) {
		t.Fatalf("unexpected interests: %v", kw.Interests)
	}
	if !reflect.DeepEqual(kw.Education, def.Education) {
		t.Fatalf("education should keep defaults, got %v", kw.Education)
	}

	if _, err := LoadKeywords(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

package seeder

import (
	"context"
	"testing"
)

func TestDefaults(t *testing.T) {
	seeders := Defaults("data/career_dataset.csv")
	if len(seeders) != 2 {
		t.Fatalf("expected 2 seeders, got %d", len(seeders))
	}
	if seeders[0].Name() != "skill_resources" || seeders[1].Name() != "career_training_records" {
		t.Fatalf("unexpected seeder order: %s, %s", seeders[0].Name(), seeders[1].Name())
	}
	if s, ok := seeders[1].(TrainingRecordsSeeder); !ok || s.Path != "data/career_dataset.csv" {
		t.Fatalf("dataset path not carried: %#v", seeders[1])
	}
}

func TestRunner_NilDB(t *testing.T) {
	if err := (Runner{Seeders: Defaults("x.csv")}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestEnsureTableColumns_NilDB(t *testing.T) {
	if err := EnsureTableColumns(context.Background(), nil, "skill_resources", "keyword"); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

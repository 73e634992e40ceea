package seeder

import (
	"context"
	"fmt"
	"os"

	"career-compass/internal/database"
	"career-compass/internal/domain/catalog"
	"career-compass/internal/domain/dataset"
	"career-compass/internal/repository"
)

// SkillResourcesSeeder writes the built-in catalog, keeping its order.
type SkillResourcesSeeder struct {
	Entries []catalog.Entry
}

func (SkillResourcesSeeder) Name() string { return "skill_resources" }

func (s SkillResourcesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_resources", "keyword", "url", "position"); err != nil {
		return err
	}

	entries := s.Entries
	if len(entries) == 0 {
		entries = catalog.Default().LookupAll()
	}
	return repository.NewPostgresSkillResourceRepository(db).UpsertResources(ctx, entries)
}

// TrainingRecordsSeeder loads a labeled CSV into career_training_records.
// Rows already present are left alone.
type TrainingRecordsSeeder struct {
	Path string
}

func (TrainingRecordsSeeder) Name() string { return "career_training_records" }

func (s TrainingRecordsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "career_training_records",
		"education", "skills", "interests", "recommended_career"); err != nil {
		return err
	}
	if s.Path == "" {
		return fmt.Errorf("empty dataset path")
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := dataset.Parse(f)
	if err != nil {
		return err
	}
	if err := dataset.Validate(records); err != nil {
		return err
	}

	_, err = repository.NewPostgresTrainingRecordRepository(db).InsertRecords(ctx, records)
	return err
}

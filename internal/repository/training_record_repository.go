package repository

import (
	"context"
	"fmt"

	"career-compass/internal/database"
	"career-compass/internal/domain/dataset"
)

type TrainingRecordRepository interface {
	ListRecords(ctx context.Context) ([]dataset.Record, error)
	InsertRecords(ctx context.Context, records []dataset.Record) (int64, error)
}

type PostgresTrainingRecordRepository struct {
	db database.DB
}

func NewPostgresTrainingRecordRepository(db database.DB) *PostgresTrainingRecordRepository {
	return &PostgresTrainingRecordRepository{db: db}
}

// ListRecords returns records in insertion order so training sees a
// stable dataset order.
func (r *PostgresTrainingRecordRepository) ListRecords(ctx context.Context) ([]dataset.Record, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT education, skills, interests, recommended_career FROM career_training_records ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dataset.Record, 0)
	for rows.Next() {
		var rec dataset.Record
		if err := rows.Scan(&rec.Education, &rec.Skills, &rec.Interests, &rec.RecommendedCareer); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertRecords skips rows that already exist and reports how many were new.
func (r *PostgresTrainingRecordRepository) InsertRecords(ctx context.Context, records []dataset.Record) (int64, error) {
	var inserted int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for i, rec := range records {
			n, err := tx.Exec(
				ctx,
				`INSERT INTO career_training_records (education, skills, interests, recommended_career)
				 VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
				rec.Education,
				rec.Skills,
				rec.Interests,
				rec.RecommendedCareer,
			)
			if err != nil {
				return fmt.Errorf("insert record %d: %w", i, err)
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

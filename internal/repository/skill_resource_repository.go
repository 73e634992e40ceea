package repository

import (
	"context"
	"fmt"

	"career-compass/internal/database"
	"career-compass/internal/domain/catalog"
)

type SkillResourceRepository interface {
	ListResources(ctx context.Context) ([]catalog.Entry, error)
	UpsertResources(ctx context.Context, entries []catalog.Entry) error
}

type PostgresSkillResourceRepository struct {
	db database.DB
}

func NewPostgresSkillResourceRepository(db database.DB) *PostgresSkillResourceRepository {
	return &PostgresSkillResourceRepository{db: db}
}

// ListResources returns entries in catalog order.
func (r *PostgresSkillResourceRepository) ListResources(ctx context.Context) ([]catalog.Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT keyword, url FROM skill_resources ORDER BY position ASC, keyword ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Entry, 0)
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.Keyword, &e.URL); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertResources writes entries with their slice index as position.
func (r *PostgresSkillResourceRepository) UpsertResources(ctx context.Context, entries []catalog.Entry) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for i, e := range entries {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO skill_resources (keyword, url, position) VALUES ($1, $2, $3)
				 ON CONFLICT (keyword) DO UPDATE SET url = EXCLUDED.url, position = EXCLUDED.position`,
				e.Keyword,
				e.URL,
				i,
			)
			if err != nil {
				return fmt.Errorf("upsert resource %q: %w", e.Keyword, err)
			}
		}
		return nil
	})
}

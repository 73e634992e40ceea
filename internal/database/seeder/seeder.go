package seeder

import (
	"context"

	"career-compass/internal/database"
)

// Seeder writes reference data. Running one twice must leave the same rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

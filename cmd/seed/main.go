package main

import (
	"context"
	"flag"
	"log"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/database/migration"
	dbpostgres "career-compass/internal/database/postgres"
	"career-compass/internal/database/seeder"
	"career-compass/internal/infrastructure/cache"
	"career-compass/migrations"
)

func main() {
	datasetPath := flag.String("dataset", "", "labeled CSV to load (defaults to DATASET_PATH)")
	migrationsDir := flag.String("migrations", "", "migrations directory (defaults to the embedded set)")
	skipMigrate := flag.Bool("skip-migrate", false, "do not apply migrations before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := log.Default()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if !*skipMigrate {
		r := migration.Runner{Dir: *migrationsDir, Logger: logger}
		if *migrationsDir == "" {
			r.FS = migrations.FS
		}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	path := *datasetPath
	if path == "" {
		path = cfg.Dataset.Path
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(path), Logger: logger}).Run(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	logger.Printf("[Seed] done | dataset=%s", path)

	// Cached recommendations were computed from the previous data.
	rc := cache.NewRedis(cfg.Redis, logger)
	defer func() {
		_ = rc.Close()
	}()
	if err := rc.DeleteByPattern(ctx, "recommend:*"); err != nil {
		logger.Printf("[Seed] cache invalidation failed: %v", err)
	}
}

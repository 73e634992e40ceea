package migration

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"career-compass/migrations"
)

func TestLoadMigrations_OrderAndFilter(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__seed_index.sql":           {Data: []byte("CREATE INDEX x ON t (a);")},
		"V1__create_career_tables.sql": {Data: []byte("  CREATE TABLE t (a INT);\n")},
		"README.md":                    {Data: []byte("ignored")},
		"V3_bad_name.sql":              {Data: []byte("ignored")},
	}
	migs, err := loadMigrations(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "create_career_tables" || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %+v", migs)
	}
	if migs[0].SQL != "CREATE TABLE t (a INT);" || len(migs[0].Checksum) != 64 {
		t.Fatalf("unexpected migration body/checksum: %+v", migs[0])
	}
}

func TestLoadMigrations_Errors(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("   ")}})
	if err == nil || !strings.Contains(err.Error(), "empty migration") {
		t.Fatalf("expected empty migration error, got %v", err)
	}

	_, err = loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestPending(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Checksum: "c1"},
		{Version: 2, Name: "b", Checksum: "c2"},
	}

	todo, err := pending(migs, map[int64]string{1: "c1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(todo) != 1 || todo[0].Version != 2 {
		t.Fatalf("expected only version 2 pending, got %+v", todo)
	}

	if _, err := pending(migs, map[int64]string{1: "changed"}); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestRunner_Source(t *testing.T) {
	if _, err := (Runner{}).source(); err == nil {
		t.Fatalf("expected error without FS or Dir")
	}
	fsys := fstest.MapFS{}
	got, err := (Runner{FS: fsys, Dir: "ignored"}).source()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := got.(fstest.MapFS); !ok {
		t.Fatalf("expected FS to win over Dir, got %T", got)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := loadMigrations(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected embedded V1 migration, got %+v", migs)
	}
	if !strings.Contains(migs[0].SQL, "career_training_records") {
		t.Fatalf("V1 does not create career_training_records")
	}
}

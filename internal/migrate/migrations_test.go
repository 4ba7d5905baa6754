package migrate

import (
	"path/filepath"
	"testing"

	"workseed/internal/db"
)

func TestStepsLoadInVersionOrder(t *testing.T) {
	all, err := steps()
	if err != nil {
		t.Fatalf("load steps: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("no embedded migrations")
	}
	for i := 1; i < len(all); i++ {
		if all[i].version <= all[i-1].version {
			t.Fatalf("%s does not increase the version", all[i].name)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	conn, err := db.Open(db.Config{Path: filepath.Join(t.TempDir(), "workseed.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var version int
	if err := conn.QueryRow(`SELECT version FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Fatalf("schema version %d, want 1", version)
	}

	var tables int
	err = conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='tasks'`).Scan(&tables)
	if err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	if tables != 1 {
		t.Fatal("tasks table missing after migration")
	}
}

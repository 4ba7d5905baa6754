package sink

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"workseed/internal/config"
	"workseed/internal/db"
	"workseed/internal/gen"
	"workseed/internal/graph"
	"workseed/internal/migrate"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(db.Config{Path: filepath.Join(t.TempDir(), "workseed.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func smallDataset(t *testing.T) *graph.Graph {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	cfg.Employees = 60
	cfg.Volumes.ProjectsPerTeam = config.Range{Min: 1, Max: 2}
	cfg.Volumes.TasksPerProject = config.Range{Min: 2, Max: 5}
	cfg.Volumes.Portfolios = 2
	g, err := gen.New(cfg, gen.Options{}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return g
}

func TestPersistRoundTrip(t *testing.T) {
	conn := testDB(t)
	g := smallDataset(t)
	if err := (&SQLite{DB: conn}).Persist(context.Background(), g); err != nil {
		t.Fatalf("persist: %v", err)
	}

	count := func(table string) int {
		var n int
		if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		return n
	}
	for _, kc := range g.Counts() {
		if got := count(kc.Kind); got != kc.Count {
			t.Fatalf("%s: %d rows, graph has %d", kc.Kind, got, kc.Count)
		}
	}

	// Spot-check a flattened custom field value: exactly one variant column.
	var populated int
	err := conn.QueryRow(`SELECT COUNT(*) FROM custom_field_values
WHERE (text_value IS NOT NULL) + (number_value IS NOT NULL) + (date_value IS NOT NULL) + (enum_option_id IS NOT NULL) <> 1`).Scan(&populated)
	if err != nil {
		t.Fatalf("variant check: %v", err)
	}
	if populated != 0 {
		t.Fatalf("%d custom field values with wrong variant count", populated)
	}
}

func TestPersistIsAtomic(t *testing.T) {
	conn := testDB(t)
	g := smallDataset(t)
	// Poison one late record so the transaction must roll back everything.
	g.PortfolioEntries[0].ProjectID = "not-a-project"

	err := (&SQLite{DB: conn}).Persist(context.Background(), g)
	if err == nil {
		t.Fatal("broken foreign key committed")
	}
	var ce *CommitError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CommitError, got %T: %v", err, err)
	}

	var users int
	if err := conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 0 {
		t.Fatalf("rollback left %d user rows behind", users)
	}
}

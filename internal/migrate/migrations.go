// Package migrate brings a dataset database up to the current workseed
// schema. Migrations are embedded SQL files named NNNN_description.sql and
// applied in version order; the applied version lives in schema_version.
package migrate

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var schemaFS embed.FS

type step struct {
	version int
	name    string
	stmts   string
}

// steps loads the embedded migrations. Zero-padded filename prefixes keep
// the glob's lexical order equal to version order; a non-increasing version
// is a packaging mistake and fails loudly.
func steps() ([]step, error) {
	paths, err := fs.Glob(schemaFS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	out := make([]step, 0, len(paths))
	for _, path := range paths {
		name := strings.TrimPrefix(path, "sql/")
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migrate: %s has no version prefix", name)
		}
		v, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migrate: %s: bad version prefix: %w", name, err)
		}
		if n := len(out); n > 0 && v <= out[n-1].version {
			return nil, fmt.Errorf("migrate: %s does not increase the version", name)
		}
		stmts, err := schemaFS.ReadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, step{version: v, name: name, stmts: string(stmts)})
	}
	return out, nil
}

// Migrate applies every pending migration inside a single transaction, so a
// database is either at its previous version or fully upgraded.
func Migrate(db *sql.DB) error {
	all, err := steps()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("migrate: create schema_version: %w", err)
	}
	current := 0
	switch err := tx.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err {
	case nil:
	case sql.ErrNoRows:
		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("migrate: seed schema_version: %w", err)
		}
	default:
		return fmt.Errorf("migrate: read schema_version: %w", err)
	}

	applied := false
	for _, s := range all {
		if s.version <= current {
			continue
		}
		if _, err := tx.Exec(s.stmts); err != nil {
			return fmt.Errorf("migrate: apply %s: %w", s.name, err)
		}
		current = s.version
		applied = true
	}
	if applied {
		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, current); err != nil {
			return fmt.Errorf("migrate: record version %d: %w", current, err)
		}
	}
	return tx.Commit()
}

// Package report stores per frame quality measurements in SQLite.
package report

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// schemaVersion is stored in PRAGMA user_version. Bump it with every
// change to schema.
const schemaVersion = 1

var ErrSchemaVersion = errors.New("report database written by a newer version")

// connection settings, applied in order
var pragmas = []struct{ stmt, what string }{
	{"PRAGMA journal_mode=WAL", "enable WAL mode"},
	{"PRAGMA foreign_keys=ON", "enable foreign keys"},
	// a concurrent quality run holds the write lock while it inserts
	{"PRAGMA busy_timeout=5000", "set busy timeout"},
}

type DB struct {
	db *sql.DB
}

// Open opens or creates the database at path and brings its schema up to
// schemaVersion.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.init(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) init() error {
	for _, p := range pragmas {
		if _, err := d.db.Exec(p.stmt); err != nil {
			return fmt.Errorf("failed to %s: %w", p.what, err)
		}
	}
	version, err := d.version()
	if err != nil {
		return err
	}
	if version > schemaVersion {
		return fmt.Errorf("%w: schema %d, supported %d", ErrSchemaVersion, version, schemaVersion)
	}
	if version == schemaVersion {
		return nil
	}
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version=%d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return tx.Commit()
}

func (d *DB) version() (int, error) {
	var v int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

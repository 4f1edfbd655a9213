package store

import (
	"database/sql"
	"fmt"

	"github.com/ademuri/chart-gaps/internal/migration"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CREATE TABLE IF NOT EXISTS leaves an existing Song table alone, so any
// columns it lacks are added here.
func ensureSchema(db *sql.DB) error {
	if err := addColumnIfNotExists(db, "Song", "peak_rank", "INTEGER"); err != nil {
		return err
	}
	if err := addColumnIfNotExists(db, "Song", "weeks_on_chart", "INTEGER"); err != nil {
		return err
	}
	return nil
}

func addColumnIfNotExists(db *sql.DB, table, column, typeDef string) error {
	exists, err := columnExists(db, table, column)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if !exists {
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typeDef)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, column, err)
		}
	}
	return nil
}

func columnExists(db *sql.DB, tableName string, columnName string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dfltValue interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == columnName {
			return true, nil
		}
	}
	return false, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "modernc.org/sqlite"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SqlStore reads and writes launch rows in SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory if it does not exist.
func Open(path string) (*SqlStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	s, err := open(path)
	if err != nil {
		return nil, err
	}
	if err := s.migrate(); err != nil {
		_ = s.db.Close()
		return nil, err
	}
	return s, nil
}

// OpenExisting opens a SQLite DB that must already exist. The schema is
// left untouched, so databases written by other tools can be read as long
// as their table has the launch columns.
func OpenExisting(path string) (*SqlStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return open(path)
}

func open(path string) (*SqlStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SqlStore{db: db}, nil
}

// Close releases the database handle.
func (s *SqlStore) Close() error { return s.db.Close() }

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableCount == 0 {
		return s.freshInstall()
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return s.freshInstall()
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != currentSchemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

func (s *SqlStore) freshInstall() error {
	if _, err := s.db.Exec(schemaV1); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

// Replace swaps the contents of the launches table for rows in one
// transaction. Row order is kept.
func (s *SqlStore) Replace(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+DefaultTable); err != nil {
		return fmt.Errorf("clear launches: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO launches
		(flight_number, launch_site, class, payload_mass_kg, booster_version, booster_version_category)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.FlightNumber, r.LaunchSite, r.Class,
			r.PayloadMassKg, r.BoosterVersion, r.BoosterVersionCategory); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Rows reads every row of table (DefaultTable when empty) in rowid order.
func (s *SqlStore) Rows(ctx context.Context, table string) ([]Row, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		COALESCE(flight_number, 0),
		launch_site,
		class,
		payload_mass_kg,
		COALESCE(booster_version, ''),
		booster_version_category
	FROM `+table+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.FlightNumber, &r.LaunchSite, &r.Class, &r.PayloadMassKg,
			&r.BoosterVersion, &r.BoosterVersionCategory); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", table, len(out)+1, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return out, nil
}

// Count returns the number of rows in the launches table.
func (s *SqlStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+DefaultTable).Scan(&n); err != nil {
		return 0, fmt.Errorf("count launches: %w", err)
	}
	return n, nil
}

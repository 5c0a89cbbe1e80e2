// Package store implements the relational persistence layer of the vault on
// SQLite. It owns all durable state: the master credential, categories,
// credential entries and settings. Secret values pass through as opaque
// ciphertext tokens; the store never encrypts or decrypts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
	"github.com/Tech-Artist89/Passwortmanager/internal/store/migrations"
)

// querier is the subset of database/sql satisfied by both *sql.DB and
// *sql.Tx, so every store method works inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Default category created on first initialization.
const (
	DefaultCategoryName        = "Allgemein"
	DefaultCategoryDescription = "Standardkategorie für alle Passwörter"
)

// Store provides CRUD and query operations over the vault database. A Store
// obtained from Open runs each statement on the shared connection pool; a
// Store handed to an InTx callback runs everything inside one transaction.
type Store struct {
	db    querier
	sqlDB *sql.DB // nil for transactional copies
}

// Open opens (or creates) the vault database at path, applies pending
// migrations and seeds the default category and settings on first run.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Store{db: db, sqlDB: db}
	if err := s.ensureDefaults(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Close closes the underlying database. Calling Close on a transactional
// copy is a no-op.
func (s *Store) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// InTx runs fn against a transactional copy of the store and commits if fn
// returns nil, rolling back otherwise. The deferred rollback also covers a
// panic in fn; after a commit it is a no-op. Nested calls reuse the
// surrounding transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.sqlDB == nil {
		return fn(s)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&Store{db: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// ensureDefaults seeds the default category and the settings singleton when
// the respective tables are empty.
func (s *Store) ensureDefaults(ctx context.Context) error {
	var categories int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&categories); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if categories == 0 {
		desc := DefaultCategoryDescription
		if _, err := s.AddCategory(ctx, &models.Category{Name: DefaultCategoryName, Description: &desc}); err != nil {
			return err
		}
	}

	var settings int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&settings); err != nil {
		return fmt.Errorf("failed to count settings: %w", err)
	}
	if settings == 0 {
		if err := s.SaveSettings(ctx, models.DefaultSettings()); err != nil {
			return err
		}
	}

	return nil
}

// now returns the current time formatted the way timestamps are persisted.
func now() string {
	return time.Now().Format(common.TimeFormat)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(common.TimeFormatParse, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// requireRow converts an exec result into a not-found failure when no row
// was touched, so mutations on missing ids are reported as no-ops.
func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

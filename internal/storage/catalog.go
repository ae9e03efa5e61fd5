// Package storage keeps the entity catalog in a SQLite database and answers
// resolver lookups from it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/txsearch/internal/fileutils"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/models"

	_ "modernc.org/sqlite"
)

// SQLiteCatalog implements resolver.Backend on top of SQLite. Name matching
// uses LIKE, which folds case for ASCII letters only.
type SQLiteCatalog struct {
	db     *sql.DB
	logger logging.Logger
}

// NewSQLiteCatalog opens (creating if needed) the database at dbPath and
// migrates it.
func NewSQLiteCatalog(dbPath string, logger logging.Logger) (*SQLiteCatalog, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("Opened SQLite catalog", logging.F(logging.FieldFile, dbPath))
	return &SQLiteCatalog{db: db, logger: logger}, nil
}

// Close closes the database.
func (c *SQLiteCatalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Import replaces the stored catalog with catalog in a single transaction.
func (c *SQLiteCatalog) Import(ctx context.Context, catalog models.Catalog) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entities`); err != nil {
		return fmt.Errorf("clear entities: %w", err)
	}

	for _, acc := range catalog.Accounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, name, type) VALUES (?, ?, ?)`,
			acc.ID, acc.Name, string(acc.Type)); err != nil {
			return fmt.Errorf("insert account %q: %w", acc.Name, err)
		}
	}

	for _, kind := range []models.EntityKind{models.EntityCategory, models.EntityBudget, models.EntityTag, models.EntityBill} {
		for _, ref := range catalog.Entities(kind) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO entities (kind, id, name) VALUES (?, ?, ?)`,
				string(kind), ref.ID, ref.Name); err != nil {
				return fmt.Errorf("insert %s %q: %w", kind, ref.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	c.logger.Info("Imported catalog", logging.F(logging.FieldCount, catalog.Size()))
	return nil
}

// SearchAccount implements resolver.AccountSearcher.
func (c *SQLiteCatalog) SearchAccount(ctx context.Context, term string, kinds []models.AccountType, limit int) ([]models.Account, error) {
	query := `SELECT id, name, type FROM accounts WHERE name LIKE ? ESCAPE '\'`
	args := []any{likePattern(term)}
	if len(kinds) > 0 {
		query += ` AND type IN (?` + strings.Repeat(`, ?`, len(kinds)-1) + `)`
		for _, k := range kinds {
			args = append(args, string(k))
		}
	}
	query += ` ORDER BY name, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		var acc models.Account
		var accType string
		if err := rows.Scan(&acc.ID, &acc.Name, &accType); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		acc.Type = models.AccountType(accType)
		out = append(out, acc)
	}
	return out, rows.Err()
}

// SearchCategory implements resolver.CategorySearcher.
func (c *SQLiteCatalog) SearchCategory(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return c.searchEntities(ctx, models.EntityCategory, term, limit)
}

// SearchBudget implements resolver.BudgetSearcher.
func (c *SQLiteCatalog) SearchBudget(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return c.searchEntities(ctx, models.EntityBudget, term, limit)
}

// SearchTag implements resolver.TagSearcher.
func (c *SQLiteCatalog) SearchTag(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return c.searchEntities(ctx, models.EntityTag, term, limit)
}

// SearchBill implements resolver.BillSearcher.
func (c *SQLiteCatalog) SearchBill(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return c.searchEntities(ctx, models.EntityBill, term, limit)
}

func (c *SQLiteCatalog) searchEntities(ctx context.Context, kind models.EntityKind, term string, limit int) ([]models.EntityRef, error) {
	query := `SELECT id, name FROM entities WHERE kind = ? AND name LIKE ? ESCAPE '\' ORDER BY name, id`
	args := []any{string(kind), likePattern(term)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	defer rows.Close()

	var out []models.EntityRef
	for rows.Next() {
		var ref models.EntityRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a "contains" pattern with LIKE wildcards in term escaped.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

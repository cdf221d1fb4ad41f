// Package migrations applies the embedded sqlite schema. The postgres
// subpackage shares the same file layout and reader.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

const Dir = "sql"

//go:embed sql/*.sql
var sqliteFS embed.FS

// Migration is one .sql file split into its statements.
type Migration struct {
	Name       string
	Statements []string
}

// Status pairs a migration with when it was applied; AppliedAt is zero for
// pending ones.
type Status struct {
	Name      string
	AppliedAt time.Time
}

func (s Status) Applied() bool { return !s.AppliedAt.IsZero() }

// Read loads every .sql file under dir in name order.
func Read(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	out := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		out = append(out, Migration{Name: entry.Name(), Statements: split(string(content))})
	}

	slices.SortFunc(out, func(a, b Migration) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func split(content string) []string {
	var stmts []string
	for stmt := range strings.SplitSeq(content, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// Pending filters out migrations already recorded in applied.
func Pending(all []Migration, applied map[string]time.Time) []Migration {
	return slices.DeleteFunc(slices.Clone(all), func(m Migration) bool {
		_, ok := applied[m.Name]
		return ok
	})
}

// Statuses lists every migration with its applied time.
func Statuses(all []Migration, applied map[string]time.Time) []Status {
	out := make([]Status, 0, len(all))
	for _, m := range all {
		out = append(out, Status{Name: m.Name, AppliedAt: applied[m.Name]})
	}
	return out
}

// Apply runs pending sqlite migrations, each in its own transaction.
func Apply(ctx context.Context, db *sql.DB) error {
	all, err := Read(sqliteFS, Dir)
	if err != nil {
		return err
	}
	if err := createHistoryTable(ctx, db); err != nil {
		return err
	}
	applied, err := appliedAt(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range Pending(all, applied) {
		if err := applyOne(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

// Check reports every embedded sqlite migration and whether it has run.
func Check(ctx context.Context, db *sql.DB) ([]Status, error) {
	all, err := Read(sqliteFS, Dir)
	if err != nil {
		return nil, err
	}
	if err := createHistoryTable(ctx, db); err != nil {
		return nil, err
	}
	applied, err := appliedAt(ctx, db)
	if err != nil {
		return nil, err
	}
	return Statuses(all, applied), nil
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", m.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", m.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations_history (name) VALUES (?)", m.Name); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", m.Name, err)
	}
	return nil
}

func createHistoryTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations history table: %w", err)
	}
	return nil
}

func appliedAt(ctx context.Context, db *sql.DB) (map[string]time.Time, error) {
	rows, err := db.QueryContext(ctx, "SELECT name, applied_at FROM migrations_history")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[string]time.Time)
	for rows.Next() {
		var (
			name string
			at   time.Time
		)
		if err := rows.Scan(&name, &at); err != nil {
			return nil, fmt.Errorf("failed to scan migrations history: %w", err)
		}
		applied[name] = at
	}
	return applied, rows.Err()
}

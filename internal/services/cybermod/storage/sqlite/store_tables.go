package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/storage"
)

// PutTable inserts or replaces a random table and its rows.
func (s *Store) PutTable(ctx context.Context, table storage.RandomTable) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	table.Name = strings.TrimSpace(table.Name)
	if err := table.Validate(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO random_tables (name, formula, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET formula = excluded.formula, updated_at = excluded.updated_at`,
		table.Name, strings.TrimSpace(table.Formula), s.timestamp(),
	); err != nil {
		return fmt.Errorf("put table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM random_table_rows WHERE table_name = ?`, table.Name); err != nil {
		return fmt.Errorf("clear table rows: %w", err)
	}
	for position, row := range table.Rows {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO random_table_rows (table_name, position, min_roll, max_roll, text) VALUES (?, ?, ?, ?, ?)`,
			table.Name, position, row.Min, row.Max, row.Text,
		); err != nil {
			return fmt.Errorf("put table row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit table: %w", err)
	}
	return nil
}

// GetTable returns a random table by exact name.
func (s *Store) GetTable(ctx context.Context, name string) (storage.RandomTable, error) {
	if err := s.ready(ctx); err != nil {
		return storage.RandomTable{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.RandomTable{}, fmt.Errorf("table name is required")
	}

	table := storage.RandomTable{Name: name}
	err := s.sqlDB.QueryRowContext(ctx, `SELECT formula FROM random_tables WHERE name = ?`, name).Scan(&table.Formula)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RandomTable{}, storage.ErrNotFound
		}
		return storage.RandomTable{}, fmt.Errorf("get table: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT min_roll, max_roll, text FROM random_table_rows WHERE table_name = ? ORDER BY position`,
		name,
	)
	if err != nil {
		return storage.RandomTable{}, fmt.Errorf("list table rows: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var row storage.TableRow
		if err := rows.Scan(&row.Min, &row.Max, &row.Text); err != nil {
			return storage.RandomTable{}, fmt.Errorf("scan table row: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return storage.RandomTable{}, fmt.Errorf("list table rows: %w", err)
	}
	return table, nil
}

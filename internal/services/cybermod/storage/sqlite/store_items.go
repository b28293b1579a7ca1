package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/storage"
)

// CreateItem appends an item to the actor's collection.
func (s *Store) CreateItem(ctx context.Context, actorID string, item domain.Item) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return fmt.Errorf("actor id is required")
	}
	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("item id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var next int
	err = tx.QueryRowContext(
		ctx,
		`SELECT COALESCE((SELECT MAX(position) + 1 FROM items WHERE actor_id = a.id), 0)
		   FROM actors a
		  WHERE a.id = ?`,
		actorID,
	).Scan(&next)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("next item position: %w", err)
	}
	if err := insertItem(ctx, tx, actorID, next, item, s.timestamp()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit item: %w", err)
	}
	return nil
}

// UpdateItem applies one patch to an owned item document.
func (s *Store) UpdateItem(ctx context.Context, actorID, itemID string, patch domain.ItemPatch) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	actorID = strings.TrimSpace(actorID)
	itemID = strings.TrimSpace(itemID)
	if actorID == "" || itemID == "" {
		return fmt.Errorf("actor id and item id are required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var document string
	err = tx.QueryRowContext(
		ctx,
		`SELECT document FROM items WHERE actor_id = ? AND id = ?`,
		actorID, itemID,
	).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("get item: %w", err)
	}
	item, err := decodeItem(itemID, document)
	if err != nil {
		return err
	}
	item = patch.Apply(item)
	encoded, err := encodeItem(item)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE items SET name = ?, kind = ?, document = ?, updated_at = ? WHERE actor_id = ? AND id = ?`,
		item.Name, string(item.Kind), encoded, s.timestamp(), actorID, itemID,
	); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit item: %w", err)
	}
	return nil
}

// DeleteItem removes an owned item.
func (s *Store) DeleteItem(ctx context.Context, actorID, itemID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM items WHERE actor_id = ? AND id = ?`,
		strings.TrimSpace(actorID), strings.TrimSpace(itemID),
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func insertItem(ctx context.Context, tx *sql.Tx, actorID string, position int, item domain.Item, now int64) error {
	item = item.Normalize()
	if item.ID == "" {
		return fmt.Errorf("item id is required")
	}
	encoded, err := encodeItem(item)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO items (id, actor_id, position, name, kind, document, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, actorID, position, item.Name, string(item.Kind), encoded, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

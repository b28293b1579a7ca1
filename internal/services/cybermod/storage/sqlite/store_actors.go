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

// PutActor inserts or replaces an actor and its full item collection.
func (s *Store) PutActor(ctx context.Context, actor domain.Actor) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	actor.ID = strings.TrimSpace(actor.ID)
	if actor.ID == "" {
		return fmt.Errorf("actor id is required")
	}
	if strings.TrimSpace(actor.Name) == "" {
		return fmt.Errorf("actor name is required")
	}
	actor = actor.Normalize()
	now := s.timestamp()

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO actors (
		   id, name, strength, speed, intellect, combat,
		   sanity, fear, body, health, health_max,
		   stress, stress_min, stress_max, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   strength = excluded.strength,
		   speed = excluded.speed,
		   intellect = excluded.intellect,
		   combat = excluded.combat,
		   sanity = excluded.sanity,
		   fear = excluded.fear,
		   body = excluded.body,
		   health = excluded.health,
		   health_max = excluded.health_max,
		   stress = excluded.stress,
		   stress_min = excluded.stress_min,
		   stress_max = excluded.stress_max,
		   updated_at = excluded.updated_at`,
		actor.ID, actor.Name,
		actor.Stats.Strength, actor.Stats.Speed, actor.Stats.Intellect, actor.Stats.Combat,
		actor.Saves.Sanity, actor.Saves.Fear, actor.Saves.Body,
		actor.Health.Value, actor.Health.Max,
		actor.Stress.Value, actor.Stress.Min, actor.Stress.Max,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("put actor: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE actor_id = ?`, actor.ID); err != nil {
		return fmt.Errorf("clear actor items: %w", err)
	}
	for position, item := range actor.Items {
		if err := insertItem(ctx, tx, actor.ID, position, item, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit actor: %w", err)
	}
	return nil
}

// GetActor returns one actor with its items in insertion order.
func (s *Store) GetActor(ctx context.Context, actorID string) (domain.Actor, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Actor{}, err
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return domain.Actor{}, fmt.Errorf("actor id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, strength, speed, intellect, combat,
		        sanity, fear, body, health, health_max,
		        stress, stress_min, stress_max
		   FROM actors
		  WHERE id = ?`,
		actorID,
	)
	var actor domain.Actor
	err := row.Scan(
		&actor.ID, &actor.Name,
		&actor.Stats.Strength, &actor.Stats.Speed, &actor.Stats.Intellect, &actor.Stats.Combat,
		&actor.Saves.Sanity, &actor.Saves.Fear, &actor.Saves.Body,
		&actor.Health.Value, &actor.Health.Max,
		&actor.Stress.Value, &actor.Stress.Min, &actor.Stress.Max,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Actor{}, storage.ErrNotFound
		}
		return domain.Actor{}, fmt.Errorf("get actor: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, document FROM items WHERE actor_id = ? ORDER BY position, id`,
		actorID,
	)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("list actor items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, document string
		if err := rows.Scan(&id, &document); err != nil {
			return domain.Actor{}, fmt.Errorf("scan actor item: %w", err)
		}
		item, err := decodeItem(id, document)
		if err != nil {
			return domain.Actor{}, err
		}
		actor.Items = append(actor.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Actor{}, fmt.Errorf("list actor items: %w", err)
	}
	return actor.Normalize(), nil
}

// ListActors returns every actor ordered by name.
func (s *Store) ListActors(ctx context.Context) ([]storage.ActorSummary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT a.id, a.name, COUNT(i.id)
		   FROM actors a
		   LEFT JOIN items i ON i.actor_id = a.id
		  GROUP BY a.id, a.name
		  ORDER BY a.name, a.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	summaries := []storage.ActorSummary{}
	for rows.Next() {
		var summary storage.ActorSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Items); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	return summaries, nil
}

// UpdateActor applies one patch to the actor's scalar fields.
func (s *Store) UpdateActor(ctx context.Context, actorID string, patch domain.ActorPatch) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return fmt.Errorf("actor id is required")
	}

	sets := []string{"updated_at = ?"}
	args := []any{s.timestamp()}
	if patch.Stress != nil {
		sets = append(sets, "stress = ?")
		args = append(args, *patch.Stress)
	}
	if patch.Health != nil {
		sets = append(sets, "health = ?")
		args = append(args, *patch.Health)
	}
	if patch.Sanity != nil {
		sets = append(sets, "sanity = ?")
		args = append(args, *patch.Sanity)
	}
	args = append(args, actorID)

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE actors SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("update actor: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update actor rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

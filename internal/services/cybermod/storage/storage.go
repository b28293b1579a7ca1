// Package storage defines persistence contracts for cybermod documents.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
)

var (
	// ErrNotFound indicates a requested document is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained document already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// DocumentStore reads and patches actor and item documents. Each call is
// atomic for the one document it touches.
type DocumentStore interface {
	GetActor(ctx context.Context, actorID string) (domain.Actor, error)
	UpdateActor(ctx context.Context, actorID string, patch domain.ActorPatch) error
	UpdateItem(ctx context.Context, actorID, itemID string, patch domain.ItemPatch) error
	CreateItem(ctx context.Context, actorID string, item domain.Item) error
}

// ActorSummary is one row of an actor listing.
type ActorSummary struct {
	ID    string
	Name  string
	Items int
}

// WorldStore seeds and browses world documents.
type WorldStore interface {
	PutActor(ctx context.Context, actor domain.Actor) error
	ListActors(ctx context.Context) ([]ActorSummary, error)
	DeleteItem(ctx context.Context, actorID, itemID string) error
}

// TableRow is one range of a random table, inclusive on both ends.
type TableRow struct {
	Min  int
	Max  int
	Text string
}

// RandomTable is a named lookup table rolled with Formula.
type RandomTable struct {
	Name    string
	Formula string
	Rows    []TableRow
}

// Lookup returns the text of the row covering roll.
func (t RandomTable) Lookup(roll int) (string, bool) {
	for _, row := range t.Rows {
		if roll >= row.Min && roll <= row.Max {
			return row.Text, true
		}
	}
	return "", false
}

// Validate checks the table for a name, a formula and non-empty rows.
func (t RandomTable) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("table name is required")
	}
	if strings.TrimSpace(t.Formula) == "" {
		return errors.New("table formula is required")
	}
	if len(t.Rows) == 0 {
		return errors.New("table rows are required")
	}
	for _, row := range t.Rows {
		if row.Min > row.Max {
			return errors.New("table row min must not exceed max")
		}
	}
	return nil
}

// TableStore persists random tables.
type TableStore interface {
	PutTable(ctx context.Context, table RandomTable) error
	GetTable(ctx context.Context, name string) (RandomTable, error)
}

// Store is every persistence contract the cybermod service uses.
type Store interface {
	DocumentStore
	WorldStore
	TableStore
}

package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/storage"
)

// StoreTables draws rows from tables kept in a TableStore.
type StoreTables struct {
	Store storage.TableStore
	Dice  dice.Roller
}

// Draw rolls the table's formula and returns the matching row.
func (t StoreTables) Draw(ctx context.Context, name string) (TableDraw, error) {
	if t.Store == nil || t.Dice == nil {
		return TableDraw{}, lookupNotFound(name, errors.New("tables are not configured"))
	}
	table, err := t.Store.GetTable(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return TableDraw{}, lookupNotFound(name, err)
		}
		return TableDraw{}, apperrors.WrapWithMetadata(apperrors.CodeTransientIOFailure, "get table", map[string]string{"Table": name}, err)
	}
	result, err := t.Dice.Roll(ctx, table.Formula)
	if err != nil {
		return TableDraw{}, apperrors.WrapWithMetadata(apperrors.CodeTransientIOFailure, "roll table", map[string]string{"Table": name}, err)
	}
	text, ok := table.Lookup(result.Total)
	if !ok {
		return TableDraw{}, lookupNotFound(name, fmt.Errorf("no row for %s", strconv.Itoa(result.Total)))
	}
	return TableDraw{Table: name, Roll: result.Total, Text: text}, nil
}

func lookupNotFound(table string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeLookupNotFound, "table not found", map[string]string{"Table": table}, cause)
}

var _ TableRoller = StoreTables{}

// Package fixtures loads YAML world files into cybermod storage. Files are
// validated against an embedded JSON schema before they are decoded.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/storage"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "https://pound-of-flesh.local/schemas/world.schema.json"

//go:embed schema.json
var schemaJSON string

//go:embed data/world.yaml
var defaultWorld []byte

// World is a decoded fixture file.
type World struct {
	Actors []Actor `json:"actors"`
	Tables []Table `json:"tables"`
}

// Actor is one actor fixture.
type Actor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Stats  Stats  `json:"stats"`
	Saves  Saves  `json:"saves"`
	Health Range  `json:"health"`
	Stress Stress `json:"stress"`
	Items  []Item `json:"items"`
}

// Stats are actor attributes.
type Stats struct {
	Strength  int `json:"strength"`
	Speed     int `json:"speed"`
	Intellect int `json:"intellect"`
	Combat    int `json:"combat"`
}

// Saves are actor saves.
type Saves struct {
	Sanity int `json:"sanity"`
	Fear   int `json:"fear"`
	Body   int `json:"body"`
}

// Range is a current value and its maximum.
type Range struct {
	Value int `json:"value"`
	Max   int `json:"max"`
}

// Stress is the stress track. Zero bounds take the domain defaults.
type Stress struct {
	Value int `json:"value"`
	Min   int `json:"min"`
	Max   int `json:"max"`
}

// Item is one item fixture.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"`
	Cost        int       `json:"cost"`
	Trained     bool      `json:"trained"`
	Expert      bool      `json:"expert"`
	Cyberware   bool      `json:"cyberware"`
	Slickware   bool      `json:"slickware"`
	Cyber       Cyber     `json:"cyber"`
	Flags       ItemFlags `json:"flags"`
}

// Cyber is the cybermod sub-record of an item fixture.
type Cyber struct {
	IsCyber        bool   `json:"is_cyber"`
	Type           string `json:"type"`
	Installed      bool   `json:"installed"`
	Requirements   string `json:"requirements"`
	SlotCost       int    `json:"slot_cost"`
	CanOverclock   bool   `json:"can_overclock"`
	Overclocked    bool   `json:"overclocked"`
	Malfunctioning bool   `json:"malfunctioning"`
}

// ItemFlags are equipment markers.
type ItemFlags struct {
	Cyber  bool `json:"cyber"`
	Module bool `json:"module"`
}

// Table is a random table fixture.
type Table struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
	Rows    []Row  `json:"rows"`
}

// Row is one inclusive range of a table.
type Row struct {
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Text string `json:"text"`
}

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("load world schema: %v", err))
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile world schema: %v", err))
	}
	return schema
}

// Load reads, validates, and decodes a YAML world.
func Load(r io.Reader) (World, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return World{}, fmt.Errorf("read world: %w", err)
	}
	return Parse(raw)
}

// Parse validates and decodes a YAML world.
func Parse(raw []byte) (World, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return World{}, fmt.Errorf("parse world yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	// Round-trip through JSON so the validator sees JSON value types.
	encoded, err := json.Marshal(doc)
	if err != nil {
		return World{}, fmt.Errorf("encode world: %w", err)
	}
	var value any
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return World{}, fmt.Errorf("decode world: %w", err)
	}
	if err := compiledSchema.Validate(value); err != nil {
		return World{}, fmt.Errorf("validate world: %w", err)
	}

	var world World
	if err := json.Unmarshal(encoded, &world); err != nil {
		return World{}, fmt.Errorf("decode world: %w", err)
	}
	if err := world.check(); err != nil {
		return World{}, err
	}
	return world, nil
}

// Default returns the bundled sample world.
func Default() (World, error) {
	return Parse(defaultWorld)
}

// check enforces the rules the schema cannot express.
func (w World) check() error {
	actors := map[string]bool{}
	for _, actor := range w.Actors {
		if actors[actor.ID] {
			return fmt.Errorf("duplicate actor id %q", actor.ID)
		}
		actors[actor.ID] = true
		items := map[string]bool{}
		for _, item := range actor.Items {
			if items[item.ID] {
				return fmt.Errorf("actor %q: duplicate item id %q", actor.ID, item.ID)
			}
			items[item.ID] = true
		}
	}
	tables := map[string]bool{}
	for _, table := range w.Tables {
		if tables[table.Name] {
			return fmt.Errorf("duplicate table %q", table.Name)
		}
		tables[table.Name] = true
		if err := table.RandomTable().Validate(); err != nil {
			return fmt.Errorf("table %q: %w", table.Name, err)
		}
	}
	return nil
}

// DomainActor converts the fixture to a normalized domain actor.
func (a Actor) DomainActor() domain.Actor {
	actor := domain.Actor{
		ID:     a.ID,
		Name:   a.Name,
		Stats:  domain.Stats{Strength: a.Stats.Strength, Speed: a.Stats.Speed, Intellect: a.Stats.Intellect, Combat: a.Stats.Combat},
		Saves:  domain.Saves{Sanity: a.Saves.Sanity, Fear: a.Saves.Fear, Body: a.Saves.Body},
		Health: domain.Health{Value: a.Health.Value, Max: a.Health.Max},
		Stress: domain.Stress{Value: a.Stress.Value, Min: a.Stress.Min, Max: a.Stress.Max},
	}
	for _, item := range a.Items {
		actor.Items = append(actor.Items, item.DomainItem())
	}
	return actor.Normalize()
}

// DomainItem converts the fixture to a normalized domain item.
func (i Item) DomainItem() domain.Item {
	return domain.Item{
		ID:              i.ID,
		Name:            i.Name,
		Description:     i.Description,
		Kind:            domain.Kind(i.Kind),
		Cost:            i.Cost,
		LegacyCyberware: i.Cyberware,
		LegacySlickware: i.Slickware,
		HasCyberFlag:    i.Flags.Cyber,
		HasModuleFlag:   i.Flags.Module,
		Trained:         i.Trained,
		Expert:          i.Expert,
		Cyber: domain.Cyber{
			IsCyber:        i.Cyber.IsCyber,
			CyberType:      domain.Type(i.Cyber.Type),
			Installed:      i.Cyber.Installed,
			Requirements:   i.Cyber.Requirements,
			SlotCost:       i.Cyber.SlotCost,
			CanOverclock:   i.Cyber.CanOverclock,
			Overclocked:    i.Cyber.Overclocked,
			Malfunctioning: i.Cyber.Malfunctioning,
		},
	}.Normalize()
}

// RandomTable converts the fixture to a storage table.
func (t Table) RandomTable() storage.RandomTable {
	table := storage.RandomTable{Name: t.Name, Formula: t.Formula}
	for _, row := range t.Rows {
		table.Rows = append(table.Rows, storage.TableRow{Min: row.Min, Max: row.Max, Text: row.Text})
	}
	return table
}

// Importer is the storage a world is written into.
type Importer interface {
	PutActor(ctx context.Context, actor domain.Actor) error
	PutTable(ctx context.Context, table storage.RandomTable) error
}

// Summary counts what an import wrote.
type Summary struct {
	Actors int
	Items  int
	Tables int
}

// Import writes every actor and table. Existing documents with the same
// ids are replaced.
func Import(ctx context.Context, store Importer, world World) (Summary, error) {
	if store == nil {
		return Summary{}, fmt.Errorf("store is required")
	}
	var summary Summary
	for _, table := range world.Tables {
		if err := store.PutTable(ctx, table.RandomTable()); err != nil {
			return summary, fmt.Errorf("put table %q: %w", table.Name, err)
		}
		summary.Tables++
	}
	for _, fixture := range world.Actors {
		actor := fixture.DomainActor()
		if err := store.PutActor(ctx, actor); err != nil {
			return summary, fmt.Errorf("put actor %q: %w", actor.ID, err)
		}
		summary.Actors++
		summary.Items += len(actor.Items)
	}
	return summary, nil
}

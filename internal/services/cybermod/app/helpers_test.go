package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/storage"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	// The expirable LRU behind the slot cache runs a janitor for the life of
	// the process.
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("github.com/hashicorp/golang-lru/v2/expirable.NewLRU[...].func1"))
}

var errInjected = errors.New("injected failure")

// memoryStore keeps actors in memory and can fail selected writes.
type memoryStore struct {
	mu             sync.Mutex
	actors         map[string]domain.Actor
	failUpdateItem bool
	failCreateItem bool
	writes         int
}

func newMemoryStore(actors ...domain.Actor) *memoryStore {
	s := &memoryStore{actors: map[string]domain.Actor{}}
	for _, actor := range actors {
		s.actors[actor.ID] = actor.Normalize()
	}
	return s
}

func (s *memoryStore) GetActor(ctx context.Context, actorID string) (domain.Actor, error) {
	if err := ctx.Err(); err != nil {
		return domain.Actor{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, ok := s.actors[actorID]
	if !ok {
		return domain.Actor{}, storage.ErrNotFound
	}
	actor.Items = append([]domain.Item(nil), actor.Items...)
	return actor, nil
}

func (s *memoryStore) UpdateActor(_ context.Context, actorID string, patch domain.ActorPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, ok := s.actors[actorID]
	if !ok {
		return storage.ErrNotFound
	}
	s.writes++
	s.actors[actorID] = patch.Apply(actor)
	return nil
}

func (s *memoryStore) UpdateItem(_ context.Context, actorID, itemID string, patch domain.ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdateItem {
		return errInjected
	}
	actor, ok := s.actors[actorID]
	if !ok {
		return storage.ErrNotFound
	}
	if _, ok := actor.Item(itemID); !ok {
		return storage.ErrNotFound
	}
	s.writes++
	s.actors[actorID] = actor.WithPatch(itemID, patch)
	return nil
}

func (s *memoryStore) CreateItem(_ context.Context, actorID string, item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateItem {
		return errInjected
	}
	actor, ok := s.actors[actorID]
	if !ok {
		return storage.ErrNotFound
	}
	if _, exists := actor.Item(item.ID); exists {
		return storage.ErrAlreadyExists
	}
	s.writes++
	actor.Items = append(append([]domain.Item(nil), actor.Items...), item.Normalize())
	s.actors[actorID] = actor
	return nil
}

func (s *memoryStore) actor(t *testing.T, actorID string) domain.Actor {
	t.Helper()
	actor, err := s.GetActor(context.Background(), actorID)
	if err != nil {
		t.Fatalf("get actor: %v", err)
	}
	return actor
}

func (s *memoryStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

var _ storage.DocumentStore = (*memoryStore)(nil)

// faceRoller returns scripted faces per formula, in order. Totals are the
// sum of the faces.
type faceRoller struct {
	mu    sync.Mutex
	faces map[string][][]int
	calls []string
}

func (r *faceRoller) Roll(ctx context.Context, formula string) (dice.Result, error) {
	if err := ctx.Err(); err != nil {
		return dice.Result{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, formula)
	queue := r.faces[formula]
	if len(queue) == 0 {
		return dice.Result{}, fmt.Errorf("unexpected roll %q", formula)
	}
	r.faces[formula] = queue[1:]
	result := dice.Result{}
	for _, face := range queue[0] {
		result.Rolls = append(result.Rolls, dice.Roll{Sides: 100, Results: []int{face}, Total: face})
		result.Total += face
	}
	return result, nil
}

func rolls(pairs map[string][][]int) *faceRoller {
	return &faceRoller{faces: pairs}
}

type recordingNarrator struct {
	mu    sync.Mutex
	posts []Narrative
}

func (n *recordingNarrator) Post(_ context.Context, narrative Narrative) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.posts = append(n.posts, narrative)
	return nil
}

func (n *recordingNarrator) headers() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, post := range n.posts {
		out = append(out, post.Header)
	}
	return out
}

type recordingTables struct {
	mu    sync.Mutex
	draws []string
}

func (t *recordingTables) Draw(_ context.Context, table string) (TableDraw, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draws = append(t.draws, table)
	return TableDraw{Table: table, Roll: 7, Text: "row " + table}, nil
}

func (t *recordingTables) drawn() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.draws...)
}

// missingTables fails every draw as if the table did not exist.
type missingTables struct{}

func (missingTables) Draw(_ context.Context, table string) (TableDraw, error) {
	return TableDraw{}, lookupNotFound(table, errors.New("no such table"))
}

func sequentialIDs() func() (string, error) {
	var mu sync.Mutex
	next := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("id-%d", next), nil
	}
}

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type harness struct {
	svc      *Service
	store    *memoryStore
	roller   *faceRoller
	narrator *recordingNarrator
	tables   *recordingTables
	logs     *observer.ObservedLogs
}

func newHarness(t *testing.T, store *memoryStore, roller *faceRoller, mutate ...func(*Runtime)) *harness {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	h := &harness{
		store:    store,
		roller:   roller,
		narrator: &recordingNarrator{},
		tables:   &recordingTables{},
		logs:     logs,
	}
	rt := Runtime{
		Store:    store,
		Dice:     roller,
		Tables:   h.tables,
		Narrator: h.narrator,
		Settings: Settings{Enabled: true, Debug: true},
		Logger:   zap.New(core),
		Clock:    func() time.Time { return fixedNow },
		NewID:    sequentialIDs(),
	}
	for _, fn := range mutate {
		fn(&rt)
	}
	svc, err := NewService(rt, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(svc.Close)
	h.svc = svc
	return h
}

func cyberItem(id, name string, t domain.Type, installed bool) domain.Item {
	return domain.Item{
		ID:    id,
		Name:  name,
		Cyber: domain.Cyber{IsCyber: true, CyberType: t, Installed: installed, SlotCost: 1},
	}.Normalize()
}

func newActor(items ...domain.Item) domain.Actor {
	return domain.Actor{
		ID:     "actor-1",
		Name:   "Ripley",
		Stats:  domain.Stats{Strength: 30, Intellect: 30},
		Saves:  domain.Saves{Sanity: 30, Body: 40},
		Health: domain.Health{Value: 20, Max: 20},
		Stress: domain.Stress{Value: 3, Min: 2, Max: 20},
		Items:  items,
	}.Normalize()
}

func mustItem(t *testing.T, actor domain.Actor, itemID string) domain.Item {
	t.Helper()
	item, ok := actor.Item(itemID)
	if !ok {
		t.Fatalf("item %s not found", itemID)
	}
	return item
}

package app

import (
	"sync"
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
	"github.com/louisbranch/pound-of-flesh/internal/platform/timeouts"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
)

// Attempt is one in-flight installation.
type Attempt struct {
	ID           string
	ActorID      string
	ItemID       string
	ItemName     string
	Type         domain.Type
	StressChoice int
	Skill        string
	Mode         dice.Mode
	Step         Step
	SkillOptions []Option
}

// pendingRegistry holds at most one claim per actor. Workflow attempts and
// lifecycle operations share it so they never interleave on one actor.
// An attempt left waiting on an answer for longer than ttl is dropped the
// next time anyone touches it or its actor.
type pendingRegistry struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	byActor  map[string]string
	attempts map[string]*Attempt
	deadline map[string]time.Time
}

func newPendingRegistry(now func() time.Time) *pendingRegistry {
	if now == nil {
		now = time.Now
	}
	return &pendingRegistry{
		ttl:      timeouts.Prompt,
		now:      now,
		byActor:  map[string]string{},
		attempts: map[string]*Attempt{},
		deadline: map[string]time.Time{},
	}
}

// expireLocked drops attemptID when it sits on a prompt past its deadline.
// Rolling attempts never expire. Callers hold r.mu.
func (r *pendingRegistry) expireLocked(attemptID string) bool {
	attempt, ok := r.attempts[attemptID]
	if !ok || attempt.Step == stepRolling {
		return false
	}
	if r.now().Before(r.deadline[attemptID]) {
		return false
	}
	r.dropLocked(attemptID)
	return true
}

func (r *pendingRegistry) dropLocked(attemptID string) {
	attempt, ok := r.attempts[attemptID]
	if !ok {
		return
	}
	delete(r.attempts, attemptID)
	delete(r.deadline, attemptID)
	if r.byActor[attempt.ActorID] == attemptID {
		delete(r.byActor, attempt.ActorID)
	}
}

func pendingError(actorID string) error {
	return apperrors.WithMetadata(apperrors.CodeInstallationPending, "installation already pending", map[string]string{"Actor": actorID})
}

func unknownAttempt(attemptID string) error {
	return apperrors.WithMetadata(apperrors.CodeInstallationUnknown, "unknown installation attempt", map[string]string{"Attempt": attemptID})
}

// claim registers a new attempt for its actor. A stale claim on the same
// actor is dropped first.
func (r *pendingRegistry) claim(attempt Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, busy := r.byActor[attempt.ActorID]; busy && !r.expireLocked(current) {
		return pendingError(attempt.ActorID)
	}
	r.byActor[attempt.ActorID] = attempt.ID
	stored := attempt
	r.attempts[attempt.ID] = &stored
	r.deadline[attempt.ID] = r.now().Add(r.ttl)
	return nil
}

// lock claims the actor for a one-shot operation. The returned func
// releases it and is safe to call more than once.
func (r *pendingRegistry) lock(actorID, token string) (func(), error) {
	if err := r.claim(Attempt{ID: token, ActorID: actorID, Step: stepRolling}); err != nil {
		return nil, err
	}
	var once sync.Once
	return func() { once.Do(func() { r.release(token) }) }, nil
}

// advance mutates an attempt under the lock and returns a copy. Each
// answer pushes the deadline out again.
func (r *pendingRegistry) advance(attemptID string, mutate func(*Attempt) error) (Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.expireLocked(attemptID) {
		return Attempt{}, unknownAttempt(attemptID)
	}
	attempt, ok := r.attempts[attemptID]
	if !ok {
		return Attempt{}, unknownAttempt(attemptID)
	}
	r.deadline[attemptID] = r.now().Add(r.ttl)
	if err := mutate(attempt); err != nil {
		return *attempt, err
	}
	return *attempt, nil
}

// get returns a copy of an attempt.
func (r *pendingRegistry) get(attemptID string) (Attempt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.expireLocked(attemptID) {
		return Attempt{}, false
	}
	attempt, ok := r.attempts[attemptID]
	if !ok {
		return Attempt{}, false
	}
	return *attempt, true
}

// release clears an attempt and its actor claim. It reports whether the
// attempt was still registered.
func (r *pendingRegistry) release(attemptID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.attempts[attemptID]; !ok {
		return false
	}
	r.dropLocked(attemptID)
	return true
}

// pending reports whether the actor has a live claim.
func (r *pendingRegistry) pending(actorID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byActor[actorID]
	return ok && !r.expireLocked(current)
}

func (r *pendingRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attempts)
}

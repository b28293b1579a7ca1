package app

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
	"github.com/louisbranch/pound-of-flesh/internal/platform/timeouts"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	// ErrDisabled is returned by every mutation while cybermods are switched off.
	ErrDisabled = apperrors.New(apperrors.CodeCybermodsDisabled, "cybermods are disabled")
	// ErrInstallationCancelled is returned when the user dismisses a dialog step.
	ErrInstallationCancelled = apperrors.New(apperrors.CodeInstallationCancelled, "installation cancelled")
)

// Service runs cybermod workflows.
type Service struct {
	rt        Runtime
	pending   *pendingRegistry
	followUps *FollowUps
	ownsQueue bool
}

// NewService builds a service over rt. A nil followUps gets a private
// runner that Close stops.
func NewService(rt Runtime, followUps *FollowUps) (*Service, error) {
	if rt.Store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if rt.Dice == nil {
		return nil, fmt.Errorf("dice roller is required")
	}
	rt = rt.withDefaults()
	s := &Service{rt: rt, pending: newPendingRegistry(rt.Clock), followUps: followUps}
	if s.followUps == nil {
		s.followUps = NewFollowUps(rt.Logger)
		s.ownsQueue = true
	}
	return s, nil
}

// Close stops the private follow-up runner after draining it.
func (s *Service) Close() {
	if s == nil || !s.ownsQueue {
		return
	}
	s.followUps.Close()
}

// Flush waits for scheduled follow-ups.
func (s *Service) Flush() {
	if s == nil {
		return
	}
	s.followUps.Flush()
}

// Settings returns the effective settings.
func (s *Service) Settings() Settings {
	return s.rt.Settings
}

// Pending reports whether the actor has an attempt or operation in flight.
func (s *Service) Pending(actorID string) bool {
	return s.pending.pending(actorID)
}

func (s *Service) requireEnabled() error {
	if !s.rt.Settings.Enabled {
		return ErrDisabled
	}
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.rt.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
	}
	span.End()
}

func (s *Service) debug(msg string, fields ...zap.Field) {
	if s.rt.Settings.Debug {
		s.rt.Logger.Debug(msg, fields...)
	}
}

// Actor reads one actor document.
func (s *Service) Actor(ctx context.Context, actorID string) (domain.Actor, error) {
	return s.getActor(ctx, actorID)
}

// getActor reads an actor within the document-call timeout.
func (s *Service) getActor(ctx context.Context, actorID string) (domain.Actor, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeouts.DocumentCall)
	defer cancel()
	actor, err := s.rt.Store.GetActor(callCtx, actorID)
	if err != nil {
		return domain.Actor{}, readError("actor", actorID, err)
	}
	return actor.Normalize(), nil
}

func (s *Service) loadActorItem(ctx context.Context, actorID, itemID string) (domain.Actor, domain.Item, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return domain.Actor{}, domain.Item{}, err
	}
	item, ok := actor.Item(itemID)
	if !ok {
		return domain.Actor{}, domain.Item{}, apperrors.WithMetadata(apperrors.CodeNotFound, "item not found", map[string]string{"Item": itemID, "Actor": actorID})
	}
	return actor, item, nil
}

// commit writes one actor patch then one item patch. A failed item write
// reverts the actor patch so no half-applied outcome remains.
func (s *Service) commit(ctx context.Context, actor domain.Actor, itemID string, actorPatch domain.ActorPatch, itemPatch domain.ItemPatch) error {
	ctx, span := s.startSpan(ctx, "cybermod.commit", attribute.String("actor_id", actor.ID), attribute.String("item_id", itemID))
	var err error
	defer func() { endSpan(span, err) }()

	if !actorPatch.IsZero() {
		callCtx, cancel := context.WithTimeout(ctx, timeouts.DocumentCall)
		updateErr := s.rt.Store.UpdateActor(callCtx, actor.ID, actorPatch)
		cancel()
		if updateErr != nil {
			err = writeError("actor", actor.ID, updateErr)
			return err
		}
	}
	if itemPatch.IsZero() {
		return nil
	}
	callCtx, cancel := context.WithTimeout(ctx, timeouts.DocumentCall)
	updateErr := s.rt.Store.UpdateItem(callCtx, actor.ID, itemID, itemPatch)
	cancel()
	if updateErr == nil {
		return nil
	}
	if !actorPatch.IsZero() {
		revertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.DocumentCall)
		defer cancel()
		if revertErr := s.rt.Store.UpdateActor(revertCtx, actor.ID, actorPatch.Inverse(actor)); revertErr != nil {
			s.rt.Logger.Error("revert actor patch failed",
				zap.String("actor_id", actor.ID),
				zap.Error(revertErr),
			)
		}
	}
	err = writeError("item", itemID, updateErr)
	return err
}

func readError(kind, id string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.WrapWithMetadata(apperrors.CodeNotFound, kind+" not found", map[string]string{"ID": id}, err)
	}
	return apperrors.WrapWithMetadata(apperrors.CodeTransientIOFailure, "read "+kind, map[string]string{"ID": id}, err)
}

func writeError(kind, id string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperrors.WrapWithMetadata(apperrors.CodeTransientIOFailure, "update "+kind, map[string]string{"ID": id}, err)
}

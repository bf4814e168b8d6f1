package publish

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roach88/semreg/internal/reg"
	"github.com/roach88/semreg/internal/store"
)

// DriftChangeType is the classification applied to every drift successor.
// Hardcoding non-breaking is a deliberate simplification preserved from the
// original design; a caller-supplied classification is a known followup.
const DriftChangeType = reg.ChangeNonBreaking

// Publisher runs the skip/update/insert convergence algorithm against a
// snapshot store. One object is processed at a time; the only suspension
// points are the store round trips.
type Publisher struct {
	store *store.Store
	log   zerolog.Logger
}

// New returns a publisher writing through the given store.
func New(st *store.Store, log zerolog.Logger) *Publisher {
	return &Publisher{store: st, log: log}
}

// Publish idempotently registers one object: skip if the active snapshot's
// content hash matches, publish a successor if it drifted, insert a fresh
// chain if no active snapshot exists.
//
// rationale is attached to drift successors; when empty a generic drift
// message is used. setID may be nil (untagged write).
func (p *Publisher) Publish(ctx context.Context, objectType reg.ObjectType, fqn string, body any, createdBy string, setID *uuid.UUID, rationale string) (Outcome, error) {
	objectID := reg.ObjectIDFor(objectType, fqn)

	definition, err := reg.ToDefinition(body)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("publish %s %q: %w", objectType, fqn, err)
	}
	newHash, err := reg.DefinitionHash(definition)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("publish %s %q: %w", objectType, fqn, err)
	}

	existing, err := p.store.FindActiveByDefinitionField(ctx, objectType, "fqn", fqn)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("publish %s %q: %w", objectType, fqn, err)
	}

	if existing == nil {
		meta := reg.NewMeta(objectType, objectID, createdBy)
		if _, err := p.store.InsertSnapshot(ctx, meta, definition, setID); err != nil {
			return OutcomeSkipped, fmt.Errorf("publish %s %q: %w", objectType, fqn, err)
		}
		p.log.Debug().Str("object_type", string(objectType)).Str("fqn", fqn).Msg("published new snapshot")
		return OutcomePublished, nil
	}

	oldHash, err := reg.DefinitionHash(existing.Definition)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("publish %s %q: hash active snapshot: %w", objectType, fqn, err)
	}

	if oldHash == newHash {
		p.log.Debug().Str("object_type", string(objectType)).Str("fqn", fqn).Msg("unchanged, skipped")
		return OutcomeSkipped, nil
	}

	if rationale == "" {
		rationale = fmt.Sprintf("definition drift detected for %s", fqn)
	}
	meta := reg.SuccessorMeta(*existing, DriftChangeType, rationale, createdBy)
	if _, err := p.store.PublishSnapshot(ctx, meta, definition, setID); err != nil {
		return OutcomeSkipped, fmt.Errorf("publish %s %q: %w", objectType, fqn, err)
	}
	p.log.Debug().
		Str("object_type", string(objectType)).
		Str("fqn", fqn).
		Int64("version_minor", meta.VersionMinor).
		Msg("published drift successor")
	return OutcomeUpdated, nil
}

// Store exposes the underlying snapshot store for producers that need direct
// reads (e.g. view column merges).
func (p *Publisher) Store() *store.Store {
	return p.store
}

package onboarding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roach88/semreg/internal/publish"
	"github.com/roach88/semreg/internal/reg"
	"github.com/roach88/semreg/internal/store"
)

// Pipeline orchestrates the 6-phase entity type registration.
type Pipeline struct {
	store    *store.Store
	pub      *publish.Publisher
	defaults Defaults
	log      zerolog.Logger
}

// New returns a pipeline with the standard defaults strategy.
func New(st *store.Store, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		store:    st,
		pub:      publish.New(st, log),
		defaults: StandardDefaults{},
		log:      log,
	}
}

// WithDefaults replaces the default-generation strategy.
func (p *Pipeline) WithDefaults(d Defaults) *Pipeline {
	p.defaults = d
	return p
}

// Run executes the full pipeline. Validation runs first and fails the whole
// call, dry-run included. Phases then execute in fixed order; per-item
// failures accumulate on the phase counters while later phases still run.
// Store-level failures abort with no further phases.
func (p *Pipeline) Run(ctx context.Context, req *OnboardingRequest) (*OnboardingResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	result := &OnboardingResult{DryRun: req.DryRun}

	var setID *uuid.UUID
	if !req.DryRun {
		label := "onboarding:" + req.EntityType.FQN
		id, err := p.store.CreateSnapshotSet(ctx, label, req.createdBy())
		if err != nil {
			return nil, fmt.Errorf("onboarding: create snapshot set: %w", err)
		}
		setID = &id
		result.SnapshotSetID = &id
	}

	var err error
	if result.EntityTypeStep, err = p.stepEntityType(ctx, req, setID); err != nil {
		return nil, fmt.Errorf("onboarding: entity type phase: %w", err)
	}
	result.AttributesStep = p.stepAttributes(ctx, req, setID)
	result.VerbContractsStep = p.stepVerbContracts(ctx, req, setID)
	result.TaxonomyStep = p.stepTaxonomyPlacement(ctx, req, setID)
	if result.ViewsStep, err = p.stepViewAssignment(ctx, req, setID); err != nil {
		return nil, fmt.Errorf("onboarding: view phase: %w", err)
	}
	result.EvidenceStep = p.stepEvidenceRequirements(ctx, req, setID)

	return result, nil
}

// stepEntityType publishes the entity type definition itself. A failure here
// is fatal: every later phase hangs off this definition.
func (p *Pipeline) stepEntityType(ctx context.Context, req *OnboardingRequest, setID *uuid.UUID) (publish.StepResult, error) {
	var step publish.StepResult
	if req.DryRun {
		step.RecordPublish()
		return step, nil
	}
	outcome, err := p.pub.Publish(ctx, reg.ObjectEntityTypeDef, req.EntityType.FQN, req.EntityType, req.createdBy(), setID, "")
	if err != nil {
		return step, err
	}
	step.Record(outcome)
	return step, nil
}

func (p *Pipeline) stepAttributes(ctx context.Context, req *OnboardingRequest, setID *uuid.UUID) publish.StepResult {
	var step publish.StepResult

	attrs := req.Attributes
	if len(attrs) == 0 {
		attrs = p.defaults.AttributesFor(req.EntityType)
	}

	for _, attr := range attrs {
		if req.DryRun {
			step.RecordPublish()
			continue
		}
		outcome, err := p.pub.Publish(ctx, reg.ObjectAttributeDef, attr.FQN, attr, req.createdBy(), setID, "")
		if err != nil {
			step.RecordError(fmt.Sprintf("attribute %q: %v", attr.FQN, err))
			continue
		}
		step.Record(outcome)
	}
	return step
}

func (p *Pipeline) stepVerbContracts(ctx context.Context, req *OnboardingRequest, setID *uuid.UUID) publish.StepResult {
	var step publish.StepResult

	contracts := req.VerbContracts
	if len(contracts) == 0 {
		contracts = p.defaults.VerbContractsFor(req.EntityType)
	}

	for _, contract := range contracts {
		if req.DryRun {
			step.RecordPublish()
			continue
		}
		outcome, err := p.pub.Publish(ctx, reg.ObjectVerbContract, contract.FQN, contract, req.createdBy(), setID, "")
		if err != nil {
			step.RecordError(fmt.Sprintf("verb contract %q: %v", contract.FQN, err))
			continue
		}
		step.Record(outcome)
	}
	return step
}

func (p *Pipeline) stepTaxonomyPlacement(ctx context.Context, req *OnboardingRequest, setID *uuid.UUID) publish.StepResult {
	var step publish.StepResult

	taxonomyFQNs := req.TaxonomyFQNs
	if len(taxonomyFQNs) == 0 {
		taxonomyFQNs = p.defaults.TaxonomyFQNsFor(req.EntityType)
	}

	for _, taxonomyFQN := range taxonomyFQNs {
		rule := p.defaults.MembershipRuleFor(req.EntityType.FQN, taxonomyFQN)
		if req.DryRun {
			step.RecordPublish()
			continue
		}
		outcome, err := p.pub.Publish(ctx, reg.ObjectMembershipRule, rule.FQN, rule, req.createdBy(), setID, "")
		if err != nil {
			step.RecordError(fmt.Sprintf("membership rule %q: %v", rule.FQN, err))
			continue
		}
		step.Record(outcome)
	}
	return step
}

// stepViewAssignment merges this entity type's columns into each target
// view. Column identity is the attribute FQN: a column already present is
// never duplicated, so a re-run reports a skip instead of another update.
// A missing view is a soft error, not a failure.
func (p *Pipeline) stepViewAssignment(ctx context.Context, req *OnboardingRequest, setID *uuid.UUID) (publish.StepResult, error) {
	var step publish.StepResult

	viewFQNs := req.ViewFQNs
	if len(viewFQNs) == 0 {
		viewFQNs = p.defaults.ViewFQNsFor(req.EntityType)
	}
	if len(viewFQNs) == 0 {
		return step, nil
	}

	if req.DryRun {
		step.Published = len(viewFQNs)
		return step, nil
	}

	for _, viewFQN := range viewFQNs {
		existing, err := p.store.FindActiveByDefinitionField(ctx, reg.ObjectViewDef, "fqn", viewFQN)
		if err != nil {
			return step, err
		}
		if existing == nil {
			step.RecordError(fmt.Sprintf("view %q not found, skipped column merge", viewFQN))
			continue
		}

		var view reg.ViewDefBody
		if err := existing.DecodeDefinition(&view); err != nil {
			step.RecordError(fmt.Sprintf("view %q: %v", viewFQN, err))
			continue
		}

		changed := false
		for _, col := range p.defaults.ColumnsFor(req.EntityType, viewFQN) {
			if !hasColumn(view.Columns, col.AttributeFQN) {
				view.Columns = append(view.Columns, col)
				changed = true
			}
		}

		if !changed {
			step.RecordSkip()
			continue
		}

		definition, err := reg.ToDefinition(view)
		if err != nil {
			step.RecordError(fmt.Sprintf("view %q: %v", viewFQN, err))
			continue
		}
		rationale := fmt.Sprintf("added columns for %s", req.EntityType.FQN)
		meta := reg.SuccessorMeta(*existing, reg.ChangeNonBreaking, rationale, req.createdBy())
		if _, err := p.store.PublishSnapshot(ctx, meta, definition, setID); err != nil {
			return step, err
		}
		step.RecordUpdate()
		p.log.Debug().Str("view", viewFQN).Str("entity_type", req.EntityType.FQN).Msg("merged view columns")
	}

	return step, nil
}

func (p *Pipeline) stepEvidenceRequirements(ctx context.Context, req *OnboardingRequest, setID *uuid.UUID) publish.StepResult {
	var step publish.StepResult

	for _, ev := range req.EvidenceRequirements {
		if req.DryRun {
			step.RecordPublish()
			continue
		}
		outcome, err := p.pub.Publish(ctx, reg.ObjectEvidenceRequirement, ev.FQN, ev, req.createdBy(), setID, "")
		if err != nil {
			step.RecordError(fmt.Sprintf("evidence requirement %q: %v", ev.FQN, err))
			continue
		}
		step.Record(outcome)
	}
	return step
}

func hasColumn(cols []reg.ViewColumn, attributeFQN string) bool {
	for _, c := range cols {
		if c.AttributeFQN == attributeFQN {
			return true
		}
	}
	return false
}

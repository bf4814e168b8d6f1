package scanner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/semreg/internal/publish"
	"github.com/roach88/semreg/internal/reg"
)

// SeedParams carries the per-run settings shared by every seeder.
type SeedParams struct {
	SetID     *uuid.UUID
	CreatedBy string
	DryRun    bool
}

// Seeder publishes one baseline collection into the registry. Seeders are
// idempotent: re-running against an unchanged store reports only skips.
// In dry-run the seeder must not touch the store and reports its catalog
// size as the would-be published count.
type Seeder interface {
	// Name identifies the seeder in logs.
	Name() string
	// Seed publishes the seeder's catalog and returns per-category counters.
	Seed(ctx context.Context, pub *publish.Publisher, params SeedParams) (map[Category]publish.StepResult, error)
}

// DefaultSeeders returns the baseline seeding phases in execution order.
func DefaultSeeders() []Seeder {
	return []Seeder{
		&TaxonomySeeder{},
		&ViewSeeder{},
		&PolicySeeder{},
		&DerivationSeeder{},
	}
}

// seedBodies runs the shared per-item loop: publish each body, count the
// outcome, accumulate per-item failures without aborting the collection.
func seedBodies[T any](ctx context.Context, pub *publish.Publisher, params SeedParams, objectType reg.ObjectType, items []T, fqnOf func(T) string) (publish.StepResult, error) {
	var step publish.StepResult
	if params.DryRun {
		step.Published = len(items)
		return step, nil
	}
	for _, item := range items {
		fqn := fqnOf(item)
		outcome, err := pub.Publish(ctx, objectType, fqn, item, params.CreatedBy, params.SetID, "")
		if err != nil {
			step.RecordError(fmt.Sprintf("%s %q: %v", objectType, fqn, err))
			continue
		}
		step.Record(outcome)
	}
	return step, nil
}

// TaxonomySeeder publishes the baseline classification taxonomies and their
// nodes.
type TaxonomySeeder struct{}

func (s *TaxonomySeeder) Name() string { return "taxonomies" }

func (s *TaxonomySeeder) Seed(ctx context.Context, pub *publish.Publisher, params SeedParams) (map[Category]publish.StepResult, error) {
	taxonomies := []reg.TaxonomyBody{
		{
			FQN:         "taxonomy.client-classification",
			Name:        "Client Classification",
			Description: "Classifies client entities by business relationship",
			Domain:      "client",
		},
		{
			FQN:         "taxonomy.risk-rating",
			Name:        "Risk Rating",
			Description: "Risk tiers applied to clients and counterparties",
			Domain:      "risk",
		},
		{
			FQN:         "taxonomy.document-kind",
			Name:        "Document Kind",
			Description: "Kinds of documentary evidence collected during onboarding",
			Domain:      "evidence",
		},
	}

	nodes := []reg.TaxonomyNodeBody{
		{FQN: "taxonomy.client-classification.prospect", TaxonomyFQN: "taxonomy.client-classification", Name: "Prospect"},
		{FQN: "taxonomy.client-classification.active", TaxonomyFQN: "taxonomy.client-classification", Name: "Active"},
		{FQN: "taxonomy.client-classification.dormant", TaxonomyFQN: "taxonomy.client-classification", Name: "Dormant"},
		{FQN: "taxonomy.risk-rating.low", TaxonomyFQN: "taxonomy.risk-rating", Name: "Low"},
		{FQN: "taxonomy.risk-rating.medium", TaxonomyFQN: "taxonomy.risk-rating", Name: "Medium"},
		{FQN: "taxonomy.risk-rating.high", TaxonomyFQN: "taxonomy.risk-rating", Name: "High"},
		{FQN: "taxonomy.document-kind.identity", TaxonomyFQN: "taxonomy.document-kind", Name: "Identity"},
		{FQN: "taxonomy.document-kind.registration", TaxonomyFQN: "taxonomy.document-kind", Name: "Registration"},
		{FQN: "taxonomy.document-kind.ownership", TaxonomyFQN: "taxonomy.document-kind", Name: "Ownership"},
	}

	taxStep, err := seedBodies(ctx, pub, params, reg.ObjectTaxonomy, taxonomies,
		func(b reg.TaxonomyBody) string { return b.FQN })
	if err != nil {
		return nil, err
	}
	nodeStep, err := seedBodies(ctx, pub, params, reg.ObjectTaxonomyNode, nodes,
		func(b reg.TaxonomyNodeBody) string { return b.FQN })
	if err != nil {
		return nil, err
	}

	return map[Category]publish.StepResult{
		CategoryTaxonomies:    taxStep,
		CategoryTaxonomyNodes: nodeStep,
	}, nil
}

// ViewSeeder publishes the standard view shells. Views start with a minimal
// column set; the onboarding pipeline merges per-entity columns in later.
type ViewSeeder struct{}

func (s *ViewSeeder) Name() string { return "views" }

func (s *ViewSeeder) Seed(ctx context.Context, pub *publish.Publisher, params SeedParams) (map[Category]publish.StepResult, error) {
	views := []reg.ViewDefBody{
		{
			FQN:         "view.client-overview",
			Name:        "Client Overview",
			Description: "One row per client with identity and lifecycle columns",
			Domain:      "client",
		},
		{
			FQN:         "view.screening-queue",
			Name:        "Screening Queue",
			Description: "Entities awaiting screening review",
			Domain:      "screening",
		},
		{
			FQN:         "view.evidence-checklist",
			Name:        "Evidence Checklist",
			Description: "Required evidence per entity with collection status",
			Domain:      "evidence",
		},
	}

	step, err := seedBodies(ctx, pub, params, reg.ObjectViewDef, views,
		func(b reg.ViewDefBody) string { return b.FQN })
	if err != nil {
		return nil, err
	}
	return map[Category]publish.StepResult{CategoryViews: step}, nil
}

// PolicySeeder publishes the baseline access policies matching the security
// label heuristic: masked PII, locked-down sanctions data, confidential
// financials.
type PolicySeeder struct{}

func (s *PolicySeeder) Name() string { return "policies" }

func (s *PolicySeeder) Seed(ctx context.Context, pub *publish.Publisher, params SeedParams) (map[Category]publish.StepResult, error) {
	policies := []reg.AccessPolicyBody{
		{
			FQN:              "policy.pii-masking",
			Name:             "PII Masking",
			Description:      "Personal data is masked by default outside operations and audit",
			AppliesTo:        []string{string(reg.ObjectAttributeDef)},
			Classification:   reg.ClassificationConfidential,
			HandlingControls: []string{reg.HandlingMaskByDefault},
		},
		{
			FQN:              "policy.sanctions-lockdown",
			Name:             "Sanctions Lockdown",
			Description:      "Screening and sanctions data never leaves the operations boundary",
			AppliesTo:        []string{string(reg.ObjectAttributeDef), string(reg.ObjectViewDef)},
			Classification:   reg.ClassificationRestricted,
			HandlingControls: []string{reg.HandlingNoExport, reg.HandlingNoLLMExternal},
		},
		{
			FQN:              "policy.financial-confidentiality",
			Name:             "Financial Confidentiality",
			Description:      "Commercial terms are confidential and excluded from external model calls",
			AppliesTo:        []string{string(reg.ObjectAttributeDef)},
			Classification:   reg.ClassificationConfidential,
			HandlingControls: []string{reg.HandlingNoLLMExternal},
		},
	}

	step, err := seedBodies(ctx, pub, params, reg.ObjectAccessPolicy, policies,
		func(b reg.AccessPolicyBody) string { return b.FQN })
	if err != nil {
		return nil, err
	}
	return map[Category]publish.StepResult{CategoryPolicies: step}, nil
}

// DerivationSeeder publishes the baseline derived-attribute specs.
type DerivationSeeder struct{}

func (s *DerivationSeeder) Name() string { return "derivation_specs" }

func (s *DerivationSeeder) Seed(ctx context.Context, pub *publish.Publisher, params SeedParams) (map[Category]publish.StepResult, error) {
	specs := []reg.DerivationSpecBody{
		{
			FQN:             "derivation.client-risk-score",
			Name:            "Client Risk Score",
			Description:     "Composite risk score from jurisdiction and screening outcomes",
			OutputAttribute: "risk.score",
			InputAttributes: []string{"client.jurisdiction", "screening.check_result"},
			Expression:      "weighted_sum(jurisdiction_weight, screening_weight)",
		},
		{
			FQN:             "derivation.evidence-completeness",
			Name:            "Evidence Completeness",
			Description:     "Fraction of mandatory evidence collected for an entity",
			OutputAttribute: "evidence.completeness",
			InputAttributes: []string{"evidence.collected_count", "evidence.required_count"},
			Expression:      "collected_count / required_count",
		},
	}

	step, err := seedBodies(ctx, pub, params, reg.ObjectDerivationSpec, specs,
		func(b reg.DerivationSpecBody) string { return b.FQN })
	if err != nil {
		return nil, err
	}
	return map[Category]publish.StepResult{CategoryDerivationSpecs: step}, nil
}

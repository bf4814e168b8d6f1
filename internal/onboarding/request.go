package onboarding

import "github.com/roach88/semreg/internal/reg"

// DefaultCreatedBy is the attribution recorded on pipeline-written snapshots
// when the request does not set one.
const DefaultCreatedBy = "onboarding_pipeline"

// OnboardingRequest describes one entity type to register. Only EntityType
// is required; empty collections fall back to generated defaults.
type OnboardingRequest struct {
	// EntityType must carry at least fqn, name, and domain.
	EntityType reg.EntityTypeDefBody `json:"entity_type"`

	// Attributes belonging to this entity type. Empty means defaults
	// generated from the entity type's required/optional attribute names.
	Attributes []reg.AttributeDefBody `json:"attributes,omitempty"`

	// VerbContracts for this entity type. Empty means standard CRUD
	// contracts are generated.
	VerbContracts []reg.VerbContractBody `json:"verb_contracts,omitempty"`

	// TaxonomyFQNs to place the entity type into. Empty means domain-based
	// defaults.
	TaxonomyFQNs []string `json:"taxonomy_fqns,omitempty"`

	// ViewFQNs whose column lists should absorb this entity type's
	// attributes. Empty means domain-based defaults.
	ViewFQNs []string `json:"view_fqns,omitempty"`

	// EvidenceRequirements to register. Empty means none are created.
	EvidenceRequirements []reg.EvidenceRequirementBody `json:"evidence_requirements,omitempty"`

	// DryRun reports what would happen without any store access.
	DryRun bool `json:"dry_run,omitempty"`

	// CreatedBy is the attribution on all written snapshots. Empty means
	// "onboarding_pipeline".
	CreatedBy string `json:"created_by,omitempty"`
}

func (r *OnboardingRequest) createdBy() string {
	if r.CreatedBy == "" {
		return DefaultCreatedBy
	}
	return r.CreatedBy
}

package onboarding

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/semreg/internal/publish"
)

// OnboardingResult aggregates the per-phase counters of one pipeline run.
type OnboardingResult struct {
	EntityTypeStep    publish.StepResult `json:"entity_type_step"`
	AttributesStep    publish.StepResult `json:"attributes_step"`
	VerbContractsStep publish.StepResult `json:"verb_contracts_step"`
	TaxonomyStep      publish.StepResult `json:"taxonomy_step"`
	ViewsStep         publish.StepResult `json:"views_step"`
	EvidenceStep      publish.StepResult `json:"evidence_step"`

	// SnapshotSetID groups all snapshots written by this run. Nil in
	// dry-run mode.
	SnapshotSetID *uuid.UUID `json:"snapshot_set_id,omitempty"`

	DryRun bool `json:"dry_run"`
}

// phases returns the steps in execution order with their display labels.
func (r *OnboardingResult) phases() []struct {
	label string
	step  *publish.StepResult
} {
	return []struct {
		label string
		step  *publish.StepResult
	}{
		{"Entity type", &r.EntityTypeStep},
		{"Attributes", &r.AttributesStep},
		{"Verb contracts", &r.VerbContractsStep},
		{"Taxonomy", &r.TaxonomyStep},
		{"Views", &r.ViewsStep},
		{"Evidence", &r.EvidenceStep},
	}
}

// TotalPublished sums fresh inserts across all phases.
func (r *OnboardingResult) TotalPublished() int {
	total := 0
	for _, p := range r.phases() {
		total += p.step.Published
	}
	return total
}

// TotalSkipped sums unchanged items across all phases.
func (r *OnboardingResult) TotalSkipped() int {
	total := 0
	for _, p := range r.phases() {
		total += p.step.Skipped
	}
	return total
}

// TotalUpdated sums drift successors across all phases.
func (r *OnboardingResult) TotalUpdated() int {
	total := 0
	for _, p := range r.phases() {
		total += p.step.Updated
	}
	return total
}

// AllErrors flattens every phase's per-item errors, prefixed by phase label.
func (r *OnboardingResult) AllErrors() []string {
	var out []string
	for _, p := range r.phases() {
		for _, e := range p.step.Errors {
			out = append(out, fmt.Sprintf("%s: %s", p.label, e))
		}
	}
	return out
}

// String renders the multi-line pipeline report.
func (r *OnboardingResult) String() string {
	var b strings.Builder
	if r.DryRun {
		b.WriteString("Onboarding Pipeline Result (dry run)\n")
	} else {
		b.WriteString("Onboarding Pipeline Result\n")
	}
	for _, p := range r.phases() {
		fmt.Fprintf(&b, "  %-16s %d published, %d skipped, %d updated\n",
			p.label+":", p.step.Published, p.step.Skipped, p.step.Updated)
	}
	fmt.Fprintf(&b, "  %-16s %d published, %d skipped, %d updated",
		"Total:", r.TotalPublished(), r.TotalSkipped(), r.TotalUpdated())
	if errs := r.AllErrors(); len(errs) > 0 {
		fmt.Fprintf(&b, "\n  Errors (%d):", len(errs))
		for i, e := range errs {
			fmt.Fprintf(&b, "\n    %d. %s", i+1, e)
		}
	}
	return b.String()
}

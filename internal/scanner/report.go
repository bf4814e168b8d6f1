package scanner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/semreg/internal/publish"
)

// Category names one synced collection in a scan report.
type Category string

const (
	CategoryVerbContracts   Category = "verb_contracts"
	CategoryEntityTypes     Category = "entity_types"
	CategoryAttributes      Category = "attributes"
	CategoryTaxonomies      Category = "taxonomies"
	CategoryTaxonomyNodes   Category = "taxonomy_nodes"
	CategoryViews           Category = "views"
	CategoryPolicies        Category = "policies"
	CategoryDerivationSpecs Category = "derivation_specs"
)

// reportOrder fixes the rendering order of categories.
var reportOrder = []Category{
	CategoryVerbContracts,
	CategoryEntityTypes,
	CategoryAttributes,
	CategoryTaxonomies,
	CategoryTaxonomyNodes,
	CategoryViews,
	CategoryPolicies,
	CategoryDerivationSpecs,
}

// categoryLabels are the human-readable row labels of the textual report.
var categoryLabels = map[Category]string{
	CategoryVerbContracts:   "Verb contracts",
	CategoryEntityTypes:     "Entity types",
	CategoryAttributes:      "Attributes",
	CategoryTaxonomies:      "Taxonomies",
	CategoryTaxonomyNodes:   "Taxonomy nodes",
	CategoryViews:           "Views",
	CategoryPolicies:        "Policies",
	CategoryDerivationSpecs: "Derivation specs",
}

// ScanReport summarizes one scan run: per-category publish counters, the
// snapshot set tagging the run's writes (nil in dry-run), and any per-item
// errors accumulated across categories.
type ScanReport struct {
	VerbContracts   publish.StepResult `json:"verb_contracts"`
	EntityTypes     publish.StepResult `json:"entity_types"`
	Attributes      publish.StepResult `json:"attributes"`
	Taxonomies      publish.StepResult `json:"taxonomies"`
	TaxonomyNodes   publish.StepResult `json:"taxonomy_nodes"`
	Views           publish.StepResult `json:"views"`
	Policies        publish.StepResult `json:"policies"`
	DerivationSpecs publish.StepResult `json:"derivation_specs"`

	SnapshotSetID *uuid.UUID `json:"snapshot_set_id,omitempty"`
	DryRun        bool       `json:"dry_run"`
}

// result returns the counter slot for a category.
func (r *ScanReport) result(c Category) *publish.StepResult {
	switch c {
	case CategoryVerbContracts:
		return &r.VerbContracts
	case CategoryEntityTypes:
		return &r.EntityTypes
	case CategoryAttributes:
		return &r.Attributes
	case CategoryTaxonomies:
		return &r.Taxonomies
	case CategoryTaxonomyNodes:
		return &r.TaxonomyNodes
	case CategoryViews:
		return &r.Views
	case CategoryPolicies:
		return &r.Policies
	case CategoryDerivationSpecs:
		return &r.DerivationSpecs
	default:
		panic(fmt.Sprintf("unknown scan category %q", c))
	}
}

// merge folds per-category seeder counters into the report.
func (r *ScanReport) merge(results map[Category]publish.StepResult) {
	for c, step := range results {
		slot := r.result(c)
		slot.Published += step.Published
		slot.Skipped += step.Skipped
		slot.Updated += step.Updated
		slot.Errors = append(slot.Errors, step.Errors...)
	}
}

// TotalPublished sums new snapshots across every category.
func (r *ScanReport) TotalPublished() int {
	total := 0
	for _, c := range reportOrder {
		total += r.result(c).Published
	}
	return total
}

// Errors flattens every category's per-item errors, prefixed by category.
func (r *ScanReport) Errors() []string {
	var out []string
	for _, c := range reportOrder {
		for _, e := range r.result(c).Errors {
			out = append(out, fmt.Sprintf("%s: %s", c, e))
		}
	}
	return out
}

// String renders the multi-line report.
func (r *ScanReport) String() string {
	var b strings.Builder
	if r.DryRun {
		b.WriteString("Scan Report (dry run):\n")
	} else {
		b.WriteString("Scan Report:\n")
	}
	for _, c := range reportOrder {
		step := r.result(c)
		fmt.Fprintf(&b, "  %-17s %d published, %d skipped, %d updated\n",
			categoryLabels[c]+":", step.Published, step.Skipped, step.Updated)
	}
	fmt.Fprintf(&b, "  Total new snapshots: %d", r.TotalPublished())
	if errs := r.Errors(); len(errs) > 0 {
		fmt.Fprintf(&b, "\n  Errors: %d", len(errs))
		for _, e := range errs {
			fmt.Fprintf(&b, "\n    - %s", e)
		}
	}
	return b.String()
}

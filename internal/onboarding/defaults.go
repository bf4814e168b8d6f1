package onboarding

import (
	"fmt"
	"strings"

	"github.com/roach88/semreg/internal/reg"
)

// Defaults generates the fallback collections used when a request leaves
// them empty. The rules are business-domain knowledge, so the strategy is
// pluggable rather than inlined in the pipeline.
type Defaults interface {
	// AttributesFor generates attribute definitions for an entity type.
	AttributesFor(et reg.EntityTypeDefBody) []reg.AttributeDefBody
	// VerbContractsFor generates the standard verb contracts.
	VerbContractsFor(et reg.EntityTypeDefBody) []reg.VerbContractBody
	// TaxonomyFQNsFor derives the taxonomies the entity type belongs in.
	TaxonomyFQNsFor(et reg.EntityTypeDefBody) []string
	// ViewFQNsFor derives the views that should list the entity type.
	ViewFQNsFor(et reg.EntityTypeDefBody) []string
	// MembershipRuleFor synthesizes the rule placing an entity type in a
	// taxonomy.
	MembershipRuleFor(entityFQN, taxonomyFQN string) reg.MembershipRuleBody
	// ColumnsFor computes the view columns an entity type contributes.
	ColumnsFor(et reg.EntityTypeDefBody, viewFQN string) []reg.ViewColumn
}

// StandardDefaults is the stock strategy: attributes from the entity type's
// declared attribute names (with a name/status baseline when none are
// declared), CRUD verb contracts, and domain-derived taxonomy and view FQNs.
type StandardDefaults struct{}

var _ Defaults = StandardDefaults{}

// baselineAttributeNames is the fallback when the entity type declares no
// required or optional attributes.
var baselineAttributeNames = []string{"name", "status"}

// attributeNames returns the declared attribute names, required first.
func (StandardDefaults) attributeNames(et reg.EntityTypeDefBody) []string {
	names := make([]string, 0, len(et.RequiredAttributes)+len(et.OptionalAttributes))
	names = append(names, et.RequiredAttributes...)
	names = append(names, et.OptionalAttributes...)
	if len(names) == 0 {
		names = append(names, baselineAttributeNames...)
	}
	return names
}

func (d StandardDefaults) AttributesFor(et reg.EntityTypeDefBody) []reg.AttributeDefBody {
	names := d.attributeNames(et)
	attrs := make([]reg.AttributeDefBody, 0, len(names))
	for _, name := range names {
		label := reg.DefaultSecurityLabel()
		attrs = append(attrs, reg.AttributeDefBody{
			FQN:           et.FQN + "." + name,
			Name:          displayName(name),
			Description:   fmt.Sprintf("Attribute %s of %s", name, et.FQN),
			Domain:        et.Domain,
			DataType:      "string",
			SecurityLabel: &label,
		})
	}
	return attrs
}

func (d StandardDefaults) VerbContractsFor(et reg.EntityTypeDefBody) []reg.VerbContractBody {
	short := shortName(et.FQN)
	idArg := reg.VerbArgDef{Name: "id", ArgType: "uuid", Required: true}

	var attrArgs []reg.VerbArgDef
	required := map[string]bool{}
	for _, name := range et.RequiredAttributes {
		required[name] = true
	}
	for _, name := range d.attributeNames(et) {
		attrArgs = append(attrArgs, reg.VerbArgDef{
			Name:     name,
			ArgType:  "string",
			Required: required[name],
		})
	}

	crud := func(action string, args []reg.VerbArgDef) reg.VerbContractBody {
		return reg.VerbContractBody{
			FQN:         fmt.Sprintf("%s.%s-%s", et.Domain, action, short),
			Domain:      et.Domain,
			Action:      fmt.Sprintf("%s-%s", action, short),
			Description: fmt.Sprintf("%s %s", displayName(action), et.Name),
			Behavior:    "crud",
			Args:        args,
		}
	}

	create := crud("create", attrArgs)
	create.Produces = &reg.VerbProducesSpec{EntityType: et.FQN, Resolved: true}
	get := crud("get", []reg.VerbArgDef{idArg})
	get.Returns = &reg.VerbReturnSpec{ReturnType: "record"}
	update := crud("update", append([]reg.VerbArgDef{idArg}, attrArgs...))
	del := crud("delete", []reg.VerbArgDef{idArg})

	return []reg.VerbContractBody{create, get, update, del}
}

func (StandardDefaults) TaxonomyFQNsFor(et reg.EntityTypeDefBody) []string {
	return []string{"taxonomy." + et.Domain}
}

func (StandardDefaults) ViewFQNsFor(et reg.EntityTypeDefBody) []string {
	return []string{"view." + et.Domain + "-overview"}
}

func (StandardDefaults) MembershipRuleFor(entityFQN, taxonomyFQN string) reg.MembershipRuleBody {
	return reg.MembershipRuleBody{
		FQN:           fmt.Sprintf("membership.%s--%s", dashed(taxonomyFQN), dashed(entityFQN)),
		TaxonomyFQN:   taxonomyFQN,
		EntityTypeFQN: entityFQN,
		Predicate:     fmt.Sprintf("entity_type == %q", entityFQN),
		Description:   fmt.Sprintf("Places %s in %s", entityFQN, taxonomyFQN),
	}
}

func (d StandardDefaults) ColumnsFor(et reg.EntityTypeDefBody, viewFQN string) []reg.ViewColumn {
	names := d.attributeNames(et)
	cols := make([]reg.ViewColumn, 0, len(names))
	for _, name := range names {
		cols = append(cols, reg.ViewColumn{
			AttributeFQN:  et.FQN + "." + name,
			Label:         displayName(name),
			EntityTypeFQN: et.FQN,
		})
	}
	return cols
}

// shortName returns the segment after the last dot of an FQN.
func shortName(fqn string) string {
	if i := strings.LastIndex(fqn, "."); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// dashed flattens an FQN for embedding inside another FQN segment.
func dashed(fqn string) string {
	return strings.ReplaceAll(fqn, ".", "-")
}

// displayName turns "date_of_birth" or "test-widget" into a spaced title.
func displayName(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

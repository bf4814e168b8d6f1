package scanner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/semreg/internal/reg"
)

// ContractFromVerb converts one authored verb into a contract body. The
// conversion is pure: FQN is "<domain>.<action>", lifecycle constraints fold
// into preconditions, and lookup entity types default to the lookup table.
func ContractFromVerb(domain, action string, cfg VerbConfig) reg.VerbContractBody {
	fqn := domain + "." + action

	args := make([]reg.VerbArgDef, 0, len(cfg.Args))
	for _, a := range cfg.Args {
		arg := reg.VerbArgDef{
			Name:        a.Name,
			ArgType:     a.Type,
			Required:    a.Required,
			Description: a.Description,
			ValidValues: a.ValidValues,
			Default:     a.Default,
		}
		if a.Lookup != nil {
			entityType := a.Lookup.EntityType
			if entityType == "" {
				entityType = a.Lookup.Table
			}
			arg.Lookup = &reg.VerbArgLookup{
				Table:      a.Lookup.Table,
				EntityType: entityType,
				Schema:     a.Lookup.Schema,
				SearchKey:  a.Lookup.SearchKey,
				PrimaryKey: a.Lookup.PrimaryKey,
			}
		}
		args = append(args, arg)
	}

	var returns *reg.VerbReturnSpec
	if cfg.Returns != nil {
		returns = &reg.VerbReturnSpec{ReturnType: cfg.Returns.Type}
	}

	var produces *reg.VerbProducesSpec
	if cfg.Produces != nil {
		produces = &reg.VerbProducesSpec{
			EntityType: cfg.Produces.Type,
			Resolved:   cfg.Produces.Resolved,
		}
	}

	var consumes []string
	for _, c := range cfg.Consumes {
		consumes = append(consumes, c.Type)
	}

	var preconditions []reg.VerbPrecondition
	if cfg.Lifecycle != nil {
		for _, state := range cfg.Lifecycle.RequiresStates {
			preconditions = append(preconditions, reg.VerbPrecondition{
				Kind:  "requires_state",
				Value: state,
			})
		}
		for _, check := range cfg.Lifecycle.PreconditionChecks {
			preconditions = append(preconditions, reg.VerbPrecondition{
				Kind:  "precondition_check",
				Value: check,
			})
		}
	}

	var tags []string
	if cfg.Metadata != nil {
		tags = cfg.Metadata.Tags
	}

	return reg.VerbContractBody{
		FQN:               fqn,
		Domain:            domain,
		Action:            action,
		Description:       cfg.Description,
		Behavior:          cfg.Behavior,
		Args:              args,
		Returns:           returns,
		Preconditions:     preconditions,
		Produces:          produces,
		Consumes:          consumes,
		InvocationPhrases: cfg.InvocationPhrases,
		Tags:              tags,
	}
}

// Contracts derives every verb contract in the configuration, sorted by FQN
// so scan output is stable across runs.
func Contracts(cfg VerbsConfig) []reg.VerbContractBody {
	var contracts []reg.VerbContractBody
	for domain, dc := range cfg.Domains {
		for action, vc := range dc.Verbs {
			contracts = append(contracts, ContractFromVerb(domain, action, vc))
		}
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i].FQN < contracts[j].FQN })
	return contracts
}

// InferEntityTypes derives entity type definitions from verb argument lookup
// configurations. One entity type per distinct "<domain>.<entity>" key; the
// first lookup encountered wins (map iteration order does not matter because
// duplicates describe the same table).
func InferEntityTypes(cfg VerbsConfig) []reg.EntityTypeDefBody {
	seen := map[string]reg.EntityTypeDefBody{}

	for domain, dc := range cfg.Domains {
		for _, vc := range dc.Verbs {
			for _, arg := range vc.Args {
				if arg.Lookup == nil {
					continue
				}
				entityType := arg.Lookup.EntityType
				if entityType == "" {
					entityType = arg.Lookup.Table
				}
				key := domain + "." + entityType
				if _, ok := seen[key]; ok {
					continue
				}
				schema := arg.Lookup.Schema
				if schema == "" {
					schema = "public"
				}
				seen[key] = reg.EntityTypeDefBody{
					FQN:         key,
					Name:        titleCase(entityType),
					Description: fmt.Sprintf("Entity type inferred from %s.%s lookup", domain, entityType),
					Domain:      domain,
					DBTable: &reg.DBTableMapping{
						Schema:     schema,
						Table:      arg.Lookup.Table,
						PrimaryKey: arg.Lookup.PrimaryKey,
						NameColumn: arg.Lookup.SearchKey,
					},
				}
			}
		}
	}

	return sortedBodies(seen, func(b reg.EntityTypeDefBody) string { return b.FQN })
}

// InferAttributes derives attribute definitions from verb arguments. One
// attribute per distinct "<domain>.<arg>" FQN; each carries a suggested
// security label from the classification heuristic.
func InferAttributes(cfg VerbsConfig) []reg.AttributeDefBody {
	seen := map[string]reg.AttributeDefBody{}

	for domain, dc := range cfg.Domains {
		for action, vc := range dc.Verbs {
			var tags []string
			if vc.Metadata != nil {
				tags = vc.Metadata.Tags
			}
			for _, arg := range vc.Args {
				fqn := domain + "." + arg.Name
				if _, ok := seen[fqn]; ok {
					continue
				}
				description := arg.Description
				if description == "" {
					description = fmt.Sprintf("Attribute inferred from %s.%s arg %q", domain, action, arg.Name)
				}
				dataType, enumValues := attributeDataType(arg)
				label := SuggestSecurityLabel(fqn, domain, tags)
				seen[fqn] = reg.AttributeDefBody{
					FQN:         fqn,
					Name:        titleCase(arg.Name),
					Description: description,
					Domain:      domain,
					DataType:    dataType,
					EnumValues:  enumValues,
					Source: &reg.AttributeSource{
						ProducingVerb: domain + "." + action,
						Column:        arg.MapsTo,
					},
					SecurityLabel: &label,
				}
			}
		}
	}

	return sortedBodies(seen, func(b reg.AttributeDefBody) string { return b.FQN })
}

func sortedBodies[T any](m map[string]T, key func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

// titleCase turns "client-business-unit" or "hello_world" into
// "Client Business Unit" / "Hello World".
func titleCase(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// attributeDataType maps an authored argument type to an attribute data type.
// Unknown types with valid_values become enums; otherwise string.
func attributeDataType(arg ArgConfig) (string, []string) {
	switch strings.ToLower(arg.Type) {
	case "string":
		return "string", nil
	case "integer", "int":
		return "integer", nil
	case "decimal", "number", "float":
		return "decimal", nil
	case "boolean", "bool":
		return "boolean", nil
	case "uuid":
		return "uuid", nil
	case "date":
		return "date", nil
	case "timestamp":
		return "timestamp", nil
	default:
		if len(arg.ValidValues) > 0 {
			return "enum", arg.ValidValues
		}
		return "string", nil
	}
}

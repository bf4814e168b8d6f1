package reg

// Definition bodies: one typed struct per ObjectType. The publisher accepts
// any of these and canonicalizes through JSON, so producers never pass
// parallel untyped payloads. Every body carries an FQN - the human-readable
// stable name of the object within its type's namespace.

// EntityTypeDefBody defines a business entity type.
type EntityTypeDefBody struct {
	FQN                string          `json:"fqn"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Domain             string          `json:"domain"`
	DBTable            *DBTableMapping `json:"db_table,omitempty"`
	LifecycleStates    []string        `json:"lifecycle_states,omitempty"`
	RequiredAttributes []string        `json:"required_attributes,omitempty"`
	OptionalAttributes []string        `json:"optional_attributes,omitempty"`
	ParentType         string          `json:"parent_type,omitempty"`
}

// DBTableMapping maps an entity type to its backing relational table.
type DBTableMapping struct {
	Schema     string `json:"schema"`
	Table      string `json:"table"`
	PrimaryKey string `json:"primary_key"`
	NameColumn string `json:"name_column,omitempty"`
}

// AttributeDefBody defines a single attribute in the domain vocabulary.
type AttributeDefBody struct {
	FQN           string           `json:"fqn"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Domain        string           `json:"domain"`
	DataType      string           `json:"data_type"`
	EnumValues    []string         `json:"enum_values,omitempty"`
	Source        *AttributeSource `json:"source,omitempty"`
	Sinks         []string         `json:"sinks,omitempty"`
	SecurityLabel *SecurityLabel   `json:"security_label,omitempty"`
}

// AttributeSource records where an attribute's value originates.
type AttributeSource struct {
	ProducingVerb string `json:"producing_verb,omitempty"`
	Table         string `json:"table,omitempty"`
	Column        string `json:"column,omitempty"`
	Derived       bool   `json:"derived"`
}

// VerbContractBody defines the contract of a verb (operation) in the domain.
type VerbContractBody struct {
	FQN               string             `json:"fqn"`
	Domain            string             `json:"domain"`
	Action            string             `json:"action"`
	Description       string             `json:"description,omitempty"`
	Behavior          string             `json:"behavior,omitempty"`
	Args              []VerbArgDef       `json:"args,omitempty"`
	Returns           *VerbReturnSpec    `json:"returns,omitempty"`
	Preconditions     []VerbPrecondition `json:"preconditions,omitempty"`
	Postconditions    []string           `json:"postconditions,omitempty"`
	Produces          *VerbProducesSpec  `json:"produces,omitempty"`
	Consumes          []string           `json:"consumes,omitempty"`
	InvocationPhrases []string           `json:"invocation_phrases,omitempty"`
	Tags              []string           `json:"tags,omitempty"`
}

// VerbArgDef defines one argument of a verb contract.
type VerbArgDef struct {
	Name        string         `json:"name"`
	ArgType     string         `json:"arg_type"`
	Required    bool           `json:"required"`
	Description string         `json:"description,omitempty"`
	Lookup      *VerbArgLookup `json:"lookup,omitempty"`
	ValidValues []string       `json:"valid_values,omitempty"`
	Default     string         `json:"default,omitempty"`
}

// VerbArgLookup describes how an argument value resolves to an entity.
type VerbArgLookup struct {
	Table      string `json:"table"`
	EntityType string `json:"entity_type"`
	Schema     string `json:"schema,omitempty"`
	SearchKey  string `json:"search_key,omitempty"`
	PrimaryKey string `json:"primary_key,omitempty"`
}

// VerbPrecondition is a named condition that must hold before invocation.
type VerbPrecondition struct {
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// VerbReturnSpec describes what a verb returns.
type VerbReturnSpec struct {
	ReturnType string `json:"return_type"`
}

// VerbProducesSpec describes the entity type a verb produces.
type VerbProducesSpec struct {
	EntityType string `json:"entity_type"`
	Resolved   bool   `json:"resolved"`
}

// MembershipRuleBody places an entity type into a taxonomy.
type MembershipRuleBody struct {
	FQN           string `json:"fqn"`
	TaxonomyFQN   string `json:"taxonomy_fqn"`
	EntityTypeFQN string `json:"entity_type_fqn"`
	Predicate     string `json:"predicate,omitempty"`
	Description   string `json:"description,omitempty"`
}

// ViewDefBody defines a tabular view over the domain vocabulary.
type ViewDefBody struct {
	FQN         string       `json:"fqn"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Domain      string       `json:"domain"`
	Columns     []ViewColumn `json:"columns,omitempty"`
}

// ViewColumn is one column of a view. Column identity is the attribute FQN.
type ViewColumn struct {
	AttributeFQN  string `json:"attribute_fqn"`
	Label         string `json:"label,omitempty"`
	EntityTypeFQN string `json:"entity_type_fqn,omitempty"`
}

// EvidenceRequirementBody defines documentary evidence required for an
// entity type.
type EvidenceRequirementBody struct {
	FQN           string   `json:"fqn"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	EntityTypeFQN string   `json:"entity_type_fqn"`
	DocumentKinds []string `json:"document_kinds,omitempty"`
	Mandatory     bool     `json:"mandatory"`
}

// TaxonomyBody defines a classification taxonomy.
type TaxonomyBody struct {
	FQN         string `json:"fqn"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Domain      string `json:"domain"`
}

// TaxonomyNodeBody defines one node within a taxonomy.
type TaxonomyNodeBody struct {
	FQN         string `json:"fqn"`
	TaxonomyFQN string `json:"taxonomy_fqn"`
	Name        string `json:"name"`
	ParentFQN   string `json:"parent_fqn,omitempty"`
	Description string `json:"description,omitempty"`
}

// AccessPolicyBody defines a data-handling policy over registry objects.
type AccessPolicyBody struct {
	FQN              string   `json:"fqn"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	AppliesTo        []string `json:"applies_to,omitempty"`
	Classification   string   `json:"classification,omitempty"`
	HandlingControls []string `json:"handling_controls,omitempty"`
}

// DerivationSpecBody defines a derived attribute computation.
type DerivationSpecBody struct {
	FQN             string   `json:"fqn"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	OutputAttribute string   `json:"output_attribute"`
	InputAttributes []string `json:"input_attributes,omitempty"`
	Expression      string   `json:"expression,omitempty"`
}

package scanner

// Externally authored verb configuration. The scanner treats these files as
// the source of truth for the domain's verbs; derivation into registry
// definition bodies is pure and happens after schema validation.

// VerbsConfig is the merged verb configuration across all loaded files.
type VerbsConfig struct {
	Version string                  `yaml:"version"`
	Domains map[string]DomainConfig `yaml:"domains"`
}

// DomainConfig groups the verbs of one business domain.
type DomainConfig struct {
	Description string                `yaml:"description"`
	Verbs       map[string]VerbConfig `yaml:"verbs"`
}

// VerbConfig describes one verb as authored in configuration.
type VerbConfig struct {
	Description       string           `yaml:"description"`
	Behavior          string           `yaml:"behavior"`
	Args              []ArgConfig      `yaml:"args"`
	Returns           *ReturnConfig    `yaml:"returns"`
	Produces          *ProducesConfig  `yaml:"produces"`
	Consumes          []ConsumesConfig `yaml:"consumes"`
	Lifecycle         *LifecycleConfig `yaml:"lifecycle"`
	Metadata          *MetadataConfig  `yaml:"metadata"`
	InvocationPhrases []string         `yaml:"invocation_phrases"`
}

// ArgConfig describes one verb argument.
type ArgConfig struct {
	Name        string        `yaml:"name"`
	Type        string        `yaml:"type"`
	Required    bool          `yaml:"required"`
	MapsTo      string        `yaml:"maps_to"`
	Description string        `yaml:"description"`
	Default     string        `yaml:"default"`
	ValidValues []string      `yaml:"valid_values"`
	Lookup      *LookupConfig `yaml:"lookup"`
}

// LookupConfig describes how an argument resolves against a reference table.
type LookupConfig struct {
	Table      string `yaml:"table"`
	EntityType string `yaml:"entity_type"`
	Schema     string `yaml:"schema"`
	SearchKey  string `yaml:"search_key"`
	PrimaryKey string `yaml:"primary_key"`
}

// ReturnConfig describes a verb's return value.
type ReturnConfig struct {
	Type string `yaml:"type"`
}

// ProducesConfig describes the entity type a verb produces.
type ProducesConfig struct {
	Type     string `yaml:"type"`
	Resolved bool   `yaml:"resolved"`
}

// ConsumesConfig describes an entity type a verb consumes.
type ConsumesConfig struct {
	Type string `yaml:"type"`
}

// LifecycleConfig carries lifecycle constraints for a verb.
type LifecycleConfig struct {
	RequiresStates     []string `yaml:"requires_states"`
	PreconditionChecks []string `yaml:"precondition_checks"`
}

// MetadataConfig carries classification metadata for a verb.
type MetadataConfig struct {
	Tier          string   `yaml:"tier"`
	SourceOfTruth string   `yaml:"source_of_truth"`
	Scope         string   `yaml:"scope"`
	Noun          string   `yaml:"noun"`
	Tags          []string `yaml:"tags"`
}

package reg

// Classification levels for registry objects, least to most restrictive.
const (
	ClassificationInternal     = "internal"
	ClassificationConfidential = "confidential"
	ClassificationRestricted   = "restricted"
)

// Handling controls that a security label can impose.
const (
	HandlingMaskByDefault = "mask_by_default"
	HandlingNoExport      = "no_export"
	HandlingNoLLMExternal = "no_llm_external"
)

// SecurityLabel carries the data-handling classification of an object.
type SecurityLabel struct {
	Classification    string   `json:"classification"`
	PII               bool     `json:"pii"`
	Jurisdictions     []string `json:"jurisdictions,omitempty"`
	PurposeLimitation []string `json:"purpose_limitation,omitempty"`
	HandlingControls  []string `json:"handling_controls,omitempty"`
}

// DefaultSecurityLabel is the label applied when no heuristic matches:
// internal classification, no special handling.
func DefaultSecurityLabel() SecurityLabel {
	return SecurityLabel{Classification: ClassificationInternal}
}

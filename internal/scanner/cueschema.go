package scanner

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// verbsSchema constrains the shape of a verb configuration document.
// Validation runs on the decoded YAML before the typed unmarshal, so a
// misspelled field or a wrong type fails with a CUE path instead of being
// silently dropped.
const verbsSchema = `
#VerbsConfig: {
	version: string
	domains: [string]: #Domain
}

#Domain: {
	description?: string
	verbs: [string]: #Verb
}

#Verb: {
	description?: string
	behavior?: "crud" | "plugin" | "graph_query" | "durable"
	args?: [...#Arg]
	returns?: type: string
	produces?: {
		type:      string
		resolved?: bool
	}
	consumes?: [...{type: string}]
	lifecycle?: {
		requires_states?:     [...string]
		precondition_checks?: [...string]
	}
	metadata?: {
		tier?:            string
		source_of_truth?: string
		scope?:           string
		noun?:            string
		tags?:            [...string]
	}
	invocation_phrases?: [...string]
}

#Arg: {
	name: string
	type: "string" | "integer" | "decimal" | "boolean" | "uuid" | "date" | "timestamp" | "enum"
	required?:     bool
	maps_to?:      string
	description?:  string
	default?:      string
	valid_values?: [...string]
	lookup?: {
		table:        string
		entity_type?: string
		schema?:      string
		search_key?:  string
		primary_key?: string
	}
}
`

// validateVerbsDoc checks a decoded YAML document against the verbs schema.
func validateVerbsDoc(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(verbsSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile verbs schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#VerbsConfig"))
	if !def.Exists() {
		return fmt.Errorf("verbs schema: #VerbsConfig not found")
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode config for validation: %w", err)
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("verb config invalid: %w", err)
	}

	return nil
}

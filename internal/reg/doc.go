// Package reg provides the foundational types for the semantic object
// registry: the closed set of object types, the typed definition body for
// each of them, snapshot metadata, canonical JSON serialization, and
// content-addressed identity.
//
// This package contains type definitions and pure functions only. All other
// internal packages import reg; reg imports nothing internal. This ensures
// the registry vocabulary remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Identity is content-addressed: ObjectIDFor(type, fqn) is stable across
//     processes and runs; it is the anchor all versions of an object share.
//   - Drift detection uses DefinitionHash over canonical JSON, so the hash is
//     invariant to field-insertion order in the payload.
//   - NO float types in definitions - canonical JSON rejects them.
//   - All JSON tags use snake_case.
package reg

// Package scanner implements the bulk registry producer: it derives verb
// contracts, entity types, and attributes from externally authored verb
// configuration, idempotently syncs each collection into the snapshot store,
// then delegates further seeding (taxonomies, views, policies, derivation
// specs) to dedicated seeders that follow the same idempotent pattern.
//
// Verb configuration is authored in YAML and validated against an embedded
// CUE schema before any derivation runs.
//
// In dry-run mode the scanner performs no store access at all: every phase
// reports the size of its derived collection as the would-be published
// count. Because no per-item hash comparison happens without the store,
// dry-run counts are an upper bound on real-run outcomes, not an exact
// preview. This is a known, intentional approximation.
package scanner

// Package onboarding registers one entity type end-to-end through a fixed
// 6-phase pipeline: entity type definition, attribute definitions, verb
// contracts, taxonomy placement, view column assignment, evidence
// requirements.
//
// The pipeline is at-least-one-phase-durable, not all-or-nothing: each phase
// publishes independently, per-item failures are recorded as strings on the
// phase's counters, and a later phase runs even when an earlier one recorded
// errors. Only store-level failures abort the run. A re-run with unchanged
// input converges: every phase reports skips and nothing new is written.
//
// Empty request collections fall back to generated defaults supplied by a
// pluggable Defaults strategy, since the default rules are business-domain
// knowledge rather than registry logic.
package onboarding

// Package publish implements the shared idempotent publish algorithm used by
// every registry producer: look up the active snapshot for (type, fqn),
// then skip (hash unchanged), update (publish a successor), or insert
// (no active snapshot).
//
// The read-compare-write sequence is NOT wrapped in a transaction or guarded
// by an optimistic token. The store's UNIQUE successor index turns the
// duplicate-publish half of that race into a loud error; the duplicate-insert
// half remains open under concurrent writers to the same FQN.
package publish

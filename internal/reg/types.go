package reg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ObjectType tags the kind of registry object a snapshot describes.
// The tag determines how the definition payload is structurally interpreted
// (e.g. a view_def definition carries a columns list).
type ObjectType string

const (
	ObjectEntityTypeDef       ObjectType = "entity_type_def"
	ObjectAttributeDef        ObjectType = "attribute_def"
	ObjectVerbContract        ObjectType = "verb_contract"
	ObjectMembershipRule      ObjectType = "membership_rule"
	ObjectViewDef             ObjectType = "view_def"
	ObjectEvidenceRequirement ObjectType = "evidence_requirement"
	ObjectTaxonomy            ObjectType = "taxonomy"
	ObjectTaxonomyNode        ObjectType = "taxonomy_node"
	ObjectAccessPolicy        ObjectType = "access_policy"
	ObjectDerivationSpec      ObjectType = "derivation_spec"
)

// AllObjectTypes lists every known object type in display order.
var AllObjectTypes = []ObjectType{
	ObjectEntityTypeDef,
	ObjectAttributeDef,
	ObjectVerbContract,
	ObjectMembershipRule,
	ObjectViewDef,
	ObjectEvidenceRequirement,
	ObjectTaxonomy,
	ObjectTaxonomyNode,
	ObjectAccessPolicy,
	ObjectDerivationSpec,
}

// Valid reports whether t is a known object type.
func (t ObjectType) Valid() bool {
	for _, known := range AllObjectTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ChangeType classifies the impact of a successor snapshot relative to its
// predecessor.
type ChangeType string

const (
	ChangeNonBreaking   ChangeType = "non_breaking"
	ChangeBreaking      ChangeType = "breaking"
	ChangeClarification ChangeType = "clarification"
)

// SnapshotMeta carries the versioning and attribution metadata for a snapshot
// about to be written. The store fills in the snapshot ID and timestamp.
type SnapshotMeta struct {
	ObjectType      ObjectType `json:"object_type"`
	ObjectID        uuid.UUID  `json:"object_id"`
	VersionMajor    int64      `json:"version_major"`
	VersionMinor    int64      `json:"version_minor"`
	PredecessorID   *uuid.UUID `json:"predecessor_id,omitempty"`
	ChangeType      ChangeType `json:"change_type"`
	ChangeRationale string     `json:"change_rationale,omitempty"`
	CreatedBy       string     `json:"created_by"`
}

// NewMeta returns metadata for a brand-new object chain: version 1.0,
// no predecessor, non-breaking change classification.
func NewMeta(objectType ObjectType, objectID uuid.UUID, createdBy string) SnapshotMeta {
	return SnapshotMeta{
		ObjectType:   objectType,
		ObjectID:     objectID,
		VersionMajor: 1,
		VersionMinor: 0,
		ChangeType:   ChangeNonBreaking,
		CreatedBy:    createdBy,
	}
}

// SuccessorMeta returns metadata for a successor of prior: same object
// identity, major version carried forward, minor version incremented by
// exactly one, predecessor link set.
func SuccessorMeta(prior Snapshot, changeType ChangeType, rationale, createdBy string) SnapshotMeta {
	pred := prior.SnapshotID
	return SnapshotMeta{
		ObjectType:      prior.ObjectType,
		ObjectID:        prior.ObjectID,
		VersionMajor:    prior.VersionMajor,
		VersionMinor:    prior.VersionMinor + 1,
		PredecessorID:   &pred,
		ChangeType:      changeType,
		ChangeRationale: rationale,
		CreatedBy:       createdBy,
	}
}

// Snapshot is one immutable persisted record of an object's definition at a
// point in time. For a given ObjectID the active snapshot is the one with no
// successor; history forms a singly-linked chain via PredecessorID.
type Snapshot struct {
	SnapshotID      uuid.UUID      `json:"snapshot_id"`
	SnapshotSetID   *uuid.UUID     `json:"snapshot_set_id,omitempty"`
	ObjectType      ObjectType     `json:"object_type"`
	ObjectID        uuid.UUID      `json:"object_id"`
	VersionMajor    int64          `json:"version_major"`
	VersionMinor    int64          `json:"version_minor"`
	PredecessorID   *uuid.UUID     `json:"predecessor_id,omitempty"`
	ChangeType      ChangeType     `json:"change_type"`
	ChangeRationale string         `json:"change_rationale,omitempty"`
	CreatedBy       string         `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	Definition      map[string]any `json:"definition"`
}

// DecodeDefinition unmarshals the snapshot's definition payload into a typed
// body struct (pass a pointer).
func (s Snapshot) DecodeDefinition(v any) error {
	data, err := json.Marshal(s.Definition)
	if err != nil {
		return fmt.Errorf("decode definition: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode definition: %w", err)
	}
	return nil
}

// SnapshotSet is a grouping label applied to all snapshots written within one
// producer invocation. Dry runs never create one.
type SnapshotSet struct {
	SetID     uuid.UUID `json:"set_id"`
	Label     string    `json:"label,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDefinition converts a typed definition body to the map form used for
// hashing and persistence. Numbers are preserved as json.Number so that the
// canonical encoder can reject floats without losing integer precision.
func ToDefinition(body any) (map[string]any, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("to definition: %w", err)
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	var def map[string]any
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("to definition: %w", err)
	}
	return def, nil
}

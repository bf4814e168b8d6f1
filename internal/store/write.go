package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/roach88/semreg/internal/reg"
)

// ErrSuccessorExists is returned by PublishSnapshot when the predecessor
// already has a successor. This surfaces a concurrent duplicate publish
// loudly instead of letting two writers fork the chain.
var ErrSuccessorExists = errors.New("predecessor already has a successor")

// CreateSnapshotSet creates a grouping label for a batch of snapshots.
// Always succeeds or fails atomically; never partially creates.
func (s *Store) CreateSnapshotSet(ctx context.Context, label, createdBy string) (uuid.UUID, error) {
	setID := uuid.New()

	var dbLabel sql.NullString
	if label != "" {
		dbLabel = sql.NullString{String: label, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshot_sets (set_id, label, created_by, created_at)
		VALUES (?, ?, ?, ?)
	`,
		setID.String(),
		dbLabel,
		createdBy,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create snapshot set: %w", err)
	}

	return setID, nil
}

// InsertSnapshot creates a brand-new chain: a snapshot with no predecessor.
// The definition is serialized to canonical JSON before writing.
func (s *Store) InsertSnapshot(ctx context.Context, meta reg.SnapshotMeta, definition map[string]any, setID *uuid.UUID) (reg.Snapshot, error) {
	if meta.PredecessorID != nil {
		return reg.Snapshot{}, fmt.Errorf("insert snapshot: meta carries a predecessor, use PublishSnapshot")
	}
	return s.writeSnapshot(ctx, meta, definition, setID)
}

// PublishSnapshot appends a successor snapshot. The prior active record is
// implicitly superseded the moment the successor is durably written; no
// separate deactivate step exists. Returns ErrSuccessorExists (wrapped) if
// another successor already claimed the predecessor.
func (s *Store) PublishSnapshot(ctx context.Context, meta reg.SnapshotMeta, definition map[string]any, setID *uuid.UUID) (reg.Snapshot, error) {
	if meta.PredecessorID == nil {
		return reg.Snapshot{}, fmt.Errorf("publish snapshot: meta has no predecessor, use InsertSnapshot")
	}
	snap, err := s.writeSnapshot(ctx, meta, definition, setID)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return reg.Snapshot{}, fmt.Errorf("publish snapshot %s: %w", meta.PredecessorID, ErrSuccessorExists)
		}
		return reg.Snapshot{}, err
	}
	return snap, nil
}

// writeSnapshot inserts one snapshot row and returns the persisted record.
func (s *Store) writeSnapshot(ctx context.Context, meta reg.SnapshotMeta, definition map[string]any, setID *uuid.UUID) (reg.Snapshot, error) {
	defJSON, err := marshalDefinition(definition)
	if err != nil {
		return reg.Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}

	snapshotID := uuid.New()
	createdAt := time.Now().UTC()

	var dbSetID, dbPredecessor, dbRationale sql.NullString
	if setID != nil {
		dbSetID = sql.NullString{String: setID.String(), Valid: true}
	}
	if meta.PredecessorID != nil {
		dbPredecessor = sql.NullString{String: meta.PredecessorID.String(), Valid: true}
	}
	if meta.ChangeRationale != "" {
		dbRationale = sql.NullString{String: meta.ChangeRationale, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots
		(snapshot_id, snapshot_set_id, object_type, object_id,
		 version_major, version_minor, predecessor_id,
		 change_type, change_rationale, created_by, created_at, definition)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		snapshotID.String(),
		dbSetID,
		string(meta.ObjectType),
		meta.ObjectID.String(),
		meta.VersionMajor,
		meta.VersionMinor,
		dbPredecessor,
		string(meta.ChangeType),
		dbRationale,
		meta.CreatedBy,
		createdAt.Format(time.RFC3339Nano),
		defJSON,
	)
	if err != nil {
		return reg.Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}

	return reg.Snapshot{
		SnapshotID:      snapshotID,
		SnapshotSetID:   setID,
		ObjectType:      meta.ObjectType,
		ObjectID:        meta.ObjectID,
		VersionMajor:    meta.VersionMajor,
		VersionMinor:    meta.VersionMinor,
		PredecessorID:   meta.PredecessorID,
		ChangeType:      meta.ChangeType,
		ChangeRationale: meta.ChangeRationale,
		CreatedBy:       meta.CreatedBy,
		CreatedAt:       createdAt,
		Definition:      definition,
	}, nil
}

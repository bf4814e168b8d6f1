package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/semreg/internal/reg"
)

const snapshotColumns = `
	snapshot_id, snapshot_set_id, object_type, object_id,
	version_major, version_minor, predecessor_id,
	change_type, change_rationale, created_by, created_at, definition
`

// activeFilter restricts rows to heads of chain: a snapshot is active iff
// no other row names it as predecessor.
const activeFilter = `
	NOT EXISTS (
		SELECT 1 FROM snapshots succ WHERE succ.predecessor_id = s.snapshot_id
	)
`

// fieldNamePattern restricts definition field names to identifier characters,
// since the field name is interpolated into the json_extract path.
var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// FindActiveByDefinitionField returns the active (head-of-chain) snapshot of
// the given object type whose definition field matches the given value, or
// nil if no such snapshot exists.
func (s *Store) FindActiveByDefinitionField(ctx context.Context, objectType reg.ObjectType, fieldName, fieldValue string) (*reg.Snapshot, error) {
	if !fieldNamePattern.MatchString(fieldName) {
		return nil, fmt.Errorf("find active: invalid field name %q", fieldName)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM snapshots s
		WHERE s.object_type = ?
		  AND json_extract(s.definition, '$.%s') = ?
		  AND %s
		ORDER BY s.version_major DESC, s.version_minor DESC, s.snapshot_id COLLATE BINARY ASC
		LIMIT 1
	`, snapshotColumns, fieldName, activeFilter)

	row := s.db.QueryRowContext(ctx, query, string(objectType), fieldValue)
	snap, err := scanSnapshotRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active by %s: %w", fieldName, err)
	}
	return &snap, nil
}

// ReadSnapshot retrieves a single snapshot by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSnapshot(ctx context.Context, snapshotID uuid.UUID) (reg.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM snapshots s WHERE s.snapshot_id = ?
	`, snapshotColumns)
	row := s.db.QueryRowContext(ctx, query, snapshotID.String())
	return scanSnapshotRow(row)
}

// ReadChain walks the predecessor chain starting from the given snapshot,
// head first, ending at the root (predecessor absent). The walk is bounded
// by the number of rows in the table, so a corrupt cyclic chain cannot loop
// forever.
func (s *Store) ReadChain(ctx context.Context, snapshotID uuid.UUID) ([]reg.Snapshot, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&total); err != nil {
		return nil, fmt.Errorf("read chain: %w", err)
	}

	chain := []reg.Snapshot{}
	next := snapshotID
	for i := 0; i <= total; i++ {
		snap, err := s.ReadSnapshot(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("read chain at %s: %w", next, err)
		}
		chain = append(chain, snap)
		if snap.PredecessorID == nil {
			return chain, nil
		}
		next = *snap.PredecessorID
	}

	return nil, fmt.Errorf("read chain from %s: predecessor cycle detected", snapshotID)
}

// ListActive returns all active snapshots of a given object type, ordered
// deterministically by definition FQN then snapshot ID.
func (s *Store) ListActive(ctx context.Context, objectType reg.ObjectType) ([]reg.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM snapshots s
		WHERE s.object_type = ?
		  AND %s
		ORDER BY json_extract(s.definition, '$.fqn') ASC, s.snapshot_id COLLATE BINARY ASC
	`, snapshotColumns, activeFilter)

	rows, err := s.db.QueryContext(ctx, query, string(objectType))
	if err != nil {
		return nil, fmt.Errorf("list active: %w", err)
	}
	defer rows.Close()

	var snaps []reg.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active snapshots: %w", err)
	}

	// Return empty slice instead of nil
	if snaps == nil {
		snaps = []reg.Snapshot{}
	}

	return snaps, nil
}

// CountActiveByType returns the number of active snapshots per object type.
// Types with no active snapshots are absent from the map.
func (s *Store) CountActiveByType(ctx context.Context) (map[reg.ObjectType]int, error) {
	query := fmt.Sprintf(`
		SELECT s.object_type, COUNT(*)
		FROM snapshots s
		WHERE %s
		GROUP BY s.object_type
	`, activeFilter)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count active: %w", err)
	}
	defer rows.Close()

	counts := make(map[reg.ObjectType]int)
	for rows.Next() {
		var objectType string
		var count int
		if err := rows.Scan(&objectType, &count); err != nil {
			return nil, fmt.Errorf("scan active count: %w", err)
		}
		counts[reg.ObjectType(objectType)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active counts: %w", err)
	}

	return counts, nil
}

// ReadSnapshotSet retrieves a snapshot set by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSnapshotSet(ctx context.Context, setID uuid.UUID) (reg.SnapshotSet, error) {
	var set reg.SnapshotSet
	var id string
	var label sql.NullString
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT set_id, label, created_by, created_at
		FROM snapshot_sets
		WHERE set_id = ?
	`, setID.String()).Scan(&id, &label, &set.CreatedBy, &createdAt)
	if err != nil {
		return reg.SnapshotSet{}, err
	}

	set.SetID, err = uuid.Parse(id)
	if err != nil {
		return reg.SnapshotSet{}, fmt.Errorf("read snapshot set: %w", err)
	}
	set.Label = label.String
	set.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return reg.SnapshotSet{}, fmt.Errorf("read snapshot set: %w", err)
	}

	return set, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the snapshot scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(rows *sql.Rows) (reg.Snapshot, error) {
	snap, err := scanSnapshotFrom(rows)
	if err != nil {
		return reg.Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}
	return snap, nil
}

func scanSnapshotRow(row *sql.Row) (reg.Snapshot, error) {
	return scanSnapshotFrom(row)
}

func scanSnapshotFrom(sc rowScanner) (reg.Snapshot, error) {
	var snap reg.Snapshot
	var snapshotID, objectType, objectID, changeType, createdBy, createdAt, defJSON string
	var setID, predecessorID, rationale sql.NullString

	if err := sc.Scan(
		&snapshotID, &setID, &objectType, &objectID,
		&snap.VersionMajor, &snap.VersionMinor, &predecessorID,
		&changeType, &rationale, &createdBy, &createdAt, &defJSON,
	); err != nil {
		return reg.Snapshot{}, err
	}

	var err error
	snap.SnapshotID, err = uuid.Parse(snapshotID)
	if err != nil {
		return reg.Snapshot{}, fmt.Errorf("parse snapshot_id: %w", err)
	}
	snap.ObjectID, err = uuid.Parse(objectID)
	if err != nil {
		return reg.Snapshot{}, fmt.Errorf("parse object_id: %w", err)
	}
	if setID.Valid {
		parsed, err := uuid.Parse(setID.String)
		if err != nil {
			return reg.Snapshot{}, fmt.Errorf("parse snapshot_set_id: %w", err)
		}
		snap.SnapshotSetID = &parsed
	}
	if predecessorID.Valid {
		parsed, err := uuid.Parse(predecessorID.String)
		if err != nil {
			return reg.Snapshot{}, fmt.Errorf("parse predecessor_id: %w", err)
		}
		snap.PredecessorID = &parsed
	}

	snap.ObjectType = reg.ObjectType(objectType)
	snap.ChangeType = reg.ChangeType(changeType)
	snap.ChangeRationale = rationale.String
	snap.CreatedBy = createdBy

	snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return reg.Snapshot{}, fmt.Errorf("parse created_at: %w", err)
	}

	snap.Definition, err = unmarshalDefinition(defJSON)
	if err != nil {
		return reg.Snapshot{}, err
	}

	return snap, nil
}

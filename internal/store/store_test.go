package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/roach88/semreg/internal/reg"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func widgetDefinition(name string) map[string]any {
	return map[string]any{
		"fqn":    "entity.test-widget",
		"name":   name,
		"domain": "entity",
	}
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	for _, table := range []string{"snapshot_sets", "snapshots"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	for name, want := range map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"busy_timeout": "5000",
	} {
		if err := s.verifyPragma(name, want); err != nil {
			t.Error(err)
		}
	}
}

func TestInsertSnapshot_FindActive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	meta := reg.NewMeta(reg.ObjectEntityTypeDef, reg.ObjectIDFor(reg.ObjectEntityTypeDef, "entity.test-widget"), "tester")
	inserted, err := s.InsertSnapshot(ctx, meta, widgetDefinition("Test Widget"), nil)
	if err != nil {
		t.Fatalf("InsertSnapshot() failed: %v", err)
	}

	found, err := s.FindActiveByDefinitionField(ctx, reg.ObjectEntityTypeDef, "fqn", "entity.test-widget")
	if err != nil {
		t.Fatalf("FindActiveByDefinitionField() failed: %v", err)
	}
	if found == nil {
		t.Fatal("active snapshot not found")
	}
	if found.SnapshotID != inserted.SnapshotID {
		t.Errorf("found %s, want %s", found.SnapshotID, inserted.SnapshotID)
	}
	if found.VersionMajor != 1 || found.VersionMinor != 0 {
		t.Errorf("version = %d.%d, want 1.0", found.VersionMajor, found.VersionMinor)
	}
	if found.Definition["name"] != "Test Widget" {
		t.Errorf("definition name = %v", found.Definition["name"])
	}
}

func TestFindActive_AbsentReturnsNil(t *testing.T) {
	s := openTestStore(t)

	found, err := s.FindActiveByDefinitionField(context.Background(), reg.ObjectEntityTypeDef, "fqn", "entity.nothing")
	if err != nil {
		t.Fatalf("FindActiveByDefinitionField() failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for absent object, got %v", found.SnapshotID)
	}
}

func TestFindActive_RejectsBadFieldName(t *testing.T) {
	s := openTestStore(t)

	_, err := s.FindActiveByDefinitionField(context.Background(), reg.ObjectEntityTypeDef, "fqn'); DROP TABLE snapshots; --", "x")
	if err == nil {
		t.Error("expected error for invalid field name")
	}
}

func TestPublishSnapshot_SupersedesActive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	meta := reg.NewMeta(reg.ObjectEntityTypeDef, reg.ObjectIDFor(reg.ObjectEntityTypeDef, "entity.test-widget"), "tester")
	first, err := s.InsertSnapshot(ctx, meta, widgetDefinition("Test Widget"), nil)
	if err != nil {
		t.Fatalf("InsertSnapshot() failed: %v", err)
	}

	succMeta := reg.SuccessorMeta(first, reg.ChangeNonBreaking, "renamed", "tester")
	second, err := s.PublishSnapshot(ctx, succMeta, widgetDefinition("Widget Two"), nil)
	if err != nil {
		t.Fatalf("PublishSnapshot() failed: %v", err)
	}

	found, err := s.FindActiveByDefinitionField(ctx, reg.ObjectEntityTypeDef, "fqn", "entity.test-widget")
	if err != nil {
		t.Fatalf("FindActiveByDefinitionField() failed: %v", err)
	}
	if found == nil || found.SnapshotID != second.SnapshotID {
		t.Fatal("successor is not the active snapshot")
	}
	if found.VersionMinor != 1 {
		t.Errorf("minor = %d, want 1", found.VersionMinor)
	}
}

func TestPublishSnapshot_DuplicateSuccessorFailsLoudly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	meta := reg.NewMeta(reg.ObjectEntityTypeDef, reg.ObjectIDFor(reg.ObjectEntityTypeDef, "entity.test-widget"), "tester")
	first, err := s.InsertSnapshot(ctx, meta, widgetDefinition("Test Widget"), nil)
	if err != nil {
		t.Fatalf("InsertSnapshot() failed: %v", err)
	}

	succMeta := reg.SuccessorMeta(first, reg.ChangeNonBreaking, "first successor", "tester")
	if _, err := s.PublishSnapshot(ctx, succMeta, widgetDefinition("Widget Two"), nil); err != nil {
		t.Fatalf("first PublishSnapshot() failed: %v", err)
	}

	// A second successor of the same predecessor is a forked chain.
	dupMeta := reg.SuccessorMeta(first, reg.ChangeNonBreaking, "second successor", "tester")
	_, err = s.PublishSnapshot(ctx, dupMeta, widgetDefinition("Widget Three"), nil)
	if !errors.Is(err, ErrSuccessorExists) {
		t.Errorf("expected ErrSuccessorExists, got %v", err)
	}
}

func TestInsertSnapshot_RejectsPredecessor(t *testing.T) {
	s := openTestStore(t)

	pred := uuid.New()
	meta := reg.NewMeta(reg.ObjectEntityTypeDef, uuid.New(), "tester")
	meta.PredecessorID = &pred

	if _, err := s.InsertSnapshot(context.Background(), meta, widgetDefinition("X"), nil); err == nil {
		t.Error("expected error for insert with predecessor")
	}
}

func TestReadChain_HeadToRoot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	meta := reg.NewMeta(reg.ObjectEntityTypeDef, reg.ObjectIDFor(reg.ObjectEntityTypeDef, "entity.test-widget"), "tester")
	v1, err := s.InsertSnapshot(ctx, meta, widgetDefinition("One"), nil)
	if err != nil {
		t.Fatalf("InsertSnapshot() failed: %v", err)
	}
	v2, err := s.PublishSnapshot(ctx, reg.SuccessorMeta(v1, reg.ChangeNonBreaking, "", "tester"), widgetDefinition("Two"), nil)
	if err != nil {
		t.Fatalf("PublishSnapshot() v2 failed: %v", err)
	}
	v3, err := s.PublishSnapshot(ctx, reg.SuccessorMeta(v2, reg.ChangeNonBreaking, "", "tester"), widgetDefinition("Three"), nil)
	if err != nil {
		t.Fatalf("PublishSnapshot() v3 failed: %v", err)
	}

	chain, err := s.ReadChain(ctx, v3.SnapshotID)
	if err != nil {
		t.Fatalf("ReadChain() failed: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	want := []uuid.UUID{v3.SnapshotID, v2.SnapshotID, v1.SnapshotID}
	for i, id := range want {
		if chain[i].SnapshotID != id {
			t.Errorf("chain[%d] = %s, want %s", i, chain[i].SnapshotID, id)
		}
	}
	if chain[2].PredecessorID != nil {
		t.Error("root snapshot has a predecessor")
	}
}

func TestListActive_OrderedAndNeverNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.ListActive(ctx, reg.ObjectAttributeDef)
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if empty == nil {
		t.Error("ListActive returned nil, want empty slice")
	}

	for _, fqn := range []string{"entity.zeta", "entity.alpha", "entity.mid"} {
		meta := reg.NewMeta(reg.ObjectAttributeDef, reg.ObjectIDFor(reg.ObjectAttributeDef, fqn), "tester")
		def := map[string]any{"fqn": fqn, "name": fqn, "domain": "entity", "data_type": "string"}
		if _, err := s.InsertSnapshot(ctx, meta, def, nil); err != nil {
			t.Fatalf("InsertSnapshot(%s) failed: %v", fqn, err)
		}
	}

	snaps, err := s.ListActive(ctx, reg.ObjectAttributeDef)
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("got %d active snapshots, want 3", len(snaps))
	}
	wantOrder := []string{"entity.alpha", "entity.mid", "entity.zeta"}
	for i, fqn := range wantOrder {
		if snaps[i].Definition["fqn"] != fqn {
			t.Errorf("snaps[%d].fqn = %v, want %s", i, snaps[i].Definition["fqn"], fqn)
		}
	}
}

func TestCountActiveByType(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	etMeta := reg.NewMeta(reg.ObjectEntityTypeDef, reg.ObjectIDFor(reg.ObjectEntityTypeDef, "entity.test-widget"), "tester")
	first, err := s.InsertSnapshot(ctx, etMeta, widgetDefinition("One"), nil)
	if err != nil {
		t.Fatalf("InsertSnapshot() failed: %v", err)
	}
	// A superseded snapshot must not count as active.
	if _, err := s.PublishSnapshot(ctx, reg.SuccessorMeta(first, reg.ChangeNonBreaking, "", "tester"), widgetDefinition("Two"), nil); err != nil {
		t.Fatalf("PublishSnapshot() failed: %v", err)
	}

	attrMeta := reg.NewMeta(reg.ObjectAttributeDef, reg.ObjectIDFor(reg.ObjectAttributeDef, "entity.test-widget.name"), "tester")
	attrDef := map[string]any{"fqn": "entity.test-widget.name", "name": "Name", "domain": "entity", "data_type": "string"}
	if _, err := s.InsertSnapshot(ctx, attrMeta, attrDef, nil); err != nil {
		t.Fatalf("InsertSnapshot(attr) failed: %v", err)
	}

	counts, err := s.CountActiveByType(ctx)
	if err != nil {
		t.Fatalf("CountActiveByType() failed: %v", err)
	}
	if counts[reg.ObjectEntityTypeDef] != 1 {
		t.Errorf("entity_type_def count = %d, want 1", counts[reg.ObjectEntityTypeDef])
	}
	if counts[reg.ObjectAttributeDef] != 1 {
		t.Errorf("attribute_def count = %d, want 1", counts[reg.ObjectAttributeDef])
	}
}

func TestSnapshotSet_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	setID, err := s.CreateSnapshotSet(ctx, "verb-scan", "scanner")
	if err != nil {
		t.Fatalf("CreateSnapshotSet() failed: %v", err)
	}

	set, err := s.ReadSnapshotSet(ctx, setID)
	if err != nil {
		t.Fatalf("ReadSnapshotSet() failed: %v", err)
	}
	if set.Label != "verb-scan" {
		t.Errorf("label = %q, want verb-scan", set.Label)
	}
	if set.CreatedBy != "scanner" {
		t.Errorf("created_by = %q, want scanner", set.CreatedBy)
	}

	meta := reg.NewMeta(reg.ObjectEntityTypeDef, reg.ObjectIDFor(reg.ObjectEntityTypeDef, "entity.test-widget"), "scanner")
	snap, err := s.InsertSnapshot(ctx, meta, widgetDefinition("One"), &setID)
	if err != nil {
		t.Fatalf("InsertSnapshot() failed: %v", err)
	}
	read, err := s.ReadSnapshot(ctx, snap.SnapshotID)
	if err != nil {
		t.Fatalf("ReadSnapshot() failed: %v", err)
	}
	if read.SnapshotSetID == nil || *read.SnapshotSetID != setID {
		t.Error("snapshot not tagged with its set")
	}
}

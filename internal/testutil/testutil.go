// Package testutil provides shared helpers for registry tests: a temp-file
// store and small fixture definition bodies.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/roach88/semreg/internal/reg"
	"github.com/roach88/semreg/internal/store"
)

// OpenStore opens a fresh store in a per-test temp directory and closes it
// on cleanup.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "semreg.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// Logger returns a silent logger for tests.
func Logger() zerolog.Logger {
	return zerolog.Nop()
}

// WidgetEntityType returns a minimal entity type body for tests.
func WidgetEntityType() reg.EntityTypeDefBody {
	return reg.EntityTypeDefBody{
		FQN:    "entity.test-widget",
		Name:   "Test Widget",
		Domain: "entity",
	}
}

// WidgetAttribute returns an attribute body belonging to the widget entity
// type.
func WidgetAttribute(name string) reg.AttributeDefBody {
	return reg.AttributeDefBody{
		FQN:      "entity.test-widget." + name,
		Name:     name,
		Domain:   "entity",
		DataType: "string",
	}
}

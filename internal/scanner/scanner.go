package scanner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roach88/semreg/internal/publish"
	"github.com/roach88/semreg/internal/reg"
	"github.com/roach88/semreg/internal/store"
)

// DefaultCreatedBy is the attribution recorded on scanner-written snapshots
// when the caller does not override it.
const DefaultCreatedBy = "scanner"

// snapshotSetLabel tags every snapshot written by one scan run.
const snapshotSetLabel = "verb-scan"

// Options control one scan run.
type Options struct {
	// DryRun reports derived collection sizes without any store access.
	DryRun bool
	// Verbose logs a line per item naming its outcome.
	Verbose bool
	// CreatedBy overrides the attribution string. Empty means "scanner".
	CreatedBy string
}

// Scanner is the bulk registry producer. Phases run in fixed order: verb
// contracts, entity types, attributes, then each configured seeder.
type Scanner struct {
	store   *store.Store
	pub     *publish.Publisher
	seeders []Seeder
	log     zerolog.Logger
}

// New returns a scanner with the default seeding phases.
func New(st *store.Store, log zerolog.Logger) *Scanner {
	return &Scanner{
		store:   st,
		pub:     publish.New(st, log),
		seeders: DefaultSeeders(),
		log:     log,
	}
}

// WithSeeders replaces the seeding phases. Pass an empty slice to disable
// seeding entirely.
func (s *Scanner) WithSeeders(seeders []Seeder) *Scanner {
	s.seeders = seeders
	return s
}

// Run executes the full scan: derive, sync each collection idempotently,
// then run the seeders. Store-level failures abort the scan; per-item
// failures accumulate in the report's error lists.
func (s *Scanner) Run(ctx context.Context, cfg VerbsConfig, opts Options) (*ScanReport, error) {
	createdBy := opts.CreatedBy
	if createdBy == "" {
		createdBy = DefaultCreatedBy
	}

	contracts := Contracts(cfg)
	entityTypes := InferEntityTypes(cfg)
	attributes := InferAttributes(cfg)

	if opts.Verbose {
		s.log.Info().Int("count", len(contracts)).Msg("derived verb contracts")
		s.log.Info().Int("count", len(entityTypes)).Msg("inferred entity types from verb lookups")
		s.log.Info().Int("count", len(attributes)).Msg("inferred attributes from verb args")
	}

	report := &ScanReport{DryRun: opts.DryRun}
	params := SeedParams{CreatedBy: createdBy, DryRun: opts.DryRun}

	if !opts.DryRun {
		setID, err := s.store.CreateSnapshotSet(ctx, snapshotSetLabel, createdBy)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		params.SetID = &setID
		report.SnapshotSetID = &setID
	}

	report.VerbContracts = syncItems(ctx, s, params, opts, reg.ObjectVerbContract, contracts,
		func(b reg.VerbContractBody) string { return b.FQN })
	report.EntityTypes = syncItems(ctx, s, params, opts, reg.ObjectEntityTypeDef, entityTypes,
		func(b reg.EntityTypeDefBody) string { return b.FQN })
	report.Attributes = syncItems(ctx, s, params, opts, reg.ObjectAttributeDef, attributes,
		func(b reg.AttributeDefBody) string { return b.FQN })

	for _, seeder := range s.seeders {
		results, err := seeder.Seed(ctx, s.pub, params)
		if err != nil {
			return nil, fmt.Errorf("scan: seed %s: %w", seeder.Name(), err)
		}
		report.merge(results)
	}

	return report, nil
}

// syncItems publishes every item of one derived collection. In dry-run it
// reports the collection size as the would-be published count.
func syncItems[T any](ctx context.Context, s *Scanner, params SeedParams, opts Options, objectType reg.ObjectType, items []T, fqnOf func(T) string) publish.StepResult {
	var step publish.StepResult
	if params.DryRun {
		step.Published = len(items)
		return step
	}
	for _, item := range items {
		fqn := fqnOf(item)
		outcome, err := s.pub.Publish(ctx, objectType, fqn, item, params.CreatedBy, params.SetID, "")
		if err != nil {
			step.RecordError(fmt.Sprintf("%s %q: %v", objectType, fqn, err))
			continue
		}
		step.Record(outcome)
		if opts.Verbose {
			s.log.Info().
				Str("object_type", string(objectType)).
				Str("fqn", fqn).
				Str("outcome", outcome.String()).
				Msg("synced")
		}
	}
	return step
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/semreg/internal/scanner"
	"github.com/roach88/semreg/internal/store"
)

// ScanOptions holds flags for the scan command.
type ScanOptions struct {
	*RootOptions
	DryRun    bool
	CreatedBy string
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan <verbs-dir>",
		Short: "Sync verb configuration into the registry",
		Long: `Load verb configuration YAML from a directory, derive verb contracts,
entity types, and attributes, and idempotently sync each collection into the
registry, followed by the baseline seeding phases.

Re-running against unchanged configuration is a no-op: every item reports a
skip and no new snapshots are written.

Example:
  semreg scan --db ./semreg.db ./config/verbs
  semreg scan --db ./semreg.db ./config/verbs --dry-run`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report derived counts without writing")
	cmd.Flags().StringVar(&opts.CreatedBy, "created-by", "", "attribution recorded on written snapshots")

	return cmd
}

func runScan(cmd *cobra.Command, opts *ScanOptions, verbsDir string) error {
	log := newLogger(opts.RootOptions)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := scanner.LoadVerbsDir(verbsDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load verb configuration", err)
	}

	// A dry run never touches the store, so don't even open (and thereby
	// create) the database file.
	var st *store.Store
	if !opts.DryRun {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
	}

	report, err := scanner.New(st, log).Run(cmd.Context(), cfg, scanner.Options{
		DryRun:    opts.DryRun,
		Verbose:   opts.Verbose,
		CreatedBy: opts.CreatedBy,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "scan failed", err)
	}

	if err := out.Success(report); err != nil {
		return err
	}
	if len(report.Errors()) > 0 {
		return NewExitError(ExitFailure, "scan completed with errors")
	}
	return nil
}

package cli

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/semreg/internal/reg"
	"github.com/roach88/semreg/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <object-type> <fqn>",
		Short: "Show the version chain of one object",
		Long: `Walk an object's snapshot chain from its active head back to version 1.0,
newest first.

Example:
  semreg history --db ./semreg.db entity_type_def entity.test-widget
  semreg history --db ./semreg.db view_def view.client-overview --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, rootOpts, args[0], args[1])
		},
	}
	return cmd
}

func runHistory(cmd *cobra.Command, opts *RootOptions, objectTypeArg, fqn string) error {
	objectType := reg.ObjectType(objectTypeArg)
	if !objectType.Valid() {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown object type %q", objectTypeArg))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	active, err := st.FindActiveByDefinitionField(cmd.Context(), objectType, "fqn", fqn)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to look up object", err)
	}
	if active == nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("no active %s with fqn %q", objectType, fqn))
	}

	chain, err := st.ReadChain(cmd.Context(), active.SnapshotID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read chain", err)
	}

	if opts.Format == "json" {
		out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return out.Success(chain)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Version", "Snapshot", "Change", "Rationale", "By", "At")
	for _, snap := range chain {
		if err := table.Append(
			fmt.Sprintf("%d.%d", snap.VersionMajor, snap.VersionMinor),
			snap.SnapshotID.String()[:8],
			string(snap.ChangeType),
			snap.ChangeRationale,
			snap.CreatedBy,
			snap.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

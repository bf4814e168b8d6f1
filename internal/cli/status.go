package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/semreg/internal/reg"
	"github.com/roach88/semreg/internal/store"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show active snapshot counts per object type",
		Long: `Count the active (head-of-chain) snapshots per object type.

Example:
  semreg status --db ./semreg.db
  semreg status --db ./semreg.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, rootOpts)
		},
	}
	return cmd
}

func runStatus(cmd *cobra.Command, opts *RootOptions) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	counts, err := st.CountActiveByType(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count snapshots", err)
	}

	if opts.Format == "json" {
		out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		byType := map[string]int{}
		total := 0
		for t, n := range counts {
			byType[string(t)] = n
			total += n
		}
		return out.Success(map[string]any{
			"active_by_type": byType,
			"total_active":   total,
		})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Object Type", "Active")
	total := 0
	for _, t := range reg.AllObjectTypes {
		n := counts[t]
		if n == 0 {
			continue
		}
		if err := table.Append(string(t), fmt.Sprintf("%d", n)); err != nil {
			return err
		}
		total += n
	}
	if err := table.Append("total", fmt.Sprintf("%d", total)); err != nil {
		return err
	}
	return table.Render()
}

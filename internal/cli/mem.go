package cli

import (
	"github.com/spf13/cobra"
	"github.com/zfskit/ddtstat/internal/stat"
)

// newMemCmd creates the mem command.
func newMemCmd(env *Env, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mem <pool>",
		Short: "Estimated in-core size of the pool's dedup table",
		Long: `Reports how much memory the pool's dedup table occupies in core,
computed as the DDT entry count times the per-entry core size from the
pool status report.

With -p the figure is a percentage of the host's physical memory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(cmd.Context(), env, opts, stat.Mem, args[0])
		},
	}
}

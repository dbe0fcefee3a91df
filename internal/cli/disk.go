package cli

import (
	"github.com/spf13/cobra"
	"github.com/zfskit/ddtstat/internal/stat"
)

// newDiskCmd creates the disk command.
func newDiskCmd(env *Env, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "disk <pool>",
		Short: "Disk space reclaimed by dedup on the pool",
		Long: `Reports the disk space deduplication has saved on the pool: the
referenced logical size minus the allocated logical size of the DDT
totals row. A report claiming more allocated than referenced space
yields a negative figure rather than an error.

With -p the figure is a percentage of the pool's total capacity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(cmd.Context(), env, opts, stat.Disk, args[0])
		},
	}
}

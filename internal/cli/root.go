// Package cli implements the ddtstat command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	dderrors "github.com/zfskit/ddtstat/internal/errors"
	"github.com/zfskit/ddtstat/internal/pool"
	"github.com/zfskit/ddtstat/internal/sysmem"
	"github.com/zfskit/ddtstat/internal/units"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Output helpers.
	errorIcon = color.New(color.FgRed).Sprint("✗")
	dim       = color.New(color.Faint).SprintFunc()
)

// Env carries the external collaborators the commands talk to. Zero
// fields fall back to the live implementations; tests fill them with
// fakes and capture Stdout.
type Env struct {
	// Pool answers zpool queries. Defaults to the zpool binary.
	Pool pool.Querier

	// Mem answers the host physical memory query. Defaults to
	// /proc/meminfo.
	Mem sysmem.Querier

	// Stdout receives the single result line. Defaults to os.Stdout.
	Stdout io.Writer
}

func (e *Env) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

// rootOptions holds the flag state shared by the mem and disk commands.
type rootOptions struct {
	divisor    int64 // unit divisor from the last -k/-m/-g/-t flag
	divisorSet bool
	percent    bool
	verbosity  int
	configPath string
}

// unitValue binds one unit flag to the shared divisor. pflag calls Set in
// command-line order, so the last unit flag given is the one that sticks.
type unitValue struct {
	opts  *rootOptions
	scale int64
}

func (u *unitValue) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		u.opts.divisor = u.scale
		u.opts.divisorSet = true
	}
	return nil
}

func (u *unitValue) Type() string   { return "bool" }
func (u *unitValue) String() string { return "false" }

var _ pflag.Value = (*unitValue)(nil)

// NewRootCmd creates the root command.
func NewRootCmd(env *Env) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ddtstat",
		Short: "Report dedup table statistics for a ZFS pool",
		Long: `Ddtstat derives two figures from a pool's dedup table (DDT):
the estimated amount of memory the table occupies in core, and the disk
space deduplication has saved.

Both are read from the pool's status report and printed as a single
integer in the selected unit.`,
		Example: `  ddtstat mem tank         # DDT core footprint of tank, in bytes
  ddtstat -m disk tank     # disk space saved on tank, in MiB
  ddtstat -p mem tank      # DDT footprint as a percentage of host RAM`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	for _, unit := range []struct {
		name, short, help string
		scale             int64
	}{
		{"kib", "k", "report in KiB", units.KiB},
		{"mib", "m", "report in MiB", units.MiB},
		{"gib", "g", "report in GiB", units.GiB},
		{"tib", "t", "report in TiB", units.TiB},
	} {
		pf.VarP(&unitValue{opts: opts, scale: unit.scale}, unit.name, unit.short, unit.help)
		pf.Lookup(unit.name).NoOptDefVal = "true"
	}
	pf.BoolVarP(&opts.percent, "percent", "p", false,
		"report as a percentage of the total (host memory for mem, pool capacity for disk)")
	pf.CountVarP(&opts.verbosity, "verbose", "v", "raise stderr diagnostic verbosity (repeatable)")
	pf.StringVar(&opts.configPath, "config", "", "alternate config file path")

	rootCmd.AddCommand(newMemCmd(env, opts))
	rootCmd.AddCommand(newDiskCmd(env, opts))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ddtstat %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd(&Env{})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", errorIcon, err.Error())
		var de *dderrors.DdtError
		if errors.As(err, &de) && de.Hint != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", dim(de.Hint))
		}
		return err
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/zfskit/ddtstat/internal/config"
	"github.com/zfskit/ddtstat/internal/logging"
	"github.com/zfskit/ddtstat/internal/pool"
	"github.com/zfskit/ddtstat/internal/report"
	"github.com/zfskit/ddtstat/internal/stat"
	"github.com/zfskit/ddtstat/internal/sysmem"

	dderrors "github.com/zfskit/ddtstat/internal/errors"
)

// runStat is the one pipeline both subcommands share: validate the pool,
// derive the divisor, fetch and parse the status report, compute, print.
// Any failure aborts with nothing on stdout.
func runStat(ctx context.Context, env *Env, opts *rootOptions, metric stat.Metric, poolName string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, opts.verbosity)

	querier := env.Pool
	if querier == nil {
		querier, err = pool.NewCLI(cfg.Zpool)
		if err != nil {
			return err
		}
	}

	pools, err := querier.Pools(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(pools, poolName) {
		return dderrors.UnknownPool(poolName, pools)
	}

	divisor := opts.divisor
	if !opts.divisorSet {
		divisor = cfg.UnitDivisor()
	}

	// Percent mode trumps any unit flag: the divisor becomes a
	// hundredth of whichever total this metric is normalized against.
	if opts.percent {
		var total int64
		switch metric {
		case stat.Mem:
			mq := env.Mem
			if mq == nil {
				mq = &sysmem.Proc{}
			}
			total, err = mq.TotalBytes()
			if err != nil {
				return fmt.Errorf("host memory query failed: %w", err)
			}
		case stat.Disk:
			total, err = querier.Capacity(ctx, poolName)
			if err != nil {
				return err
			}
		}
		divisor = total / 100
	}
	log.Infof("computing %s for pool %s with divisor %d (percent=%v)",
		metric, poolName, divisor, opts.percent)

	text, err := querier.Status(ctx, poolName)
	if err != nil {
		return err
	}

	stats, err := report.Parse(text)
	if err != nil {
		return err
	}
	log.Debugf("parsed stats: entries=%d core=%dB referenced=%d allocated=%d",
		stats.Entries, stats.CoreBytesPerEntry, stats.ReferencedBytes, stats.AllocatedBytes)

	value, err := stat.Compute(stats, stat.Request{
		Metric:  metric,
		Divisor: divisor,
		Percent: opts.percent,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(env.stdout(), value)
	return nil
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadFrom(opts.configPath)
	}
	return config.Load()
}

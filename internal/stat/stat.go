// Package stat computes the two dedup metrics from parsed report figures.
package stat

import (
	"fmt"

	"github.com/zfskit/ddtstat/internal/errors"
	"github.com/zfskit/ddtstat/internal/report"
)

// Metric selects which figure a request computes.
type Metric string

const (
	// Mem is the estimated in-core footprint of the DDT.
	Mem Metric = "mem"
	// Disk is the disk space reclaimed by dedup.
	Disk Metric = "disk"
)

// Request describes one metric computation. Divisor is a fixed unit scale
// (1, 1024, 1024^2, ...) or, when Percent is set, total/100 for whichever
// total the metric is normalized against. The calculator is unit-agnostic:
// it only ever sees the final divisor.
type Request struct {
	Metric  Metric
	Divisor int64
	Percent bool
}

// Compute returns the requested metric, scaled by the request divisor with
// division truncating toward zero. Only the requested metric is evaluated.
// Disk may be negative when a report claims more allocated than referenced
// space; the negative value propagates rather than being clamped, so a
// broken report is visible instead of silently reading as zero savings.
func Compute(stats *report.DedupStats, req Request) (int64, error) {
	if req.Divisor == 0 {
		return 0, errors.DivisionUndefined()
	}

	switch req.Metric {
	case Mem:
		return stats.Entries * stats.CoreBytesPerEntry / req.Divisor, nil
	case Disk:
		return (stats.ReferencedBytes - stats.AllocatedBytes) / req.Divisor, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", req.Metric)
	}
}

// Package report extracts dedup table statistics from the free-form text
// of a `zpool status -D` report.
//
// Only two lines of the report matter: the DDT declaration line,
//
//	dedup: DDT entries 2437, size 972B on disk, 165B in core
//
// and the Total row of the DDT histogram,
//
//	Total    2.38K    296M    294M    294M    2.39K    298M    296M    296M
//
// where the columns after the refcount bucket are the allocated
// blocks/LSIZE/PSIZE/DSIZE followed by the referenced ones. Everything
// else in the report is ignored. Extraction is anchored on the "DDT
// entries" and "Total" labels rather than line positions, so unrelated
// format drift does not silently shift the columns.
package report

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/zfskit/ddtstat/internal/errors"
	"github.com/zfskit/ddtstat/internal/units"
)

// DedupStats holds the figures extracted from one pool status report.
// Immutable after Parse returns it.
type DedupStats struct {
	// Entries is the number of unique-block records in the DDT.
	Entries int64

	// CoreBytesPerEntry is the average in-memory footprint of one
	// DDT entry, in bytes.
	CoreBytesPerEntry int64

	// ReferencedBytes is the logical size the pool would occupy with
	// no dedup applied (referenced LSIZE of the Total row).
	ReferencedBytes int64

	// AllocatedBytes is the logical size actually stored after dedup
	// (allocated LSIZE of the Total row). A malformed report can put
	// this above ReferencedBytes; Parse does not reject that.
	AllocatedBytes int64
}

const (
	summaryLabel = "DDT entries"
	totalsLabel  = "Total"

	// Total row: refcnt bucket, then blocks/LSIZE/PSIZE/DSIZE twice.
	totalsMinFields = 7
	allocLsizeField = 2
	refLsizeField   = 6
)

// Parse scans the raw status text for one pool and returns its dedup
// statistics. It fails with DdtSummaryNotFound or TotalsRowNotFound when
// the corresponding line is absent, and FieldCountMismatch when a located
// line is missing a required field. The scan stops as soon as both lines
// have been consumed.
func Parse(text string) (*DedupStats, error) {
	var (
		stats      DedupStats
		haveHeader bool
		haveTotals bool
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() && !(haveHeader && haveTotals) {
		line := sc.Text()

		if !haveHeader && strings.Contains(line, summaryLabel) {
			ok, err := parseSummary(line, &stats)
			if err != nil {
				return nil, err
			}
			haveHeader = ok
			continue
		}

		if !haveTotals && strings.HasPrefix(strings.TrimSpace(line), totalsLabel) {
			if err := parseTotals(line, &stats); err != nil {
				return nil, err
			}
			haveTotals = true
		}
	}

	if !haveHeader {
		return nil, errors.DdtSummaryNotFound()
	}
	if !haveTotals {
		return nil, errors.TotalsRowNotFound()
	}
	return &stats, nil
}

// parseSummary extracts the entry count and per-entry core size from the
// declaration line. A line that carries the label but whose first
// comma-delimited segment does not end in an integer is not a declaration
// at all, so the caller keeps scanning (and ultimately reports
// DdtSummaryNotFound rather than inventing a zero count).
func parseSummary(line string, stats *DedupStats) (bool, error) {
	segments := strings.Split(line, ",")

	head := strings.Fields(segments[0])
	if len(head) == 0 {
		return false, nil
	}
	entries, err := strconv.ParseInt(head[len(head)-1], 10, 64)
	if err != nil || entries < 0 {
		return false, nil
	}

	// "<n>B in core" lives in the third segment.
	if len(segments) < 3 {
		return false, errors.FieldCountMismatch(line, 3, len(segments))
	}
	core := strings.Fields(segments[2])
	if len(core) < 3 || core[1] != "in" || core[2] != "core" {
		return false, errors.FieldCountMismatch(line, 3, len(core))
	}
	coreBytes, err := strconv.ParseInt(strings.TrimSuffix(core[0], "B"), 10, 64)
	if err != nil || coreBytes < 0 {
		return false, errors.FieldCountMismatch(line, 3, len(core))
	}

	stats.Entries = entries
	stats.CoreBytesPerEntry = coreBytes
	return true, nil
}

// parseTotals extracts the allocated and referenced LSIZE columns from the
// histogram Total row. strings.Fields collapses the aligned space runs, so
// the columns are addressed by field index after the Total label.
func parseTotals(line string, stats *DedupStats) error {
	fields := strings.Fields(line)
	if len(fields) < totalsMinFields {
		return errors.FieldCountMismatch(line, totalsMinFields, len(fields))
	}

	alloc, err := units.ParseSize(fields[allocLsizeField])
	if err != nil {
		return err
	}
	ref, err := units.ParseSize(fields[refLsizeField])
	if err != nil {
		return err
	}

	stats.AllocatedBytes = alloc
	stats.ReferencedBytes = ref
	return nil
}

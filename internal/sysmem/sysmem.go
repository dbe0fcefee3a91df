// Package sysmem reports the host's physical memory size, used to
// normalize the mem metric when a percentage is requested.
package sysmem

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Querier returns the host's total physical memory in bytes.
type Querier interface {
	TotalBytes() (int64, error)
}

// Proc reads physical memory from the procfs meminfo file.
type Proc struct {
	// Path overrides /proc/meminfo, for tests.
	Path string
}

const memInfoPath = "/proc/meminfo"

// TotalBytes parses the MemTotal line of /proc/meminfo. The kernel
// reports it in kB.
func (p *Proc) TotalBytes() (int64, error) {
	path := p.Path
	if path == "" {
		path = memInfoPath
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "MemTotal:" {
			continue
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unparseable MemTotal in %s: %w", path, err)
		}
		return kb << 10, nil
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("no MemTotal line in %s", path)
}

// Fixed is a Querier returning a constant, for tests.
type Fixed int64

func (f Fixed) TotalBytes() (int64, error) {
	return int64(f), nil
}

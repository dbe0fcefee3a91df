// Ddtstat - dedup table statistics for ZFS pools
package main

import (
	"os"

	"github.com/zfskit/ddtstat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

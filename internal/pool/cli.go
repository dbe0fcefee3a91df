package pool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cli/safeexec"
	"github.com/zfskit/ddtstat/internal/errors"
)

// CLI is the live Querier backed by the zpool binary.
type CLI struct {
	// zpool is the resolved path to the binary.
	zpool string
}

// NewCLI locates zpool and returns a live querier. An explicit binary
// path overrides the PATH lookup (config `zpool:` key); an empty path
// resolves via safeexec, which skips the working directory on lookup.
func NewCLI(binary string) (*CLI, error) {
	if binary != "" {
		return &CLI{zpool: binary}, nil
	}
	path, err := safeexec.LookPath("zpool")
	if err != nil {
		return nil, errors.PoolQueryFailed("lookup", err)
	}
	return &CLI{zpool: path}, nil
}

// Status returns the raw `zpool status -D` report for a pool.
func (c *CLI) Status(ctx context.Context, pool string) (string, error) {
	out, err := c.run(ctx, "status", "-D", pool)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Capacity returns the pool's total size in bytes, via the parseable
// form of `zpool get size`.
func (c *CLI) Capacity(ctx context.Context, pool string) (int64, error) {
	out, err := c.run(ctx, "get", "-Hp", "-o", "value", "size", pool)
	if err != nil {
		return 0, err
	}
	size, perr := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if perr != nil {
		return 0, errors.PoolQueryFailed("get size", fmt.Errorf("unparseable size %q: %w", strings.TrimSpace(out), perr))
	}
	return size, nil
}

// Pools returns the names of all imported pools.
func (c *CLI) Pools(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "list", "-H", "-o", "name")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// run executes one zpool subcommand, folding captured stderr into the
// returned error so failures name what zpool actually complained about.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.zpool, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		op := args[0]
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", errors.PoolQueryFailed(op, err)
	}
	return string(out), nil
}

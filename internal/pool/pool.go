// Package pool queries ZFS pools through the zpool command line tool.
package pool

import "context"

// Querier is the read-only view of the pools on a host. The CLI
// implementation shells out to zpool; tests use Fake.
type Querier interface {
	// Status returns the raw dedup status report for a pool, as
	// printed by `zpool status -D <pool>`.
	Status(ctx context.Context, pool string) (string, error)

	// Capacity returns the total capacity of a pool in bytes.
	Capacity(ctx context.Context, pool string) (int64, error)

	// Pools returns the names of all imported pools.
	Pools(ctx context.Context) ([]string, error)
}

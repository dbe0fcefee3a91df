package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dderrors "github.com/zfskit/ddtstat/internal/errors"
	"github.com/zfskit/ddtstat/internal/pool"
	"github.com/zfskit/ddtstat/internal/sysmem"
)

// tankStatus is the fake report for pool "tank": 1000 DDT entries at 320B
// in core, 6G allocated against 10G referenced (4 GiB saved).
const tankStatus = `  pool: tank
 state: ONLINE

 dedup: DDT entries 1000, size 972B on disk, 320B in core

bucket              allocated                       referenced
______   ______________________________   ______________________________
refcnt   blocks   LSIZE   PSIZE   DSIZE   blocks   LSIZE   PSIZE   DSIZE
------   ------   -----   -----   -----   ------   -----   -----   -----
 Total    1000     6G      5.9G    5.9G    1.48K    10G     9.9G    9.9G
`

func testEnv() *Env {
	return &Env{
		Pool: &pool.Fake{
			StatusText: map[string]string{"tank": tankStatus},
			Capacities: map[string]int64{"tank": 40 << 30}, // 40 GiB
		},
		Mem: sysmem.Fixed(3_200_000),
	}
}

// runCLI executes the root command against env with an isolated config
// path, returning whatever was printed to stdout.
func runCLI(t *testing.T, env *Env, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	env.Stdout = &buf

	cmd := NewRootCmd(env)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

func TestMemBytes(t *testing.T) {
	out, err := runCLI(t, testEnv(), "mem", "tank")
	require.NoError(t, err)
	assert.Equal(t, "320000\n", out) // 1000 entries * 320B
}

func TestMemKiB(t *testing.T) {
	out, err := runCLI(t, testEnv(), "-k", "mem", "tank")
	require.NoError(t, err)
	assert.Equal(t, "312\n", out) // floor(320000/1024)
}

func TestDiskBytes(t *testing.T) {
	out, err := runCLI(t, testEnv(), "disk", "tank")
	require.NoError(t, err)
	assert.Equal(t, "4294967296\n", out) // 10G - 6G
}

func TestUnitFlagLastWins(t *testing.T) {
	// -k then -g selects the GiB divisor, not KiB.
	out, err := runCLI(t, testEnv(), "-k", "-g", "disk", "tank")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	// And the other way around.
	out, err = runCLI(t, testEnv(), "-g", "-k", "disk", "tank")
	require.NoError(t, err)
	assert.Equal(t, "4194304\n", out)
}

func TestDiskPercent(t *testing.T) {
	// 4 GiB saved on a 40 GiB pool: divisor is capacity/100.
	out, err := runCLI(t, testEnv(), "-p", "disk", "tank")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestPercentOverridesUnitFlag(t *testing.T) {
	// -k -p on disk still divides by poolCapacity/100, ignoring 1024.
	out, err := runCLI(t, testEnv(), "-k", "-p", "disk", "tank")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestMemPercent(t *testing.T) {
	// 320000B of DDT against 3.2MB of host memory: 10 percent.
	out, err := runCLI(t, testEnv(), "-p", "mem", "tank")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestUnknownPool(t *testing.T) {
	out, err := runCLI(t, testEnv(), "mem", "backup")
	require.Error(t, err)
	assert.Empty(t, out, "failures must produce no stdout output")

	var de *dderrors.DdtError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dderrors.ErrUnknownPool, de.Code)
}

func TestMalformedReportProducesNoOutput(t *testing.T) {
	env := testEnv()
	env.Pool = &pool.Fake{
		StatusText: map[string]string{"tank": "  pool: tank\n state: ONLINE\n"},
	}

	out, err := runCLI(t, env, "mem", "tank")
	require.Error(t, err)
	assert.Empty(t, out)

	var de *dderrors.DdtError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dderrors.ErrDdtSummaryNotFound, de.Code)
}

func TestInvalidSubcommand(t *testing.T) {
	out, err := runCLI(t, testEnv(), "cpu", "tank")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestMissingPoolArgument(t *testing.T) {
	out, err := runCLI(t, testEnv(), "mem")
	require.Error(t, err)
	assert.Empty(t, out)
}

package process_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/synthmc/pkg/adapters/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeYosys logs its script and creates the checkpoint the script asks for.
const fakeYosys = `#!/bin/sh
echo "$3" >> calls.log
case "$3" in
  *explode*) echo "ERROR: explode is not a pass" >&2; exit 1 ;;
  *noisy*) echo "Warning: wire x is undriven" ;;
  *slow*) exec sleep 5 ;;
esac
touch design.il
`

func setup(t *testing.T) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "fake-yosys")
	require.NoError(t, os.WriteFile(bin, []byte(fakeYosys), 0o755))
	return dir, bin
}

func readLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "calls.log"))
	require.NoError(t, err)
	return string(data)
}

func TestRunner_Invoke(t *testing.T) {
	dir, bin := setup(t)
	r := process.NewRunner(process.WithYosys(bin), process.WithBaseDir(dir))

	t.Run("First Pass Starts Empty", func(t *testing.T) {
		_, err := r.Invoke(context.Background(), "read_verilog", "-lib techlib/cells_sim.v")
		require.NoError(t, err)
		assert.Equal(t, "read_verilog -lib techlib/cells_sim.v; write_rtlil design.il\n", readLog(t, dir))
	})

	t.Run("Later Passes Load The Checkpoint", func(t *testing.T) {
		_, err := r.Invoke(context.Background(), "proc", "")
		require.NoError(t, err)
		assert.Contains(t, readLog(t, dir), "read_rtlil design.il; proc; write_rtlil design.il\n")
	})

	t.Run("Warnings Do Not Fail", func(t *testing.T) {
		res, err := r.Invoke(context.Background(), "noisy", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Warning: wire x is undriven"}, res.Warnings)
		assert.Positive(t, res.Duration)
	})

	t.Run("Non-Zero Exit Fails", func(t *testing.T) {
		_, err := r.Invoke(context.Background(), "explode", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "explode is not a pass")
	})
}

func TestRunner_InitialDesign(t *testing.T) {
	dir, bin := setup(t)
	r := process.NewRunner(process.WithYosys(bin), process.WithBaseDir(dir), process.WithDesign("input.il"))

	assert.Equal(t, "read_rtlil input.il; proc; write_rtlil design.il", r.Script("proc", ""))

	_, err := r.Invoke(context.Background(), "proc", "")
	require.NoError(t, err)
	assert.Equal(t, "read_rtlil design.il; opt -fast; write_rtlil design.il", r.Script("opt", "-fast"))
}

func TestRunner_DesignOnRepeatedRuns(t *testing.T) {
	dir, bin := setup(t)
	newRunner := func() *process.Runner {
		return process.NewRunner(process.WithYosys(bin), process.WithBaseDir(dir), process.WithDesign("top.il"))
	}
	ctx := context.Background()

	// 1. First run reads the design and leaves a checkpoint behind
	first := newRunner()
	require.NoError(t, first.Prepare(ctx, true))
	_, err := first.Invoke(ctx, "read_verilog", "-lib techlib/cells_sim.v")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "design.il"))

	// 2. A second fresh run starts from the design again
	second := newRunner()
	require.NoError(t, second.Prepare(ctx, true))
	_, err = second.Invoke(ctx, "read_verilog", "-lib techlib/cells_sim.v")
	require.NoError(t, err)

	assert.Equal(t,
		"read_rtlil top.il; read_verilog -lib techlib/cells_sim.v; write_rtlil design.il\n"+
			"read_rtlil top.il; read_verilog -lib techlib/cells_sim.v; write_rtlil design.il\n",
		readLog(t, dir))

	// 3. A resumed run keeps the checkpoint
	resumed := newRunner()
	require.NoError(t, resumed.Prepare(ctx, false))
	assert.Equal(t, "read_rtlil design.il; opt; write_rtlil design.il", resumed.Script("opt", ""))
}

func TestRunner_PrepareWithoutDesignKeepsCheckpoint(t *testing.T) {
	dir, bin := setup(t)
	ckpt := filepath.Join(dir, "design.il")
	require.NoError(t, os.WriteFile(ckpt, []byte("module top\n"), 0o644))

	r := process.NewRunner(process.WithYosys(bin), process.WithBaseDir(dir))
	require.NoError(t, r.Prepare(context.Background(), true))

	assert.FileExists(t, ckpt)
	assert.Equal(t, "read_rtlil design.il; proc; write_rtlil design.il", r.Script("proc", ""))
}

func TestRunner_Registry(t *testing.T) {
	dir, bin := setup(t)
	r := process.NewRunner(
		process.WithYosys(bin),
		process.WithBaseDir(dir),
		process.WithRegistry(map[string]process.ToolConfig{
			"abc": {
				Name:        "abc",
				Command:     "sh",
				Args:        []string{"-c", `echo "$SYNTHMC_COMMAND|$SYNTHMC_ARGS|$MODE|$(basename $SYNTHMC_CHECKPOINT)"`},
				Environment: map[string]string{"MODE": "external"},
			},
		}),
	)

	res, err := r.Invoke(context.Background(), "abc", "-liberty techlib/minecraft.lib")
	require.NoError(t, err)
	assert.Equal(t, "abc|-liberty techlib/minecraft.lib|external|design.il\n", res.Output)

	_, statErr := os.Stat(filepath.Join(dir, "calls.log"))
	assert.True(t, os.IsNotExist(statErr), "registered passes bypass yosys")
}

func TestRunner_Cancellation(t *testing.T) {
	dir, bin := setup(t)
	r := process.NewRunner(process.WithYosys(bin), process.WithBaseDir(dir))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := r.Invoke(ctx, "slow", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunner_FullySelected(t *testing.T) {
	r := process.NewRunner()

	ok, err := r.FullySelected(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = r.FullySelected(context.Background(), []string{"*"})
	assert.True(t, ok)

	ok, _ = r.FullySelected(context.Background(), []string{"cpu/alu"})
	assert.False(t, ok)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing File", func(t *testing.T) {
		cfg, err := process.LoadConfig(filepath.Join(dir, "none.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Registry())
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "tools.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
yosys: /opt/yosys/bin/yosys
tools:
  - name: abc
    command: yosys-abc
    args: ["-s"]
    env:
      ABC_RC: /etc/abc.rc
`), 0o644))

		cfg, err := process.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/opt/yosys/bin/yosys", cfg.Yosys)
		reg := cfg.Registry()
		require.Contains(t, reg, "abc")
		assert.Equal(t, "yosys-abc", reg["abc"].Command)
		assert.Equal(t, "/etc/abc.rc", reg["abc"].Environment["ABC_RC"])
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(dir, "tools.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"tools":[{"name":"stat","command":"true"}]}`), 0o644))

		cfg, err := process.LoadConfig(path)
		require.NoError(t, err)
		assert.Contains(t, cfg.Registry(), "stat")
	})

	t.Run("Missing Command", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tools:\n  - name: abc\n"), 0o644))

		_, err := process.LoadConfig(path)
		assert.Error(t, err)
	})
}

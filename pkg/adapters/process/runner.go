package process

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/ports"
)

// DefaultCheckpoint is the RTLIL file that carries the design between steps.
const DefaultCheckpoint = "design.il"

const warningPrefix = "Warning:"

// Runner is a ports.Host that runs every pass in a fresh yosys process.
// The design survives between passes as an RTLIL checkpoint in the working directory.
// Passes listed in the registry run their own executable instead.
type Runner struct {
	yosys      string
	baseDir    string
	checkpoint string
	design     string
	registry   map[string]ToolConfig
	logger     *slog.Logger
}

var (
	_ ports.Host     = (*Runner)(nil)
	_ ports.Preparer = (*Runner)(nil)
)

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry routes the listed passes to their own executables.
func WithRegistry(tools map[string]ToolConfig) RunnerOption {
	return func(r *Runner) {
		for name, tool := range tools {
			r.registry[name] = tool
		}
	}
}

// WithYosys sets the yosys binary.
func WithYosys(bin string) RunnerOption {
	return func(r *Runner) {
		if bin != "" {
			r.yosys = bin
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithCheckpoint sets the checkpoint file name, relative to the base directory.
func WithCheckpoint(name string) RunnerOption {
	return func(r *Runner) {
		if name != "" {
			r.checkpoint = name
		}
	}
}

// WithDesign sets the RTLIL design read before the first pass when no checkpoint exists yet.
func WithDesign(path string) RunnerOption {
	return func(r *Runner) {
		r.design = path
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a new process host.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		yosys:      "yosys",
		checkpoint: DefaultCheckpoint,
		registry:   make(map[string]ToolConfig),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a pass to the registry.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = ToolConfig{Name: name, Command: command, Args: args}
}

// CheckpointPath returns the checkpoint location.
func (r *Runner) CheckpointPath() string {
	if filepath.IsAbs(r.checkpoint) {
		return r.checkpoint
	}
	return filepath.Join(r.baseDir, r.checkpoint)
}

// Invoke runs one pass and waits for it.
func (r *Runner) Invoke(ctx context.Context, command, args string) (ports.Result, error) {
	var cmd *exec.Cmd
	if tool, ok := r.registry[command]; ok {
		cmd = r.toolCommand(ctx, tool, command, args)
	} else {
		cmd = exec.CommandContext(ctx, r.yosys, "-q", "-p", r.Script(command, args))
	}
	cmd.Dir = r.baseDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("exec", "bin", cmd.Path, "command", command, "args", args)
	start := time.Now()
	err := cmd.Run()

	res := ports.Result{
		Output:   stdout.String(),
		Warnings: append(scanWarnings(stdout.String()), scanWarnings(stderr.String())...),
		Duration: time.Since(start),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		return res, fmt.Errorf("execution failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return res, nil
}

// Prepare drops the checkpoint left by an earlier run when a fresh run has a design
// to start from, so the first pass reads the design again.
// Resumed runs and runs without a design keep the checkpoint as their input.
func (r *Runner) Prepare(_ context.Context, fresh bool) error {
	if !fresh || r.design == "" {
		return nil
	}
	path := r.CheckpointPath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to reset checkpoint %s: %w", path, err)
	}
	r.logger.Debug("checkpoint reset", "path", path, "design", r.design)
	return nil
}

// Script returns the yosys script that runs one pass against the checkpoint.
func (r *Runner) Script(command, args string) string {
	ckpt := r.checkpoint
	var sb strings.Builder
	switch {
	case r.exists(r.CheckpointPath()):
		fmt.Fprintf(&sb, "read_rtlil %s; ", ckpt)
	case r.design != "":
		fmt.Fprintf(&sb, "read_rtlil %s; ", r.design)
	}
	sb.WriteString(domain.Step{Command: command, Args: args}.Line())
	fmt.Fprintf(&sb, "; write_rtlil %s", ckpt)
	return sb.String()
}

func (r *Runner) toolCommand(ctx context.Context, tool ToolConfig, command, args string) *exec.Cmd {
	argv := append(append([]string(nil), tool.Args...), strings.Fields(args)...)
	cmd := exec.CommandContext(ctx, tool.Command, argv...)

	env := []string{
		"SYNTHMC_COMMAND=" + command,
		"SYNTHMC_ARGS=" + args,
		"SYNTHMC_CHECKPOINT=" + r.CheckpointPath(),
	}
	for k, v := range tool.Environment {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = append(cmd.Environ(), env...)
	return cmd
}

// FullySelected answers the precondition from the selection arguments alone.
// Any explicit selection other than the wildcard narrows the design.
func (r *Runner) FullySelected(_ context.Context, selection []string) (bool, error) {
	return domain.FullSelection(selection), nil
}

func (r *Runner) exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func scanWarnings(out string) []string {
	var warnings []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, warningPrefix) {
			warnings = append(warnings, line)
		}
	}
	return warnings
}

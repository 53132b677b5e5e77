package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/synthmc"
	"github.com/aretw0/synthmc/internal/adapters"
	"github.com/aretw0/synthmc/pkg/adapters/process"
	redisadapter "github.com/aretw0/synthmc/pkg/adapters/redis"
	"github.com/aretw0/synthmc/pkg/adapters/script"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/observability"
	"github.com/aretw0/synthmc/pkg/ports"
)

// DefaultToolsFile is looked up in the working directory when no tools file is given.
const DefaultToolsFile = "tools.yaml"

// EngineOptions selects the host and the report store behind an engine.
type EngineOptions struct {
	Yosys      string
	Workdir    string
	Checkpoint string
	Design     string
	ToolsPath  string
	// Emit writes the steps to a yosys script instead of executing them.
	Emit      string
	ReportDir string
	RedisURL  string
	Debug     bool
}

// Session bundles an engine with the resources it holds open.
type Session struct {
	Engine  *synthmc.Engine
	Metrics *observability.Metrics
	Logger  *slog.Logger
	closers []func() error
}

// Close releases the script file and store connections.
func (s *Session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStore returns the redis store when a URL is given, the file store otherwise.
func OpenStore(opts EngineOptions) (ports.ReportStore, func() error, error) {
	if opts.RedisURL != "" {
		store, err := redisadapter.New(opts.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return adapters.NewFileStore(opts.ReportDir), func() error { return nil }, nil
}

// NewSession initializes an engine with standard CLI conventions.
// header heads the emitted script, if any.
func NewSession(opts EngineOptions, header string, hooks ...domain.LifecycleHooks) (*Session, error) {
	logger := createLogger(opts.Debug)
	s := &Session{
		Metrics: observability.NewMetrics(),
		Logger:  logger,
	}

	// 1. Host
	host, err := s.createHost(opts, header)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	// 2. Report store
	store, closeStore, err := OpenStore(opts)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("error opening report store: %w", err)
	}
	s.closers = append(s.closers, closeStore)

	// 3. Logger & Hooks
	engineOpts := []synthmc.Option{
		synthmc.WithLogger(logger),
		synthmc.WithHost(host),
		synthmc.WithReportStore(store),
		synthmc.WithLifecycleHooks(s.Metrics.Hooks()),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, synthmc.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	for _, h := range hooks {
		engineOpts = append(engineOpts, synthmc.WithLifecycleHooks(h))
	}

	s.Engine = synthmc.New(engineOpts...)
	return s, nil
}

func (s *Session) createHost(opts EngineOptions, header string) (ports.Host, error) {
	if opts.Emit != "" {
		f, err := os.Create(opts.Emit)
		if err != nil {
			return nil, fmt.Errorf("error creating script: %w", err)
		}
		s.closers = append(s.closers, f.Close)
		return script.NewHost(f, header)
	}

	toolsPath := opts.ToolsPath
	if toolsPath == "" {
		toolsPath = filepath.Join(opts.Workdir, DefaultToolsFile)
	}
	cfg, err := process.LoadConfig(toolsPath)
	if err != nil {
		return nil, err
	}

	yosys := opts.Yosys
	if yosys == "" {
		yosys = cfg.Yosys
	}
	return process.NewRunner(
		process.WithLogger(s.Logger),
		process.WithYosys(yosys),
		process.WithBaseDir(opts.Workdir),
		process.WithCheckpoint(opts.Checkpoint),
		process.WithDesign(opts.Design),
		process.WithRegistry(cfg.Registry()),
	), nil
}

func scriptHeader(tokens []string) string {
	return strings.TrimSpace("synth_mc " + strings.Join(tokens, " "))
}

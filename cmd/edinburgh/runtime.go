package main

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vinayprograms/edinburgh/internal/agents"
	"github.com/vinayprograms/edinburgh/internal/config"
	"github.com/vinayprograms/edinburgh/internal/logging"
	"github.com/vinayprograms/edinburgh/internal/render"
	"github.com/vinayprograms/edinburgh/internal/tools"
)

// runtime carries the streams and lazily built dependencies shared by every
// command.
type runtime struct {
	ctx    context.Context
	cli    *CLI
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *logging.Logger
	tools  *tools.Registry
	agents *agents.Catalog
}

func newRuntime(ctx context.Context, cli *CLI, stdin io.Reader, stdout, stderr io.Writer) *runtime {
	return &runtime{ctx: ctx, cli: cli, stdin: stdin, stdout: stdout, stderr: stderr}
}

// config loads the config file once, applying command-line overrides.
func (rt *runtime) config() (*config.Config, error) {
	if rt.cfg != nil {
		return rt.cfg, nil
	}
	cfg, err := config.Load(rt.cli.Config)
	if err != nil {
		return nil, err
	}
	if rt.cli.LogLevel != "" {
		cfg.Log.Level = rt.cli.LogLevel
	}
	if rt.cli.LogFormat != "" {
		cfg.Log.Format = rt.cli.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rt.cfg = cfg
	return cfg, nil
}

// log returns the CLI logger, writing to stderr.
func (rt *runtime) log() (*logging.Logger, error) {
	if rt.logger != nil {
		return rt.logger, nil
	}
	cfg, err := rt.config()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New()
	logger.SetOutput(rt.stderr)
	if err := logger.SetFormat(cfg.Log.Format); err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	rt.logger = logger
	return logger, nil
}

// registry returns the tool registry built from config.
func (rt *runtime) registry() (*tools.Registry, error) {
	if rt.tools != nil {
		return rt.tools, nil
	}
	cfg, err := rt.config()
	if err != nil {
		return nil, err
	}
	logger, err := rt.log()
	if err != nil {
		return nil, err
	}
	reg := tools.NewRegistry(cfg)
	reg.SetLogger(logger.WithComponent("tools"))
	rt.tools = reg
	return reg, nil
}

// catalog returns built-in agents overlaid with the configured directory.
func (rt *runtime) catalog() (*agents.Catalog, error) {
	if rt.agents != nil {
		return rt.agents, nil
	}
	cfg, err := rt.config()
	if err != nil {
		return nil, err
	}
	catalog, err := agents.Load(cfg.Agents.Dir)
	if err != nil {
		return nil, err
	}
	rt.agents = catalog
	return catalog, nil
}

// renderOptions styles output only when stdout is a terminal.
func (rt *runtime) renderOptions() render.Options {
	opts := render.Options{Width: render.DefaultWidth}
	f, ok := rt.stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return opts
	}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		opts.Width = min(w, 120)
	}
	opts.Color = !rt.cli.NoColor && os.Getenv("NO_COLOR") == ""
	return opts
}

func (rt *runtime) close() {
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
}

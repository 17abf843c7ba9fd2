package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/robinvdvleuten/flux/config"
	"github.com/robinvdvleuten/flux/loader"
	"github.com/robinvdvleuten/flux/output"
	"github.com/robinvdvleuten/flux/telemetry"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands. Flags that are
// set override the configuration file.
type Globals struct {
	Config    string `help:"Configuration file." default:"flux.toml" type:"path"`
	Format    string `help:"Diagnostic format: text or json." placeholder:"FORMAT"`
	Color     string `help:"When to color output: auto, always or never." placeholder:"WHEN"`
	LogLevel  string `help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

// CLI is the root of the command tree.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information."`
	Globals

	Check    CheckCmd    `cmd:"" help:"Parse, analyze and check Flux sources."`
	Tokens   TokensCmd   `cmd:"" help:"Show the tokens of a Flux file."`
	AST      ASTCmd      `cmd:"" name:"ast" help:"Show the syntax tree of Flux sources."`
	Semantic SemanticCmd `cmd:"" help:"Show the semantic graph of Flux sources."`
	Watch    WatchCmd    `cmd:"" help:"Check Flux sources again whenever they change."`
	Repl     ReplCmd     `cmd:"" help:"Analyze Flux statements interactively."`
	Cfg      ConfigCmd   `cmd:"" name:"config" help:"Manage the configuration file."`
}

// Options returns the kong options shared by the binary and the tests.
func Options(cli *CLI) []kong.Option {
	return []kong.Option{
		kong.Name("flux"),
		kong.Description("Parse and analyze Flux queries."),
		kong.UsageOnError(),
		kong.Vars{"version": BuildVersion()},
		kong.Bind(&cli.Globals),
	}
}

// BuildVersion combines Version and CommitSHA for display.
func BuildVersion() string {
	version := Version
	if version == "" {
		version = "dev"
	}
	if CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, CommitSHA)
}

// session is the per invocation state derived from Globals.
type session struct {
	cfg       *config.Config
	log       *zap.Logger
	stdout    io.Writer
	stderr    io.Writer
	out       *theme
	errs      *theme
	styles    *output.Styles
	collector *telemetry.TimingCollector
}

// session loads the configuration, applies flag overrides and sets up
// logging and styling for the command being run.
func (g *Globals) session(ctx *kong.Context) (*session, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Format != "" {
		cfg.Output.Format = g.Format
	}
	if g.Color != "" {
		cfg.Output.Color = output.ColorMode(g.Color)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logger := newLogger(ctx.Stderr, level)
	logger.Debug("configuration loaded",
		zap.String("path", g.Config),
		zap.String("format", cfg.Output.Format),
		zap.String("color", string(cfg.Output.Color)))

	s := &session{
		cfg:    cfg,
		log:    logger,
		stdout: ctx.Stdout,
		stderr: ctx.Stderr,
		out:    newTheme(ctx.Stdout, cfg.Output.Color),
		errs:   newTheme(ctx.Stderr, cfg.Output.Color),
		styles: output.NewStylesWithMode(ctx.Stdout, cfg.Output.Color),
	}
	if g.Telemetry {
		s.collector = telemetry.NewTimingCollector()
	}
	return s, nil
}

// newLogger writes console formatted log lines at or above level to w.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

func (s *session) loader() *loader.Loader {
	return loader.New(loader.WithMaxDepth(s.cfg.Parser.MaxDepth))
}

func (s *session) json() bool {
	return s.cfg.Output.Format == "json"
}

// report prints the telemetry collected so far, if enabled.
func (s *session) report() {
	if s.collector == nil {
		return
	}
	_, _ = fmt.Fprintln(s.stderr)
	s.collector.Report(s.stderr, output.NewStylesWithMode(s.stderr, s.cfg.Output.Color))
}

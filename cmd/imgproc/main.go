package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ironsheep/image-transform/internal/imaging"
	"github.com/ironsheep/image-transform/internal/script"
	"github.com/ironsheep/image-transform/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `help:"Log level (debug, info, warn, error)." env:"IMAGE_TRANSFORM_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error"`
}

// RunCmd executes a script file, or stdin when no file is given.
type RunCmd struct {
	Script string `arg:"" optional:"" help:"Script file to execute. Reads stdin when omitted or '-'."`
	Dir    string `help:"Base directory for relative load/save paths. Defaults to the script's directory."`
	Strict bool   `help:"Stop at the first failing command."`
}

func (c *RunCmd) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var in io.Reader = os.Stdin
	dir := c.Dir
	if c.Script != "" && c.Script != "-" {
		f, err := os.Open(c.Script)
		if err != nil {
			return fmt.Errorf("could not open script %q: %w", c.Script, err)
		}
		defer f.Close()
		in = f
		if dir == "" {
			dir = filepath.Dir(c.Script)
		}
	}

	runner := script.NewRunner(imaging.NewProcessor(imaging.NewStore()), os.Stdout, logger)
	runner.Dir = dir
	runner.Strict = c.Strict

	stats, err := runner.Run(ctx, in)
	logger.Info("script finished", "executed", stats.Executed, "failed", stats.Failed)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d commands failed", stats.Failed, stats.Executed)
	}
	return nil
}

// ServeCmd runs the MCP server over stdin/stdout.
type ServeCmd struct{}

func (c *ServeCmd) Run(logger *slog.Logger) error {
	logger.Debug("starting server", "version", Version, "built", BuildTime, "commit", GitCommit)
	server.Version = Version
	srv := server.NewWithStore(imaging.NewStore(), logger)
	return srv.Run()
}

// VersionCmd prints build information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("imgproc %s\n", Version)
	fmt.Printf("  Build time: %s\n", BuildTime)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	return nil
}

var cli struct {
	Globals

	Run     RunCmd     `cmd:"" help:"Execute an image processing script."`
	Serve   ServeCmd   `cmd:"" help:"Serve the operation catalogue over MCP (stdin/stdout)."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("imgproc"),
		kong.Description("Load raster images, transform them and write them back out."),
		kong.UsageOnError(),
	)

	// Logs go to stderr; stdout carries script output or the MCP protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cli.LogLevel),
	}))
	slog.SetDefault(logger)
	imaging.SetLogger(logger)

	err := kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Package main provides vfsctl, a command line tool for inspecting a
// product's directory layout and manipulating files through the storage
// backends.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/jmgilman/go/vfs/config"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/logging"
	"github.com/jmgilman/go/vfs/metrics"
	"github.com/jmgilman/go/vfs/native"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// options are the global flags shared by every command.
type options struct {
	json      bool
	metrics   bool
	overwrite bool
	glob      bool
	logLevel  string
	logFormat string
}

// env is what a command runs against.
type env struct {
	ctx     context.Context
	opts    options
	backend core.Backend
	logger  *zap.Logger
	stdout  io.Writer
}

type command struct {
	usage string
	args  int // exact number of arguments
	run   func(e *env, args []string) error
}

var commands = map[string]command{
	"layout":       {"layout", 0, cmdLayout},
	"ensure":       {"ensure", 0, cmdEnsure},
	"canonicalize": {"canonicalize <path>", 1, cmdCanonicalize},
	"relative":     {"relative <source> <target>", 2, cmdRelative},
	"find":         {"find <root> <extension|pattern>", 2, cmdFind},
	"copy-tree":    {"copy-tree <source> <destination>", 2, cmdCopyTree},
	"delete-tree":  {"delete-tree <path>", 1, cmdDeleteTree},
	"cat":          {"cat <path>", 1, cmdCat},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("vfsctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.json, "json", false, "Print results and errors as JSON")
	fs.BoolVar(&opts.metrics, "metrics", false, "Print backend metrics to stderr on exit")
	fs.BoolVar(&opts.overwrite, "overwrite", false, "Replace existing files (copy-tree)")
	fs.BoolVar(&opts.glob, "glob", false, "Treat the find argument as a glob pattern")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (default from VFS_LOG_LEVEL, then warn)")
	fs.StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")
	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		printUsage(stderr)
		return 2
	}

	name, cmdArgs := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n", name)
		printUsage(stderr)
		return 2
	}
	if len(cmdArgs) != cmd.args {
		fmt.Fprintf(stderr, "Usage: vfsctl %s\n", cmd.usage)
		return 2
	}

	logger, err := newLogger(opts)
	if err != nil {
		return fail(stderr, opts, err)
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	e := &env{
		ctx:     ctx,
		opts:    opts,
		backend: metrics.Instrument(native.New(native.WithLogger(logger)), metrics.New(reg)),
		logger:  logger,
		stdout:  stdout,
	}

	err = cmd.run(e, cmdArgs)
	if opts.metrics {
		if merr := writeMetrics(stderr, reg); merr != nil {
			logger.Warn("failed to write metrics", zap.Error(merr))
		}
	}
	if err != nil {
		return fail(stderr, opts, err)
	}
	return 0
}

// newLogger builds the logger from flags, falling back to the environment.
func newLogger(opts options) (*zap.Logger, error) {
	cfg := logging.DefaultConfig()
	if level := firstNonEmpty(opts.logLevel, os.Getenv(config.EnvPrefix+"_LOG_LEVEL")); level != "" {
		cfg.Level = level
	}
	if format := firstNonEmpty(opts.logFormat, os.Getenv(config.EnvPrefix+"_LOG_FORMAT")); format != "" {
		cfg.Format = format
	}
	return logging.New(cfg)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// fail reports err and returns the exit code.
func fail(stderr io.Writer, opts options, err error) int {
	if opts.json {
		enc := json.NewEncoder(stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(errors.ToJSON(err))
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `vfsctl - inspect and manipulate product files

Usage: vfsctl [flags] <command> [args]

Flags:
  -json              Print results and errors as JSON
  -metrics           Print backend metrics to stderr on exit
  -overwrite         Replace existing files (copy-tree)
  -glob              Treat the find argument as a glob pattern
  -log-level <lvl>   debug, info, warn or error
  -log-format <fmt>  console or json

Commands:
  layout                            Print the resolved directory layout
  ensure                            Create the writable layout directories
  canonicalize <path>               Resolve ".." segments in a path
  relative <source> <target>        Print the path from source to target
  find <root> <extension|pattern>   List matching files below root
  copy-tree <source> <destination>  Copy a directory tree
  delete-tree <path>                Delete a directory tree
  cat <path>                        Print a file

Environment:
  VFS_COMPANY, VFS_PRODUCT, VFS_BASE_DIR, VFS_ENGINE_DIR, VFS_PROJECT_DIR,
  VFS_ROOT_ASCENT, VFS_USER_SETTINGS_DIR, VFS_COMMON_DATA_DIR,
  VFS_LAYOUT_FILE, VFS_LOG_LEVEL, VFS_LOG_FORMAT

Examples:
  VFS_COMPANY=Acme VFS_PRODUCT=Rocket vfsctl layout
  vfsctl relative /opt/acme/engine/ /opt/acme/game/content/
  vfsctl -glob find ./game/content "**/*.mesh"
  vfsctl -overwrite copy-tree ./game/saved ./backup`)
}

// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerate/internal/config"
	"github.com/tomtom215/cinerate/internal/logging"
	"github.com/tomtom215/cinerate/internal/metrics"
	"github.com/tomtom215/cinerate/internal/pipeline"
	"github.com/tomtom215/cinerate/internal/report"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors that should print usage and exit with exitUsage.
var errUsage = errors.New("usage")

// app carries what every command needs.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	printer *report.Printer
	stdout  io.Writer
	stderr  io.Writer
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"stats", "dataset summary", runStats},
	{"encode", "dump feature names, vectors, and labels", runEncode},
	{"train", "fit and evaluate a model", runTrain},
	{"predict", "train, then rate one title", runPredict},
	{"watch", "retrain when the data file changes", runWatch},
	{"env", "list configuration environment variables", runEnv},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cinerate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	dataPath := fs.String("data", "", "CSV catalog (default: built-in sample)")
	asJSON := fs.Bool("json", false, "write JSON output")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		usage(fs)
		return exitUsage
	}
	cmd, ok := lookup(fs.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "cinerate: unknown command %q\n\n", fs.Arg(0))
		usage(fs)
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "cinerate: %v\n", err)
		return exitError
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "cinerate: %v\n", err)
			return exitError
		}
	}

	logCfg := cfg.Logging.LoggingSettings()
	logCfg.Output = stderr
	logging.Init(logCfg)

	a := &app{
		cfg:     cfg,
		logger:  logging.Logger(),
		printer: report.NewPrinter(stdout, *asJSON),
		stdout:  stdout,
		stderr:  stderr,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	err = cmd.run(ctx, a, fs.Args()[1:])
	a.writeMetrics()

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, context.Canceled):
		logging.Info().Msg("interrupted")
		return exitError
	default:
		fmt.Fprintf(stderr, "cinerate: %v\n", err)
		return exitError
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Usage: cinerate [global flags] <command> [command flags]")
	fmt.Fprintln(out, "\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintln(out, "\nGlobal flags:")
	fs.PrintDefaults()
}

// sessionOptions maps configuration to pipeline options.
func (a *app) sessionOptions() pipeline.Options {
	return pipeline.Options{
		DataPath:     a.cfg.Data.Path,
		SplitRatio:   a.cfg.Data.SplitRatio,
		ModelKind:    a.cfg.Model.Kind,
		Train:        a.cfg.Model.TrainConfig(),
		TrainTimeout: a.cfg.Model.TrainTimeout,
	}
}

func (a *app) newSession(opts pipeline.Options) *pipeline.Session {
	return pipeline.NewSession(opts, a.logger)
}

// writeMetrics dumps collectors to the configured textfile, if any.
func (a *app) writeMetrics() {
	if err := metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		logging.Warn().Err(err).Str("path", a.cfg.Metrics.Textfile).Msg("failed to write metrics textfile")
	}
}

// subcommandFlags returns a FlagSet that reports errors through errUsage.
func (a *app) subcommandFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("cinerate "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parse parses subcommand flags and rejects positional arguments.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %v\n", fs.Args())
		return errUsage
	}
	return nil
}

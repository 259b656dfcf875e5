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
	"os"
	"slices"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerate/internal/config"
	"github.com/tomtom215/cinerate/internal/features"
	"github.com/tomtom215/cinerate/internal/logging"
	"github.com/tomtom215/cinerate/internal/pipeline"
	"github.com/tomtom215/cinerate/internal/regress"
	"github.com/tomtom215/cinerate/internal/report"
	"github.com/tomtom215/cinerate/internal/supervisor"
	"github.com/tomtom215/cinerate/internal/supervisor/services"
	"github.com/tomtom215/cinerate/internal/validation"
	"github.com/tomtom215/cinerate/internal/watcher"
)

// trainFlags registers model flags defaulting to the configured values.
func (a *app) trainFlags(fs *flag.FlagSet) *pipeline.Options {
	opts := a.sessionOptions()
	fs.StringVar(&opts.ModelKind, "model", opts.ModelKind, fmt.Sprintf("model kind %v", regress.Kinds()))
	fs.IntVar(&opts.Train.Epochs, "epochs", opts.Train.Epochs, "maximum training epochs")
	fs.IntVar(&opts.Train.BatchSize, "batch-size", opts.Train.BatchSize, "rows per normal-equation batch")
	fs.Float64Var(&opts.Train.ValidationSplit, "validation-split", opts.Train.ValidationSplit, "trailing fraction held out for validation loss")
	fs.Float64Var(&opts.Train.L2, "l2", opts.Train.L2, "ridge penalty")
	fs.Float64Var(&opts.SplitRatio, "split", opts.SplitRatio, "training fraction of the data")
	fs.DurationVar(&opts.TrainTimeout, "timeout", opts.TrainTimeout, "training time limit (0 for none)")
	return &opts
}

// checkOptions validates flag overrides the same way configuration is validated.
func checkOptions(opts *pipeline.Options) error {
	if opts.SplitRatio <= 0 || opts.SplitRatio >= 1 {
		return fmt.Errorf("%w: -split must be between 0 and 1, got %v", errUsage, opts.SplitRatio)
	}
	if _, err := regress.New(opts.ModelKind, opts.Train.L2); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := validation.Validate(&opts.Train); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func runStats(ctx context.Context, a *app, args []string) error {
	if err := parse(a.subcommandFlags("stats"), args); err != nil {
		return err
	}
	res, err := a.newSession(a.sessionOptions()).LoadAndProcess(ctx)
	if err != nil {
		return err
	}
	return a.printer.Load(res)
}

func runEncode(ctx context.Context, a *app, args []string) error {
	if err := parse(a.subcommandFlags("encode"), args); err != nil {
		return err
	}
	s := a.newSession(a.sessionOptions())
	if _, err := s.LoadAndProcess(ctx); err != nil {
		return err
	}
	return a.printer.Encoded(s.Encoded())
}

func runTrain(ctx context.Context, a *app, args []string) error {
	fs := a.subcommandFlags("train")
	opts := a.trainFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := checkOptions(opts); err != nil {
		return err
	}

	_, err := a.train(ctx, a.newSession(*opts), true)
	return err
}

// train loads and trains s, printing the load summary and progress in text
// mode. JSON mode prints only the final result.
func (a *app) train(ctx context.Context, s *pipeline.Session, printResult bool) (*pipeline.TrainResult, error) {
	ctx = logging.ContextWithNewCorrelationID(ctx)

	loaded, err := s.LoadAndProcess(ctx)
	if err != nil {
		return nil, err
	}
	if !a.printer.JSON() {
		if err := a.printer.Load(loaded); err != nil {
			return nil, err
		}
		fmt.Fprintln(a.stdout)
	}

	run, err := s.Train(ctx)
	if err != nil {
		return nil, err
	}
	for ev := range run.Events() {
		if a.printer.JSON() {
			continue
		}
		if err := a.printer.Progress(ev); err != nil {
			logging.Warn().Err(err).Msg("failed to print progress")
		}
	}
	result, err := run.Wait()
	if err != nil {
		return nil, err
	}
	if !a.printer.JSON() {
		fmt.Fprintln(a.stdout)
	}
	if printResult {
		if err := a.printer.Training(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// inputFlags registers one flag per prediction field.
func inputFlags(fs *flag.FlagSet, in *features.PredictionInput) *string {
	fs.Float64Var(&in.DurationMinutes, "duration", in.DurationMinutes, "runtime in minutes")
	fs.IntVar(&in.ReleaseYear, "year", in.ReleaseYear, "release year")
	fs.Float64Var(&in.Budget, "budget", in.Budget, "production budget")
	fs.StringVar(&in.ContentType, "type", in.ContentType, "content type (Movie, TV Show)")
	fs.StringVar(&in.Genre, "genre", in.Genre, "primary genre")
	fs.StringVar(&in.Language, "language", in.Language, "language")
	fs.StringVar(&in.Country, "country", in.Country, "country of origin")
	fs.StringVar(&in.ContentRating, "rating", in.ContentRating, "content rating (G, PG, PG-13, R, ...)")
	fs.BoolVar(&in.NetflixOriginal, "netflix", in.NetflixOriginal, "Netflix original")
	fs.BoolVar(&in.ContentWarning, "warning", in.ContentWarning, "has content warning")
	return fs.String("input", "", "JSON file with prediction fields (flags override it)")
}

// readInput decodes a prediction input file over base.
func readInput(path string, base features.PredictionInput) (features.PredictionInput, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is an operator-supplied flag
	if err != nil {
		return base, fmt.Errorf("read input: %w", err)
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("parse input %s: %w", path, err)
	}
	return base, nil
}

func runPredict(ctx context.Context, a *app, args []string) error {
	fs := a.subcommandFlags("predict")
	opts := a.trainFlags(fs)
	defaults := features.DefaultPredictionInput()
	flagged := defaults
	inputPath := inputFlags(fs, &flagged)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := checkOptions(opts); err != nil {
		return err
	}

	in := flagged
	if *inputPath != "" {
		fromFile, err := readInput(*inputPath, defaults)
		if err != nil {
			return err
		}
		in = mergeInput(fs, fromFile, flagged)
	}
	if err := validation.Validate(&in); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	s := a.newSession(*opts)
	if _, err := a.train(ctx, s, !a.printer.JSON()); err != nil {
		return err
	}
	pred, err := s.Predict(ctx, in)
	if err != nil {
		return err
	}
	if !a.printer.JSON() {
		fmt.Fprintln(a.stdout)
	}
	return a.printer.Prediction(pred)
}

// mergeInput applies explicitly set flags on top of a file-provided input.
func mergeInput(fs *flag.FlagSet, base, flagged features.PredictionInput) features.PredictionInput {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			base.DurationMinutes = flagged.DurationMinutes
		case "year":
			base.ReleaseYear = flagged.ReleaseYear
		case "budget":
			base.Budget = flagged.Budget
		case "type":
			base.ContentType = flagged.ContentType
		case "genre":
			base.Genre = flagged.Genre
		case "language":
			base.Language = flagged.Language
		case "country":
			base.Country = flagged.Country
		case "rating":
			base.ContentRating = flagged.ContentRating
		case "netflix":
			base.NetflixOriginal = flagged.NetflixOriginal
		case "warning":
			base.ContentWarning = flagged.ContentWarning
		}
	})
	return base
}

func runWatch(ctx context.Context, a *app, args []string) error {
	fs := a.subcommandFlags("watch")
	opts := a.trainFlags(fs)
	debounce := fs.Duration("debounce", a.cfg.Watch.Debounce, "quiet period before a change triggers retraining")
	interval := fs.Duration("interval", a.cfg.Watch.RetrainInterval, "also retrain on this interval (0 to disable)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := checkOptions(opts); err != nil {
		return err
	}
	if opts.DataPath == "" {
		return fmt.Errorf("%w: watch needs a data file (-data or DATA_PATH)", errUsage)
	}

	w, err := watcher.New(opts.DataPath, watcher.Options{Debounce: *debounce}, a.logger)
	if err != nil {
		return err
	}
	session := a.newSession(*opts)

	svc := services.NewRetrainService(session, w.Events(), services.RetrainServiceConfig{
		TrainOnStartup:  true,
		RetrainInterval: *interval,
		OnResult: func(res *pipeline.TrainResult, err error) {
			a.writeMetrics()
			if err != nil {
				return
			}
			if perr := a.printer.Training(res); perr != nil {
				logging.Warn().Err(perr).Msg("failed to print training result")
			}
		},
	}, a.logger)

	tree := supervisor.NewTree(logging.NewSlogLogger(a.logger.With().Str("component", "supervisor").Logger()), treeConfig(a.cfg))
	tree.AddSourceService(w)
	tree.AddTrainingService(svc)

	logging.Info().Str("path", w.Path()).Msg("watch mode started, press Ctrl+C to stop")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("service failed to stop")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("watch mode stopped")
	return nil
}

func treeConfig(cfg *config.Config) supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	}
}

func runEnv(_ context.Context, a *app, args []string) error {
	if err := parse(a.subcommandFlags("env"), args); err != nil {
		return err
	}
	vars := config.EnvVars()
	slices.Sort(vars)
	if a.printer.JSON() {
		return report.WriteJSON(a.stdout, vars)
	}
	for _, v := range vars {
		fmt.Fprintln(a.stdout, v)
	}
	return nil
}

// SPDX-License-Identifier: MIT

// Command lvlopt loads a model document, assembles one optimization
// problem per split-problem partition, solves them in order and prints a
// report.
//
//	lvlopt --settings settings.yaml
//	lvlopt --model model.yaml --yes --metrics-file lvlopt.prom
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvlopt/config"
	"github.com/katalvlaran/lvlopt/logging"
	"github.com/katalvlaran/lvlopt/metrics"
	"github.com/katalvlaran/lvlopt/problem"
)

type flags struct {
	settings    string
	model       string
	force       bool
	yes         bool
	metricsFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "lvlopt:", err)
		}
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string, out io.Writer) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet("lvlopt", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVarP(&f.settings, "settings", "s", "", "settings file (yaml, toml or json)")
	fs.StringVarP(&f.model, "model", "m", "", "model document; overrides model.path")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite prior state without asking")
	fs.BoolVarP(&f.yes, "yes", "y", false, "answer yes to every confirmation")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write prometheus metrics to this textfile; overrides metrics.file")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}

	return f, nil
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	f, err := parseFlags(args, out)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(f.settings)
	if err != nil {
		return err
	}
	if f.model != "" {
		settings.Model.Path = f.model
	}
	if f.metricsFile != "" {
		settings.Metrics.File = f.metricsFile
	}
	if settings.Model.Path == "" {
		return errors.New("no model document: set model.path or --model")
	}

	log, err := logging.New(settings.Log.Level, settings.Log.Format)
	if err != nil {
		return err
	}
	if name := settings.Model.Name; name != "" {
		log = log.WithValues("model", name)
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return err
	}

	var confirmer problem.Confirmer = problem.NewPromptConfirmer(in, out)
	if f.yes {
		confirmer = problem.AlwaysConfirm
	}

	if err := solveModel(ctx, log, settings, f.force, confirmer, rec, out); err != nil {
		return err
	}
	if settings.Metrics.File != "" {
		if err := prometheus.WriteToTextfile(settings.Metrics.File, reg); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}

func solveModel(
	ctx context.Context,
	log logr.Logger,
	settings config.Settings,
	force bool,
	confirmer problem.Confirmer,
	obs problem.Observer,
	out io.Writer,
) error {
	doc, err := config.LoadModel(settings.Model.Path)
	if err != nil {
		return err
	}
	ix, sym, err := doc.Build()
	if err != nil {
		return err
	}
	m, err := problem.NewModel(ix,
		problem.WithLogger(log),
		problem.WithConfirmer(confirmer),
		problem.WithObserver(obs),
	)
	if err != nil {
		return err
	}

	if err := m.Materialize(); err != nil {
		return err
	}
	if err := m.BindAllData(); err != nil {
		return err
	}
	if _, err := m.LoadSymbolic(sym, force); err != nil {
		return err
	}
	if _, err := m.Assemble(force); err != nil {
		return err
	}
	if _, err := m.Solve(ctx, settings.SolveOptions(), force); err != nil {
		_ = problem.WriteReport(out, m)

		return err
	}

	return problem.WriteReport(out, m)
}

// Command adev prints the average absolute deviation of each channel of
// numeric tables.
//
// Usage:
//
//	adev [flags] [file ...]
//
// Each input row is one sample and each column one channel. Without file
// arguments the table is read from standard input.
//
// Examples:
//
//	adev samples.csv
//	adev -delim ws -mean -format json run1.dat run2.dat
//	adev -format prom -header levels.csv
//	adev -watch -header levels.csv
//	adev -info
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/cwbudde/algo-avgdev/internal/config"
	"github.com/cwbudde/algo-avgdev/internal/cpu"
	"github.com/cwbudde/algo-avgdev/internal/kernel"
	"github.com/cwbudde/algo-avgdev/internal/report"
	"github.com/cwbudde/algo-avgdev/internal/table"
	"github.com/cwbudde/algo-avgdev/internal/watch"
	"github.com/cwbudde/algo-avgdev/stats/deviation"
)

const stdinName = "-"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		slog.Error("adev failed", "err", err)
		cancel()
		os.Exit(1)
	}
}

// command holds everything one invocation needs after flag parsing.
type command struct {
	cfg    *config.Config
	format report.Format
	paths  []string
	stdin  io.Reader
	stdout io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adev", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "path to YAML config file")
	format := fs.String("format", config.DefaultFormat, "output format: text, csv, json or prom")
	delim := fs.String("delim", config.DefaultDelimiter, "field delimiter, or \"ws\" for whitespace")
	header := fs.Bool("header", false, "first row holds channel names")
	workers := fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	mean := fs.Bool("mean", false, "also report channel means")
	watchInputs := fs.Bool("watch", false, "recompute whenever an input file changes")
	info := fs.Bool("info", false, "print CPU features and the selected kernel, then exit")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: adev [flags] [file ...]\n\n")
		fmt.Fprintf(stderr, "Prints the average absolute deviation of each column of numeric tables.\n")
		fmt.Fprintf(stderr, "Rows are samples, columns are channels. Reads stdin without file arguments.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  adev samples.csv\n")
		fmt.Fprintf(stderr, "  adev -delim ws -mean -format json run1.dat run2.dat\n")
		fmt.Fprintf(stderr, "  adev -watch -header levels.csv\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Explicitly set flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "delim":
			cfg.Delimiter = *delim
		case "header":
			cfg.Header = *header
		case "workers":
			cfg.Workers = *workers
		case "mean":
			cfg.Mean = *mean
		case "v":
			if *verbose {
				cfg.Log.Level = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	setupLogging(stderr, cfg.Log)

	if *info {
		printInfo(stdout, cfg)
		return nil
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{stdinName}
	}

	cmd := &command{
		cfg:    cfg,
		format: report.Format(cfg.Format),
		paths:  paths,
		stdin:  stdin,
		stdout: stdout,
	}

	if err := cmd.evaluate(); err != nil {
		return err
	}

	if !*watchInputs {
		return nil
	}

	for _, p := range paths {
		if p == stdinName {
			return errors.New("watch: standard input cannot be watched")
		}
	}

	slog.Info("watching inputs", "files", len(paths))
	return watch.Files(ctx, paths, func(path string) {
		slog.Info("input changed", "path", path)
		if err := cmd.evaluate(); err != nil {
			slog.Error("recompute failed", "path", path, "err", err)
		}
	})
}

func setupLogging(w io.Writer, lc config.LogConfig) {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}

	var h slog.Handler
	if lc.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

func printInfo(w io.Writer, cfg *config.Config) {
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	fmt.Fprintf(w, "cpu:                %s\n", cpu.DetectFeatures())
	fmt.Fprintf(w, "kernel:             %s\n", kernel.Current().Name)
	fmt.Fprintf(w, "workers:            %d\n", workers)
	fmt.Fprintf(w, "parallel threshold: %d\n", cfg.ParallelThreshold)
}

// evaluate reads every input, computes all channels and writes one report.
// Nothing is written when any input fails.
func (c *command) evaluate() error {
	opts := table.Options{Delimiter: c.cfg.Delimiter, Header: c.cfg.Header}

	reports := make([]report.Report, 0, len(c.paths))
	for _, path := range c.paths {
		var (
			tbl *table.Table
			err error
		)
		if path == stdinName {
			tbl, err = table.Read(c.stdin, opts)
			if err != nil {
				err = fmt.Errorf("stdin: %w", err)
			}
		} else {
			tbl, err = table.ReadFile(path, opts)
		}
		if err != nil {
			return err
		}

		summaries, err := deviation.Summarize(tbl.Samples, c.cfg.Options()...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		channels := make([]report.Channel, len(summaries))
		for h, s := range summaries {
			channels[h] = report.Channel{Name: tbl.Names[h], Mean: s.Mean, AvgDev: s.AvgDev}
		}

		slog.Debug("computed",
			"source", path,
			"samples", tbl.Samples.Rows(),
			"channels", tbl.Samples.Cols(),
		)

		reports = append(reports, report.Report{
			Source:   path,
			Samples:  tbl.Samples.Rows(),
			Channels: channels,
			WithMean: c.cfg.Mean,
		})
	}

	return report.Write(c.stdout, c.format, c.cfg.MetricPrefix, reports...)
}

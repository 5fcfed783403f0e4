package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/OCharnyshevich/slimefinder/internal/config"
	"github.com/OCharnyshevich/slimefinder/internal/loader"
	"github.com/OCharnyshevich/slimefinder/internal/progress"
	"github.com/OCharnyshevich/slimefinder/internal/report"
	"github.com/OCharnyshevich/slimefinder/internal/storage"
	"github.com/OCharnyshevich/slimefinder/pkg/world/window"
)

func main() {
	cfg := config.DefaultConfig()
	f := &cfg.Finder

	configPath := flag.String("config", "", "YAML config file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.StringVar(&f.Input, "input", f.Input, `chunk list source ("-" for stdin, path or go-getter URL; gzip, zstd and lz4 are detected)`)
	flag.IntVar(&f.Width, "width", f.Width, "window width in chunks")
	flag.IntVar(&f.Height, "height", f.Height, "window height in chunks")
	flag.StringVar(&f.Mode, "mode", f.Mode, "max or min slime chunks")
	flag.IntVar(&f.Align, "align", f.Align, "window origin must be a multiple of this on both axes")
	flag.IntVar(&f.MaxCells, "max-cells", f.MaxCells, "largest bounding box area to allocate (0 = no limit)")
	flag.BoolVar(&f.Candidates, "candidates", f.Candidates, "print every optimal origin")
	flag.DurationVar(&f.Progress, "progress", f.Progress, "progress log interval (0 disables)")
	flag.StringVar(&f.Report, "report", f.Report, "write a JSON report to this path")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(fl *flag.Flag) { explicit[fl.Name] = true })
		config.MergeFinder(f, &fromFile.Finder, explicit)
		log.Info("loaded config from file", "path", *configPath)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, f, log); err != nil {
		log.Error("slimefinder failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f *config.Finder, log *slog.Logger) error {
	params, err := f.Params()
	if err != nil {
		return err
	}

	l, err := loader.New(log)
	if err != nil {
		return err
	}
	set, err := l.Load(ctx, f.Input)
	if err != nil {
		return err
	}

	grid, err := window.NewGrid(set, window.WithMaxCells(f.MaxCells))
	if err != nil {
		return err
	}
	b := grid.Bounds()
	log.Info("built prefix grid",
		"min", []int{b.MinX, b.MinZ},
		"max", []int{b.MaxX, b.MaxZ},
		"cells", humanize.Comma(int64(b.Width())*int64(b.Height())),
		"chunks", grid.Total(),
	)

	if f.Progress > 0 {
		params.Observer = progress.New(log, "scanning windows", f.Progress)
	}
	res, err := grid.Find(set, params)
	if errors.Is(err, window.ErrNoValidWindow) {
		log.Warn("no window fits", "width", params.Width, "height", params.Height, "align", params.Align)
	}
	if err != nil {
		return err
	}
	log.Info("search finished",
		"mode", res.Mode,
		"best", res.Best,
		"candidates", len(res.Candidates),
		"winner", []int{res.Winner.X, res.Winner.Z},
	)

	if err := report.WriteSummary(os.Stdout, res, f.Candidates); err != nil {
		return err
	}
	if f.Report != "" {
		if err := storage.New(log).SaveJSON(f.Report, report.New(f.Input, res)); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/OCharnyshevich/slimefinder/internal/config"
	"github.com/OCharnyshevich/slimefinder/internal/storage"
	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
)

func main() {
	cfg := config.DefaultConfig()
	g := &cfg.Generator

	configPath := flag.String("config", "", "YAML config file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Int64Var(&g.Seed, "seed", g.Seed, "world seed")
	flag.IntVar(&g.CenterX, "x", g.CenterX, "center chunk x")
	flag.IntVar(&g.CenterZ, "z", g.CenterZ, "center chunk z")
	flag.IntVar(&g.Radius, "radius", g.Radius, "scan radius in chunks")
	flag.StringVar(&g.Output, "o", g.Output, "output file (.gz, .zst and .lz4 are compressed)")
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
		config.MergeGenerator(g, &fromFile.Generator, explicit)
	}

	if err := g.Validate(); err != nil {
		log.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	log.Info("start scanning slime chunks",
		"seed", g.Seed,
		"center", []int{g.CenterX, g.CenterZ},
		"radius", g.Radius,
		"output", g.Output,
	)

	out, err := storage.New(log).Create(g.Output)
	if err != nil {
		log.Error("create output", "error", err)
		os.Exit(1)
	}
	n, err := writeChunkList(out, log, g.Seed, chunkset.Pos{X: g.CenterX, Z: g.CenterZ}, g.Radius)
	if err != nil {
		out.Abort()
		log.Error("write slime chunks", "error", err)
		os.Exit(1)
	}
	if err := out.Commit(); err != nil {
		log.Error("save slime chunks", "error", err)
		os.Exit(1)
	}

	log.Info("done scanning slime chunks", "count", n, "path", g.Output)
}

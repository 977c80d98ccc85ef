// Command simulate plays batches of headless encounters with an autopilot
// and reports how they went.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/milk9111/bladebound/config"
)

func main() {
	configPath := flag.String("config", "session.yaml", "session config file")
	runs := flag.Int("runs", 0, "number of runs (overrides batch.runs)")
	workers := flag.Int("workers", 0, "concurrent runs (overrides batch.workers)")
	maxTicks := flag.Int("max-ticks", 0, "tick limit per run (overrides batch.max_ticks)")
	seed := flag.Int64("seed", 0, "base seed (overrides seed)")
	verbose := flag.Bool("v", false, "log every run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *runs > 0 {
		cfg.Batch.Runs = *runs
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if *maxTicks > 0 {
		cfg.Batch.MaxTicks = *maxTicks
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	logger, err := zc.Build()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	runLog := zap.NewNop()
	if *verbose {
		runLog = logger
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := RunBatch(ctx, cfg, runLog)
	if err != nil {
		logger.Fatal("batch failed", zap.Error(err))
	}

	sum := Summarize(results)
	logger.Info("batch finished",
		zap.Int("runs", sum.Runs),
		zap.Int("cleared", sum.Cleared),
		zap.Int("bosses_defeated", sum.BossesDefeated),
		zap.Float64("mean_ticks", sum.MeanTicks),
		zap.Float64("mean_kills", sum.MeanKills),
		zap.Float64("mean_deaths", sum.MeanDeaths),
		zap.Float64("mean_balance", sum.MeanBalance),
	)
}

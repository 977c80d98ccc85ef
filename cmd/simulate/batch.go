package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/bladebound/config"
	"github.com/milk9111/bladebound/session"
)

// ctxCheckEvery is how many ticks a run goes between cancellation checks.
const ctxCheckEvery = 600

type Result struct {
	Run     int
	Seed    int64
	Cleared bool
	Elapsed time.Duration
	Stats   session.Stats
}

// RunBatch plays cfg.Batch.Runs headless sessions on at most
// cfg.Batch.Workers goroutines. Each run gets its own seed derived from
// cfg.Seed, so a batch is reproducible.
func RunBatch(ctx context.Context, cfg config.Session, log *zap.Logger) ([]Result, error) {
	runs := cfg.Batch.Runs
	if runs <= 0 {
		return nil, nil
	}
	cfg.HotReload = false

	results := make([]Result, runs)
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Batch.Workers > 0 {
		g.SetLimit(cfg.Batch.Workers)
	}
	for i := 0; i < runs; i++ {
		g.Go(func() error {
			runCfg := cfg
			runCfg.Seed = cfg.Seed + int64(i)*1000
			res, err := runOne(gctx, runCfg, log.With(zap.Int("run", i)))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			res.Run = i
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(ctx context.Context, cfg config.Session, log *zap.Logger) (Result, error) {
	pilot := newAutopilot(cfg.Seed)
	s, err := session.New(cfg, log.Named("session"), session.WithInput(pilot))
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = s.Close() }()
	pilot.attach(s.World(), s.Player())

	start := time.Now()
	for tick := 0; tick < cfg.Batch.MaxTicks && !s.Done(); tick++ {
		if tick%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		s.Step()
	}

	res := Result{
		Seed:    cfg.Seed,
		Cleared: s.Done(),
		Elapsed: time.Since(start),
		Stats:   s.Stats(),
	}
	log.Info("run finished",
		zap.Int64("seed", res.Seed),
		zap.Bool("cleared", res.Cleared),
		zap.Uint64("ticks", res.Stats.Ticks),
		zap.Int("enemies_killed", res.Stats.EnemiesKilled),
		zap.Int("boss_phase", res.Stats.BossPhase),
		zap.Int("player_deaths", res.Stats.PlayerDeaths),
		zap.Int("balance", res.Stats.Economy.Balance),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Summary aggregates a batch.
type Summary struct {
	Runs           int
	Cleared        int
	BossesDefeated int
	MeanTicks      float64
	MeanDeaths     float64
	MeanKills      float64
	MeanBalance    float64
}

func Summarize(results []Result) Summary {
	var sum Summary
	sum.Runs = len(results)
	if sum.Runs == 0 {
		return sum
	}
	for _, r := range results {
		if r.Cleared {
			sum.Cleared++
		}
		if r.Stats.BossDefeated {
			sum.BossesDefeated++
		}
		sum.MeanTicks += float64(r.Stats.Ticks)
		sum.MeanDeaths += float64(r.Stats.PlayerDeaths)
		sum.MeanKills += float64(r.Stats.EnemiesKilled)
		sum.MeanBalance += float64(r.Stats.Economy.Balance)
	}
	n := float64(sum.Runs)
	sum.MeanTicks /= n
	sum.MeanDeaths /= n
	sum.MeanKills /= n
	sum.MeanBalance /= n
	return sum
}

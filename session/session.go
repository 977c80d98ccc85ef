// Package session owns one play or simulation run: the world, its systems,
// the economy and the prefab hot reload hook.
package session

import (
	"fmt"
	"math/rand"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/config"
	"github.com/milk9111/bladebound/economy"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/ecs/entity"
	"github.com/milk9111/bladebound/ecs/system"
	"github.com/milk9111/bladebound/prefabs"
)

// UI receives health, stamina and boss phase updates. Nil fields are
// skipped.
type UI struct {
	PlayerHealth  component.ValueBar
	PlayerStamina component.ValueBar
	BossHealth    component.ValueBar
	BossPhase     component.PhaseDisplay
}

type Option func(*Session)

// WithInput replaces the keyboard with src.
func WithInput(src system.InputSource) Option {
	return func(s *Session) { s.input = src }
}

func WithUI(ui UI) Option {
	return func(s *Session) { s.ui = ui }
}

type Session struct {
	cfg config.Session
	log *zap.Logger

	world     *ecs.World
	physics   *ecs.PhysicsWorld
	scheduler *ecs.Scheduler
	economy   *economy.Service
	spawner   *entity.Spawner
	scripts   *system.RewardScripts
	watcher   *prefabs.Watcher

	input system.InputSource
	ui    UI

	player ecs.Entity
	boss   ecs.Entity
	modal  ecs.Entity

	// purchased upgrade levels beyond the first
	levels [2]int

	stats  Stats
	closed bool
}

// New builds the world described by cfg.Encounter. A nil logger is replaced
// with a no-op one.
func New(cfg config.Session, log *zap.Logger, opts ...Option) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.PrefabDir != "" {
		prefabs.SetDir(cfg.PrefabDir)
	}

	s.world = ecs.NewWorld()
	s.world.SetDelta(cfg.Delta())
	s.physics = ecs.NewPhysicsWorld(cfg.Gravity)
	s.world.SetPhysics(s.physics)

	s.economy = economy.New(economy.Config{
		StartingBalance:     cfg.StartingBalance,
		DeathPenaltyPercent: cfg.DeathPenaltyPercent,
	}, log.Named("economy"))
	s.spawner = entity.NewSpawner(rand.New(rand.NewSource(cfg.Seed)))
	s.scripts = system.NewRewardScripts()
	s.scheduler = s.newScheduler()

	if err := s.spawnEncounter(cfg.Encounter); err != nil {
		_ = s.economy.Close()
		return nil, err
	}

	if cfg.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir())
		if err != nil {
			// hot reload is a convenience; run without it
			log.Warn("prefab hot reload disabled", zap.String("dir", prefabs.Dir()), zap.Error(err))
		} else {
			s.watcher = w
		}
	}

	log.Info("session started",
		zap.Int64("seed", cfg.Seed),
		zap.Int("tick_rate", cfg.TickRate),
		zap.Int("enemies", len(cfg.Encounter.Enemies)),
		zap.Bool("boss", cfg.Encounter.Boss != nil),
	)
	return s, nil
}

// newScheduler orders systems so state machines queue their hits before the
// combat system applies them against this tick's positions.
func (s *Session) newScheduler() *ecs.Scheduler {
	seed := s.cfg.Seed
	combat := system.NewCombatSystem(s.log.Named("combat"), s.spawner)

	return ecs.NewScheduler(
		system.NewInputSystem(s.input),
		system.NewTimerSystem(),
		system.NewAnimationSystem(),
		system.NewPlayerControllerSystem(s.log.Named("player"), combat),
		system.NewEnemyAISystem(s.log.Named("enemy"), combat),
		system.NewBossSystem(s.log.Named("boss"), combat, s.spawner, rand.New(rand.NewSource(seed+1))),
		system.NewPhysicsSystem(),
		system.NewProjectileSystem(s.log.Named("projectile"), combat),
		system.NewPickupCollectSystem(s.log.Named("pickup"), s.economy),
		system.NewHazardSystem(s.log.Named("hazard")),
		combat,
		system.NewDamageKnockbackSystem(),
		system.NewDeathSystem(s.log.Named("death"), system.DeathConfig{
			RespawnDelay: s.cfg.RespawnDelay,
			RemovalDelay: s.cfg.EnemyRemovalDelay,
		}, s.economy, s.spawner, s.scripts, rand.New(rand.NewSource(seed+2))),
		system.NewWhiteFlashSystem(),
		system.NewHealthBarSystem(),
		system.NewTTLSystem(),
		system.NewRespawnSystem(s.log.Named("respawn")),
	)
}

func (s *Session) spawnEncounter(enc config.Encounter) error {
	for _, seg := range enc.Ground {
		s.physics.AddGround(common.V(seg.X1, seg.Y1), common.V(seg.X2, seg.Y2), 0)
	}

	player, err := entity.NewPlayerFrom(s.world, enc.Player.Prefab, place(enc.Player))
	if err != nil {
		return fmt.Errorf("session: spawn player: %w", err)
	}
	s.player = player
	if s.ui.PlayerHealth != nil {
		_ = ecs.Add(s.world, player, component.HealthBarComponent.Kind(), &component.HealthBar{Bar: s.ui.PlayerHealth, Visible: true})
	}
	if s.ui.PlayerStamina != nil {
		_ = ecs.Add(s.world, player, component.StaminaBarComponent.Kind(), &component.StaminaBar{Bar: s.ui.PlayerStamina})
	}

	for i, p := range enc.Enemies {
		if _, err := entity.NewEnemy(s.world, p.Prefab, place(p)); err != nil {
			return fmt.Errorf("session: spawn enemy %d: %w", i, err)
		}
	}

	if enc.Boss != nil {
		boss, err := entity.NewBoss(s.world, enc.Boss.Prefab, place(*enc.Boss))
		if err != nil {
			return fmt.Errorf("session: spawn boss: %w", err)
		}
		s.boss = boss
		if s.ui.BossHealth != nil {
			s.ui.BossHealth.SetVisible(false)
			_ = ecs.Add(s.world, boss, component.HealthBarComponent.Kind(), &component.HealthBar{Bar: s.ui.BossHealth})
		}
		if s.ui.BossPhase != nil {
			s.ui.BossPhase.SetVisible(false)
			_ = ecs.Add(s.world, boss, component.PhaseTextComponent.Kind(), &component.PhaseText{Display: s.ui.BossPhase})
		}
	}

	props := []struct {
		list   []config.Placement
		prefab string
	}{
		{enc.Coins, "coin.yaml"},
		{enc.Breakables, "breakable.yaml"},
		{enc.JumpBoosts, "jump_boost.yaml"},
		{enc.Traps, "trap.yaml"},
	}
	for _, group := range props {
		for _, p := range group.list {
			prefab := p.Prefab
			if prefab == "" {
				prefab = group.prefab
			}
			if _, err := entity.NewProp(s.world, prefab, place(p)); err != nil {
				return fmt.Errorf("session: spawn %s: %w", prefab, err)
			}
		}
	}

	s.modal = ecs.CreateEntity(s.world)
	return ecs.Add(s.world, s.modal, component.ModalComponent.Kind(), &component.Modal{})
}

func place(p config.Placement) common.Vec2 {
	return common.V(p.X, p.Y)
}

// Step advances the simulation by one fixed tick.
func (s *Session) Step() {
	if s.closed {
		return
	}
	s.applyReloads()
	s.scheduler.Update(s.world)
	s.record()
}

// SetModal raises or clears the modal signal that freezes the player.
func (s *Session) SetModal(open bool) {
	if m, ok := ecs.Get(s.world, s.modal, component.ModalComponent.Kind()); ok {
		m.Open = open
	}
}

func (s *Session) ModalOpen() bool {
	m, ok := ecs.Get(s.world, s.modal, component.ModalComponent.Kind())
	return ok && m.Open
}

// Reload applies a prefab or script edit to the running session.
func (s *Session) Reload(change prefabs.Change) {
	if change.Script {
		s.scripts.Invalidate(change.Name)
		s.log.Info("reward script reloaded", zap.String("script", change.Name))
		return
	}
	s.spawner.Invalidate(change.Name)
	n, err := entity.Retune(s.world, change.Name)
	if err != nil {
		s.log.Warn("prefab reload failed", zap.String("prefab", change.Name), zap.Error(err))
		return
	}
	if n > 0 {
		s.restoreUpgrades(change.Name)
	}
	s.log.Info("prefab reloaded", zap.String("prefab", change.Name), zap.Int("entities", n))
}

func (s *Session) applyReloads() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			s.Reload(change)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("prefab watcher", zap.Error(err))
		default:
			return
		}
	}
}

// Close stops hot reload and closes the economy. It is safe to call more
// than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.watcher != nil {
		err = multierr.Append(err, s.watcher.Close())
		s.watcher = nil
	}
	err = multierr.Append(err, s.economy.Close())
	s.log.Info("session closed",
		zap.Uint64("ticks", s.stats.Ticks),
		zap.Int("enemies_killed", s.stats.EnemiesKilled),
		zap.Bool("boss_defeated", s.stats.BossDefeated),
		zap.Int("player_deaths", s.stats.PlayerDeaths),
	)
	return err
}

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Player() ecs.Entity { return s.player }

// Boss returns the boss entity, if the encounter has one.
func (s *Session) Boss() (ecs.Entity, bool) {
	return s.boss, s.boss.Valid() && ecs.IsAlive(s.world, s.boss)
}

func (s *Session) Economy() *economy.Service { return s.economy }

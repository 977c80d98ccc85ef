// Package economy tracks the score/currency balance for one play session.
package economy

import (
	"sync"

	"github.com/milk9111/bladebound/common"
	"go.uber.org/zap"
)

type Config struct {
	StartingBalance int
	// DeathPenaltyPercent of the balance is lost on each player death.
	DeathPenaltyPercent int
}

// Service is created at session start and closed at session end. It holds
// the balance in memory; persisting it is the caller's job.
type Service struct {
	mu     sync.Mutex
	cfg    Config
	log    *zap.Logger
	closed bool

	balance   int
	earned    int
	lost      int
	deaths    int
	lastDeath *common.Vec2
}

func New(cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.DeathPenaltyPercent < 0 {
		cfg.DeathPenaltyPercent = 0
	}
	if cfg.DeathPenaltyPercent > 100 {
		cfg.DeathPenaltyPercent = 100
	}
	return &Service{cfg: cfg, log: log, balance: cfg.StartingBalance}
}

// AwardPoints adds n to the balance. Non-positive amounts are ignored.
func (s *Service) AwardPoints(n int) {
	if s == nil || n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.balance += n
	s.earned += n
}

func (s *Service) CanAfford(cost int) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance >= cost
}

// Spend deducts cost and reports whether the balance covered it.
func (s *Service) Spend(cost int) bool {
	if s == nil || cost < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.balance < cost {
		return false
	}
	s.balance -= cost
	return true
}

// ApplyDeathPenalty removes the configured share of the balance and records
// where the player died.
func (s *Service) ApplyDeathPenalty(pos common.Vec2) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	penalty := s.balance * s.cfg.DeathPenaltyPercent / 100
	s.balance -= penalty
	s.lost += penalty
	s.deaths++
	p := pos
	s.lastDeath = &p
	s.log.Info("death penalty applied",
		zap.Int("penalty", penalty),
		zap.Int("balance", s.balance),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
}

func (s *Service) Balance() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// LastDeath returns the most recent death position.
func (s *Service) LastDeath() (common.Vec2, bool) {
	if s == nil {
		return common.Vec2{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastDeath == nil {
		return common.Vec2{}, false
	}
	return *s.lastDeath, true
}

// Stats is a snapshot of the session's economy.
type Stats struct {
	Balance int
	Earned  int
	Lost    int
	Deaths  int
}

func (s *Service) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Balance: s.balance, Earned: s.earned, Lost: s.lost, Deaths: s.deaths}
}

// Close ends the session; later awards and spends are ignored.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.log.Info("economy closed",
		zap.Int("balance", s.balance),
		zap.Int("earned", s.earned),
		zap.Int("lost", s.lost),
		zap.Int("deaths", s.deaths),
	)
	return nil
}

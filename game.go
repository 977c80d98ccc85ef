package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/config"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/session"
)

var (
	introLines = []string{
		"The warden waits at the end of the hall.",
		"A/D move   Space jump   J attack   K block   Shift roll",
	}
	clearedLines = []string{"The hall is quiet. Press Esc to leave."}
)

type Game struct {
	log     *zap.Logger
	cfg     config.Session
	session *session.Session
	hud     *hud
	camera  camera
	debug   bool

	dialogue *ebitenui.UI
	cleared  bool
	frames   int
}

func NewGame(cfg config.Session, log *zap.Logger, debug bool) (*Game, error) {
	g := &Game{log: log, cfg: cfg, hud: newHUD(), debug: debug}
	s, err := session.New(cfg, log, session.WithUI(g.hud.UI()))
	if err != nil {
		return nil, err
	}
	g.session = s
	if tf, ok := ecs.Get(s.World(), s.Player(), component.TransformComponent.Kind()); ok {
		g.camera = camera{X: tf.X, Y: tf.Y + 2}
	}
	g.openDialogue(introLines)
	return g, nil
}

func (g *Game) openDialogue(lines []string) {
	g.dialogue = NewDialogueUI(lines, g.closeDialogue)
	g.session.SetModal(true)
}

func (g *Game) closeDialogue() {
	g.dialogue = nil
	g.session.SetModal(false)
}

func (g *Game) buy(u session.Upgrade) {
	cost := g.session.UpgradeCost(u)
	if !g.session.Purchase(u) {
		g.log.Debug("upgrade unaffordable", zap.Stringer("upgrade", u), zap.Int("cost", cost))
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if g.dialogue == nil {
			g.openDialogue(introLines)
		} else {
			g.closeDialogue()
		}
	}
	if g.dialogue != nil {
		g.dialogue.Update()
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.buy(session.UpgradeHealth)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.buy(session.UpgradeAttack)
	}

	g.session.Step()

	if tf, ok := ecs.Get(g.session.World(), g.session.Player(), component.TransformComponent.Kind()); ok {
		g.camera.Follow(tf.Pos())
	}
	if !g.cleared && g.session.Done() {
		g.cleared = true
		stats := g.session.Stats()
		g.log.Info("encounter cleared",
			zap.Uint64("ticks", stats.Ticks),
			zap.Int("player_deaths", stats.PlayerDeaths),
			zap.Int("balance", stats.Economy.Balance),
		)
		g.openDialogue(clearedLines)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	w := g.session.World()
	drawGround(screen, g.camera, g.cfg.Encounter.Ground)
	drawEntities(screen, g.camera, w)
	if g.debug {
		if phys, ok := w.Physics().(*ecs.PhysicsWorld); ok {
			drawPhysicsDebug(screen, g.camera, phys.Space())
		}
	}

	g.hud.Draw(screen)
	g.drawStatus(screen)

	if g.dialogue != nil {
		g.dialogue.Draw(screen)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	stats := g.session.Stats()
	msg := fmt.Sprintf("Coins: %d   Kills: %d   Deaths: %d", stats.Economy.Balance, stats.EnemiesKilled, stats.PlayerDeaths)
	ebitenutil.DebugPrintAt(screen, msg, common.BaseWidth-260, 16)
	if !g.debug {
		return
	}

	state := "none"
	if sm, ok := ecs.Get(g.session.World(), g.session.Player(), component.PlayerStateMachineComponent.Kind()); ok && sm.State != nil {
		state = sm.State.Name()
	}
	debug := fmt.Sprintf("Frames: %d    FPS: %.2f\nPlayer State: %s\nTicks: %d  Hits: %d  Blocked: %d",
		g.frames, ebiten.ActualFPS(), state, stats.Ticks, stats.HitsLanded, stats.HitsBlocked)
	ebitenutil.DebugPrintAt(screen, debug, 10, 80)
}

func (g *Game) Close() error {
	return g.session.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

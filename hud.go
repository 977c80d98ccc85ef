package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/session"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// meterBar is a screen-space bar fed by the health and stamina systems.
type meterBar struct {
	label      string
	x, y, w, h float32
	fill       color.Color

	current, max float64
	visible      bool
}

func (b *meterBar) SetValue(current, max float64) {
	b.current, b.max = current, max
}

func (b *meterBar) SetVisible(visible bool) {
	b.visible = visible
}

func (b *meterBar) Draw(screen *ebiten.Image) {
	if !b.visible {
		return
	}
	ratio := 0.0
	if b.max > 0 {
		ratio = common.Clamp(b.current/b.max, 0, 1)
	}
	vector.FillRect(screen, b.x, b.y, b.w, b.h, color.RGBA{A: 160}, false)
	vector.FillRect(screen, b.x, b.y, b.w*float32(ratio), b.h, b.fill, false)
	vector.StrokeRect(screen, b.x, b.y, b.w, b.h, 1, colornames.White, false)
	if b.label != "" {
		drawHUDText(screen, b.label, float64(b.x), float64(b.y)-16, colornames.White)
	}
}

type phaseLabel struct {
	x, y    float64
	phase   int
	visible bool
}

func (p *phaseLabel) SetPhase(phase int) { p.phase = phase }

func (p *phaseLabel) SetVisible(visible bool) { p.visible = visible }

func (p *phaseLabel) Draw(screen *ebiten.Image) {
	if !p.visible || p.phase <= 0 {
		return
	}
	drawHUDText(screen, fmt.Sprintf("PHASE %d", p.phase), p.x, p.y, colornames.Orange)
}

// hud owns the widgets handed to the session.
type hud struct {
	playerHealth  *meterBar
	playerStamina *meterBar
	bossHealth    *meterBar
	bossPhase     *phaseLabel
}

func newHUD() *hud {
	const margin = 24
	bossW := float32(common.BaseWidth / 2)
	return &hud{
		playerHealth:  &meterBar{label: "HP", x: margin, y: margin + 16, w: 240, h: 16, fill: colornames.Crimson, visible: true},
		playerStamina: &meterBar{x: margin, y: margin + 36, w: 180, h: 8, fill: colornames.Gold, visible: true},
		bossHealth: &meterBar{
			label: "WARDEN",
			x:     (common.BaseWidth - bossW) / 2,
			y:     common.BaseHeight - 48,
			w:     bossW,
			h:     14,
			fill:  colornames.Darkred,
		},
		bossPhase: &phaseLabel{x: common.BaseWidth/2 + float64(bossW)/2 - 56, y: common.BaseHeight - 64},
	}
}

func (h *hud) UI() session.UI {
	return session.UI{
		PlayerHealth:  h.playerHealth,
		PlayerStamina: h.playerStamina,
		BossHealth:    h.bossHealth,
		BossPhase:     h.bossPhase,
	}
}

func (h *hud) Draw(screen *ebiten.Image) {
	h.playerHealth.Draw(screen)
	h.playerStamina.Draw(screen)
	h.bossHealth.Draw(screen)
	h.bossPhase.Draw(screen)
}

func drawHUDText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, hudFace, op)
}

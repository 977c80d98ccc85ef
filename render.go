package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/config"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

const (
	pixelsPerUnit = 32.0
	cameraLerp    = 0.12
)

var categoryColors = []struct {
	c   component.Category
	clr color.RGBA
}{
	{component.CategoryPlayer, colornames.Steelblue},
	{component.CategoryBoss, colornames.Purple},
	{component.CategoryEnemy, colornames.Olivedrab},
	{component.CategoryProjectile, colornames.Khaki},
	{component.CategoryCoin, colornames.Gold},
	{component.CategoryBreakable, colornames.Sienna},
	{component.CategoryJumpBoost, colornames.Cyan},
	{component.CategoryTrap, colornames.Red},
}

// camera maps Y-up world units to screen pixels, centered on X, Y.
type camera struct {
	X, Y float64
}

func (c *camera) Follow(target common.Vec2) {
	c.X = common.Lerp(c.X, target.X, cameraLerp)
	c.Y = common.Lerp(c.Y, target.Y+2, cameraLerp)
}

func (c camera) ToScreen(p common.Vec2) (float64, float64) {
	return (p.X-c.X)*pixelsPerUnit + common.BaseWidth/2, common.BaseHeight/2 - (p.Y-c.Y)*pixelsPerUnit
}

func drawGround(screen *ebiten.Image, cam camera, segments []config.Segment) {
	for _, seg := range segments {
		x1, y1 := cam.ToScreen(common.V(seg.X1, seg.Y1))
		x2, y2 := cam.ToScreen(common.V(seg.X2, seg.Y2))
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 3, colornames.Dimgray, true)
	}
}

// drawEntities draws every body as a rectangle colored by category. Hurt
// and phase flashes replace the base color while they run.
func drawEntities(screen *ebiten.Image, cam camera, w *ecs.World) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, tf *component.Transform, body *component.PhysicsBody) {
		tag, ok := ecs.Get(w, e, component.CategoryComponent.Kind())
		if !ok {
			return
		}
		clr := colorFor(tag.Category)
		if flash, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok && flash.Remaining > 0 {
			clr = flash.Color
		}
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			clr.A = 90
		}

		x, y := cam.ToScreen(common.V(tf.X-body.Width/2, tf.Y+body.Height/2))
		wdt, hgt := float32(body.Width*pixelsPerUnit), float32(body.Height*pixelsPerUnit)
		vector.FillRect(screen, float32(x), float32(y), wdt, hgt, clr, false)

		if tag.Category.Has(component.CategoryPlayer | component.CategoryEnemy | component.CategoryBoss) {
			// facing tick
			cx, cy := cam.ToScreen(tf.Pos())
			tip := cx + tf.Facing()*body.Width*pixelsPerUnit*0.6
			vector.StrokeLine(screen, float32(cx), float32(cy), float32(tip), float32(cy), 2, colornames.White, true)
		}
	})
}

func colorFor(c component.Category) color.RGBA {
	for _, cc := range categoryColors {
		if c.Has(cc.c) {
			return cc.clr
		}
	}
	return colornames.Gray
}

package main

import (
	"errors"

	"github.com/gogpu/retro"
	rebiten "github.com/gogpu/retro/backend/ebiten"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ticksPerStep slows the palette cycle down relative to the 60 Hz tick.
const ticksPerStep = 2

var errQuit = errors.New("quit")

// game runs the scene inside ebiten. Space pauses the tone, Escape quits.
type game struct {
	dev    *rebiten.Device
	scene  *scene
	tone   *tonePlayer
	w, h   int
	ticks  int
	linear bool
}

func runWindow(w, h, scale int, linear bool, tone *tonePlayer) error {
	dev := rebiten.New()
	s, err := newScene(dev, w, h, scale, linear)
	if err != nil {
		return err
	}
	defer s.close()

	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowTitle("texdemo")
	g := &game{dev: dev, scene: s, tone: tone, w: w * scale, h: h * scale, linear: linear}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.linear = !g.linear
		g.scene.bg.SetLinearFilter(g.linear)
		g.scene.sprite.SetLinearFilter(g.linear)
	}
	if g.tone != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.tone.togglePause()
		}
		g.tone.poll()
	}
	g.ticks++
	if g.ticks%ticksPerStep == 0 {
		g.scene.step()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.dev.SetTarget(screen)
	if err := g.scene.draw(); err != nil {
		retro.Logger().Error("texdemo: draw failed", "err", err)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

package main

import (
	"flag"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ballpit/config"
	"ballpit/render"
	"ballpit/sim"
)

type Game struct {
	settings config.Settings
	world    *sim.World
	atlas    *render.Atlas
	sprites  map[sim.SpriteRef]*ebiten.Image
	paused   bool
}

func (g *Game) respawn() error {
	rng := sim.NewRand(g.settings.Sim.Seed)
	w, err := sim.Spawn(g.settings.Sim, rng, sim.RandomSprite(rng, g.settings.Palette))
	if err != nil {
		return err
	}
	g.world = w
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.respawn(); err != nil {
			return err
		}
	}
	if !g.paused || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.world.Step()
	}
	return nil
}

func (g *Game) sprite(ref sim.SpriteRef) *ebiten.Image {
	img, ok := g.sprites[ref]
	if !ok {
		img = ebiten.NewImageFromImage(g.atlas.Image(ref))
		g.sprites[ref] = img
	}
	return img
}

// Draw mirrors the canvas routine: translate to the body, rotate, draw the
// sprite at (-r, -r) with size 2r.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Clear()
	for _, b := range g.world.Bodies() {
		img := g.sprite(b.Sprite)
		bounds := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.Filter = ebiten.FilterLinear
		op.GeoM.Scale(2*b.Radius/float64(bounds.Dx()), 2*b.Radius/float64(bounds.Dy()))
		op.GeoM.Translate(-b.Radius, -b.Radius)
		op.GeoM.Rotate(b.Angle)
		op.GeoM.Translate(b.Position.X, b.Position.Y)
		screen.DrawImage(img, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.settings.Sim.Width), int(g.settings.Sim.Height)
}

func main() {
	cfgPath := flag.String("config", "ballpit.yaml", "optional YAML settings file")
	flag.Parse()

	if err := config.InitConfig(); err != nil {
		log.Fatal(err)
	}
	settings, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	g := &Game{
		settings: settings,
		atlas:    render.NewAtlas(settings.SpriteDir),
		sprites:  make(map[sim.SpriteRef]*ebiten.Image),
	}
	if err := g.respawn(); err != nil {
		log.Fatal(err)
	}

	size := image.Pt(int(settings.Sim.Width), int(settings.Sim.Height))
	ebiten.SetWindowSize(size.X, size.Y)
	ebiten.SetWindowTitle("ballpit")
	// ebiten ticks at a fixed TPS; derive it from the configured interval.
	ebiten.SetTPS(max(1, int(1e9/settings.Sim.TickInterval.Nanoseconds())))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

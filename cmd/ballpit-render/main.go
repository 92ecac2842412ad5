package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"ballpit/config"
	"ballpit/render"
	"ballpit/sim"
)

func main() {
	cfgPath := flag.String("config", "ballpit.yaml", "optional YAML settings file")
	ticks := flag.Int("ticks", 600, "ticks to simulate")
	every := flag.Int("every", 10, "write a frame every N ticks")
	out := flag.String("out", "frames", "output directory")
	realtime := flag.Bool("realtime", false, "pace ticks at the configured tick interval")
	flag.Parse()

	if err := config.InitConfig(); err != nil {
		log.Fatal(err)
	}
	settings, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *every <= 0 {
		log.Fatal("-every must be positive")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal(err)
	}

	cfg := settings.Sim
	rng := sim.NewRand(cfg.Seed)
	world, err := sim.Spawn(cfg, rng, sim.RandomSprite(rng, settings.Palette))
	if err != nil {
		log.Fatal(err)
	}
	canvas := render.NewRaster(int(cfg.Width), int(cfg.Height), render.NewAtlas(settings.SpriteDir))

	var writeErr error
	frame := func(w *sim.World) {
		if writeErr != nil || w.Tick%*every != 0 {
			return
		}
		render.Frame(canvas, w.Bodies())
		writeErr = writeFrame(filepath.Join(*out, fmt.Sprintf("frame_%05d.png", w.Tick)), canvas)
	}

	if *realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := world.Run(ctx, *ticks, frame); err != nil {
			log.Println("stopped:", err)
		}
	} else {
		for i := 0; i < *ticks && writeErr == nil; i++ {
			world.Step()
			frame(world)
		}
	}
	if writeErr != nil {
		log.Fatal(writeErr)
	}
	log.Printf("simulated %d ticks into %s", world.Tick, *out)
}

func writeFrame(path string, canvas *render.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, canvas.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

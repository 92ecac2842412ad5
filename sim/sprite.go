package sim

import "math/rand"

// SpriteRef is an opaque handle to a visual asset. Physics never reads it.
type SpriteRef string

// SpritePicker chooses the sprite for a newly spawned body.
type SpritePicker func() SpriteRef

var DefaultPalette = []string{
	"Etc_3328.png",
	"Etc_3329.png",
	"Etc_3338.png",
	"Etc_3339.png",
	"Etc_3341.png",
	"Etc_3342.png",
	"Etc_3343.png",
	"Etc_3344.png",
}

// RandomSprite picks uniformly from palette. An empty palette behaves like NoSprite.
func RandomSprite(rng *rand.Rand, palette []string) SpritePicker {
	if len(palette) == 0 {
		return NoSprite
	}
	names := append([]string(nil), palette...)
	return func() SpriteRef {
		return SpriteRef(names[rng.Intn(len(names))])
	}
}

func NoSprite() SpriteRef { return "" }

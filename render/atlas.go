package render

import (
	"hash/fnv"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"

	"ballpit/sim"
)

const discSize = 64

// Atlas resolves sprite handles to images under dir. Sprites that cannot be
// loaded are replaced by a tinted disc so a frame is always complete.
type Atlas struct {
	dir string

	mu    sync.Mutex
	cache map[sim.SpriteRef]image.Image
}

func NewAtlas(dir string) *Atlas {
	return &Atlas{dir: dir, cache: make(map[sim.SpriteRef]image.Image)}
}

func (a *Atlas) Image(ref sim.SpriteRef) image.Image {
	a.mu.Lock()
	defer a.mu.Unlock()
	if img, ok := a.cache[ref]; ok {
		return img
	}
	img, err := a.load(ref)
	if err != nil {
		if ref != "" {
			log.Printf("sprite %q: %v, using disc", ref, err)
		}
		img = Disc(ref, discSize)
	}
	a.cache[ref] = img
	return img
}

func (a *Atlas) load(ref sim.SpriteRef) (image.Image, error) {
	if ref == "" || a.dir == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(filepath.Join(a.dir, filepath.Base(string(ref))))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// Tint is a stable colour for a sprite handle.
func Tint(ref sim.SpriteRef) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ref))
	v := h.Sum32()
	return color.RGBA{R: 80 + uint8(v)%160, G: 80 + uint8(v>>8)%160, B: 80 + uint8(v>>16)%160, A: 255}
}

// Disc is a filled circle with a light stripe from the centre to the right
// edge, so rotation stays visible.
func Disc(ref sim.SpriteRef, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := Tint(ref)
	stripe := color.RGBA{R: 250, G: 250, B: 250, A: 255}
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			if math.Hypot(dx, dy) > c {
				continue
			}
			if dx > 0 && math.Abs(dy) < float64(size)/16 {
				img.SetRGBA(x, y, stripe)
				continue
			}
			img.SetRGBA(x, y, fill)
		}
	}
	return img
}

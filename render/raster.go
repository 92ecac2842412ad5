package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"ballpit/sim"
)

// Raster is an offscreen RGBA canvas.
type Raster struct {
	img   *image.RGBA
	atlas *Atlas
	bg    image.Image
}

func NewRaster(w, h int, atlas *Atlas) *Raster {
	if atlas == nil {
		atlas = NewAtlas("")
	}
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		atlas: atlas,
		bg:    image.NewUniform(color.RGBA{R: 16, G: 16, B: 24, A: 255}),
	}
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), r.bg, image.Point{}, draw.Src)
}

func (r *Raster) DrawSprite(ref sim.SpriteRef, center sim.Vector2, size, angle float64) {
	src := r.atlas.Image(ref)
	sb := src.Bounds()
	if sb.Empty() || size <= 0 {
		return
	}
	sx := size / float64(sb.Dx())
	sy := size / float64(sb.Dy())
	cx := float64(sb.Min.X) + float64(sb.Dx())/2
	cy := float64(sb.Min.Y) + float64(sb.Dy())/2
	sin, cos := math.Sincos(angle)

	// translate(center) * rotate(angle) * scale(sx, sy) * translate(-srcCentre)
	a, b := cos*sx, -sin*sy
	d, e := sin*sx, cos*sy
	m := f64.Aff3{
		a, b, center.X - (a*cx + b*cy),
		d, e, center.Y - (d*cx + e*cy),
	}
	draw.BiLinear.Transform(r.img, m, src, sb, draw.Over, nil)
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

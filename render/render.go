// Package render draws simulation frames. The physics core never imports it.
package render

import "ballpit/sim"

// Surface is a 2D raster a frame is drawn on.
type Surface interface {
	Clear()
	// DrawSprite draws ref as a size×size square centred on center, rotated
	// by angle radians about its own centre.
	DrawSprite(ref sim.SpriteRef, center sim.Vector2, size, angle float64)
}

// Frame clears s and draws every body as a 2r×2r sprite. It only reads bodies.
func Frame(s Surface, bodies []sim.BodyView) {
	s.Clear()
	for _, b := range bodies {
		s.DrawSprite(b.Sprite, b.Position, 2*b.Radius, b.Angle)
	}
}

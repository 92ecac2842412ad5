package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ballpit/sim"
)

// Terminal cells are about twice as tall as wide.
const cellAspect = 2.0

var spinGlyphs = []rune{'◐', '◓', '◑', '◒'}

type cell struct {
	r     rune
	style *lipgloss.Style
}

// Terminal is a character grid covering a world of worldW×worldH.
type Terminal struct {
	cols, rows     int
	worldW, worldH float64
	cells          []cell
	styles         map[sim.SpriteRef]*lipgloss.Style
}

func NewTerminal(cols, rows int, worldW, worldH float64) *Terminal {
	t := &Terminal{
		cols:   max(cols, 1),
		rows:   max(rows, 1),
		worldW: worldW,
		worldH: worldH,
		styles: make(map[sim.SpriteRef]*lipgloss.Style),
	}
	t.cells = make([]cell, t.cols*t.rows)
	t.Clear()
	return t
}

func (t *Terminal) Clear() {
	for i := range t.cells {
		t.cells[i] = cell{r: ' '}
	}
}

func (t *Terminal) style(ref sim.SpriteRef) *lipgloss.Style {
	if st, ok := t.styles[ref]; ok {
		return st
	}
	c := Tint(ref)
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	t.styles[ref] = &st
	return &st
}

func (t *Terminal) DrawSprite(ref sim.SpriteRef, center sim.Vector2, size, angle float64) {
	kx := float64(t.cols) / t.worldW
	ky := float64(t.rows) / t.worldH
	cx, cy := center.X*kx, center.Y*ky
	rx := math.Max(size/2*kx, 0.5)
	ry := math.Max(size/2*ky, 0.5/cellAspect)

	st := t.style(ref)
	for row := int(math.Floor(cy - ry)); row <= int(math.Ceil(cy+ry)); row++ {
		for col := int(math.Floor(cx - rx)); col <= int(math.Ceil(cx+rx)); col++ {
			if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
				continue
			}
			dx := (float64(col) + 0.5 - cx) / rx
			dy := (float64(row) + 0.5 - cy) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			t.cells[row*t.cols+col] = cell{r: '●', style: st}
		}
	}

	col, row := int(math.Floor(cx)), int(math.Floor(cy))
	if col >= 0 && col < t.cols && row >= 0 && row < t.rows {
		t.cells[row*t.cols+col] = cell{r: spinGlyph(angle), style: st}
	}
}

func spinGlyph(angle float64) rune {
	q := math.Mod(angle, 2*math.Pi)
	if q < 0 {
		q += 2 * math.Pi
	}
	return spinGlyphs[int(q/(math.Pi/2))%len(spinGlyphs)]
}

// Rune returns the character at col, row.
func (t *Terminal) Rune(col, row int) rune {
	return t.cells[row*t.cols+col].r
}

func (t *Terminal) String() string {
	var sb strings.Builder
	for row := 0; row < t.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range t.cells[row*t.cols : (row+1)*t.cols] {
			if c.style == nil {
				sb.WriteRune(c.r)
				continue
			}
			sb.WriteString(c.style.Render(string(c.r)))
		}
	}
	return sb.String()
}

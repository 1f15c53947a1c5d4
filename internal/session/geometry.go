package session

import (
	"fmt"
	"strings"
)

type Button int

const (
	LeftButton Button = iota
	RightButton
	MiddleButton
)

func (b Button) String() string {
	switch b {
	case LeftButton:
		return "left"
	case RightButton:
		return "right"
	case MiddleButton:
		return "middle"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

func ParseButton(s string) (Button, error) {
	switch strings.ToLower(s) {
	case "left", "l", "1":
		return LeftButton, nil
	case "right", "r", "2":
		return RightButton, nil
	case "middle", "m", "3":
		return MiddleButton, nil
	}
	return 0, fmt.Errorf("unknown mouse button %q", s)
}

// Geometry places the field on a pixel canvas. Every cell covers
// CellWidth x CellHeight pixels, the top-left cell starting at the origin.
type Geometry struct {
	OriginX, OriginY      int
	CellWidth, CellHeight int
}

func (g Geometry) PixelToCell(px, py int) (x, y int) {
	return floorDiv(px-g.OriginX, g.CellWidth), floorDiv(py-g.OriginY, g.CellHeight)
}

func (g Geometry) CellToPixel(x, y int) (px, py int) {
	return g.OriginX + x*g.CellWidth, g.OriginY + y*g.CellHeight
}

// CanvasSize is the pixel size of a width x height field including the origin offset.
func (g Geometry) CanvasSize(width, height int) (int, int) {
	return g.CellToPixel(width, height)
}

func (g Geometry) Validate() error {
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d", g.CellWidth, g.CellHeight)
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

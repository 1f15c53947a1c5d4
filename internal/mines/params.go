package mines

import (
	"fmt"
	"iter"
	"math"
	"strings"
)

// DefaultMaxCells is the largest field area accepted from players unless
// configured otherwise.
const DefaultMaxCells = 1 << 20

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Size() int {
	return p.Width * p.Height
}

// Validate reports whether a field with these params can be generated.
// At least one cell has to stay safe.
func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0:
		return ParamsError{p, "width must be positive"}
	case p.Height <= 0:
		return ParamsError{p, "height must be positive"}
	case p.MineCount < 0:
		return ParamsError{p, "mine count must not be negative"}
	case p.Width > math.MaxInt/p.Height:
		return ParamsError{p, "field area overflows int"}
	case p.MineCount >= p.Width*p.Height:
		return ParamsError{p, fmt.Sprintf(
			"not enough space for %d mines on %d cells",
			p.MineCount, p.Width*p.Height,
		)}
	}
	return nil
}

// ValidateArea is Validate plus a cap on the number of cells. A
// non-positive maxCells means no cap.
func (p GameParams) ValidateArea(maxCells int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if maxCells > 0 && p.Size() > maxCells {
		return ParamsError{p, fmt.Sprintf(
			"%d cells exceed the limit of %d", p.Size(), maxCells,
		)}
	}
	return nil
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string, maxCells int) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.ValidateArea(maxCells); err != nil {
		return nil, err
	}
	return p, nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) index(x, y int) int {
	return y*p.Width + x
}

func (p GameParams) point(i int) Point {
	return Point{i % p.Width, i / p.Width}
}

func (p GameParams) checkBounds(x, y int) error {
	if !p.PointInBounds(x, y) {
		return RangeError{x, y, p.Width, p.Height}
	}
	return nil
}

// neighbours yields the indices of the cells around x:y, clipped to the
// field. The cell itself is not included.
func (p GameParams) neighbours(x, y int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for dy := -1; dy <= +1; dy++ {
			for dx := -1; dx <= +1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !p.PointInBounds(x+dx, y+dy) {
					continue
				}
				if !yield(p.index(x+dx, y+dy)) {
					return
				}
			}
		}
	}
}

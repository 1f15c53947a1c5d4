package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Unknown       CellStatus = -2
	Flag          CellStatus = -1
	CorrectFlag   CellStatus = 64 // post-game-over
	ExplodedMine  CellStatus = 65
	WrongFlag     CellStatus = 66
	UnflaggedMine CellStatus = 67
	// 0-8 for an open cell with given number of mined neighbours
)

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return " "
	case Flag:
		return "*"
	case 0:
		return "."
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	case CorrectFlag:
		return "F"
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "#"
	case UnflaggedMine:
		return "M"
	default:
		return "!"
	}
}

// Grid is what the player is allowed to see, row by row.
type Grid []CellStatus

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")

	}
	return b.String()
}

func (s *GameState) cellStatus(i int) CellStatus {
	c := s.cells[i]
	switch {
	case c.Mine && c.Revealed && i == s.exploded:
		return ExplodedMine
	case c.Mine && c.Revealed && c.Flagged:
		return CorrectFlag
	case c.Mine && c.Revealed:
		return UnflaggedMine
	case c.Flagged && s.lost:
		return WrongFlag
	case c.Revealed:
		return CellStatus(c.Adjacent)
	case c.Flagged:
		return Flag
	default:
		return Unknown
	}
}

func (s *GameState) PlayerGrid() Grid {
	grid := make(Grid, len(s.cells))
	for i := range s.cells {
		grid[i] = s.cellStatus(i)
	}
	return grid
}

func (s *GameState) String() string {
	return s.PlayerGrid().ToString(s.Width)
}

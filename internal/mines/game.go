package mines

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Point struct {
	X, Y int
}

type Cell struct {
	Mine     bool
	Flagged  bool
	Revealed bool
	Adjacent int8 // mined neighbours; not used for mines
}

type Status int8

const (
	Playing Status = iota
	Lost
	Won
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

type GameState struct {
	GameParams
	cells    []Cell
	mines    []Point
	safeLeft int
	lost     bool
	exploded int
}

// NewRand returns a PCG source seeded from the runtime's random hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewGame places params.MineCount mines uniformly at random. Nothing keeps
// the player's first click safe. A nil r draws from [NewRand].
func NewGame(params GameParams, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand()
	}

	width, height, mineCount := params.Unpack()

	/*
	 * Write down the list of possible mine locations and pick mineCount
	 * off it at random, swapping each pick out of the live range.
	 */
	candidates := make([]int, width*height)
	for i := range candidates {
		candidates[i] = i
	}
	mines := make([]Point, 0, mineCount)
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		mines = append(mines, params.point(candidates[i]))
		k--
		candidates[i] = candidates[k]
	}

	return newGame(params, mines), nil
}

// NewGameWithMines builds a field with a fixed mine layout.
func NewGameWithMines(width, height int, mines ...Point) (*GameState, error) {
	params := GameParams{Width: width, Height: height, MineCount: len(mines)}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[Point]bool, len(mines))
	for _, m := range mines {
		if !params.PointInBounds(m.X, m.Y) {
			return nil, ParamsError{params, RangeError{m.X, m.Y, width, height}.Error()}
		}
		if seen[m] {
			return nil, ParamsError{params, "duplicate mine"}
		}
		seen[m] = true
	}
	return newGame(params, append([]Point(nil), mines...)), nil
}

func newGame(params GameParams, mines []Point) *GameState {
	s := &GameState{
		GameParams: params,
		cells:      make([]Cell, params.Size()),
		mines:      mines,
		safeLeft:   params.Size(),
		exploded:   -1,
	}
	for _, m := range mines {
		s.cells[s.index(m.X, m.Y)].Mine = true
		s.safeLeft--
		for j := range s.neighbours(m.X, m.Y) {
			s.cells[j].Adjacent++
		}
	}
	Log.WithFields(logrus.Fields{
		"params": params.Seed(),
	}).Debug("new field")
	return s
}

func (s *GameState) Dimensions() (width, height int) {
	return s.Width, s.Height
}

func (s *GameState) Lost() bool {
	return s.lost
}

// Won does not touch the field; see [GameState.CheckWin].
func (s *GameState) Won() bool {
	return !s.lost && s.safeLeft == 0
}

func (s *GameState) Status() Status {
	switch {
	case s.lost:
		return Lost
	case s.safeLeft == 0:
		return Won
	default:
		return Playing
	}
}

func (s *GameState) SafeLeft() int {
	return s.safeLeft
}

func (s *GameState) Mines() []Point {
	return append([]Point(nil), s.mines...)
}

func (s *GameState) FlagCount() (count int) {
	for _, c := range s.cells {
		if c.Flagged {
			count++
		}
	}
	return
}

// Exploded returns the mine that ended the game, if any.
func (s *GameState) Exploded() (Point, bool) {
	if s.exploded < 0 {
		return Point{}, false
	}
	return s.point(s.exploded), true
}

func (s *GameState) CellAt(x, y int) (Cell, error) {
	if err := s.checkBounds(x, y); err != nil {
		return Cell{}, err
	}
	return s.cells[s.index(x, y)], nil
}

func (s *GameState) IsMine(x, y int) (bool, error) {
	c, err := s.CellAt(x, y)
	return c.Mine, err
}

func (s *GameState) IsFlagged(x, y int) (bool, error) {
	c, err := s.CellAt(x, y)
	return c.Flagged, err
}

func (s *GameState) IsRevealed(x, y int) (bool, error) {
	c, err := s.CellAt(x, y)
	return c.Revealed, err
}

func (s *GameState) AdjacentMines(x, y int) (int, error) {
	c, err := s.CellAt(x, y)
	return int(c.Adjacent), err
}

func (s *GameState) checkMove(x, y int) error {
	if err := s.checkBounds(x, y); err != nil {
		return err
	}
	if s.Status() != Playing {
		return ErrGameOver
	}
	return nil
}

// Reveal opens x:y. Revealed and flagged cells are left alone. Opening a mine
// loses the game and exposes every mine; opening a blank cell floods through
// its blank neighbours.
func (s *GameState) Reveal(x, y int) error {
	if err := s.checkMove(x, y); err != nil {
		return err
	}
	s.open(s.index(x, y))
	return nil
}

func (s *GameState) open(i int) {
	c := &s.cells[i]
	if c.Revealed || c.Flagged {
		return
	}

	if c.Mine {
		s.lost = true
		s.exploded = i
		Log.WithFields(logrus.Fields{
			"params": s.Seed(),
			"cell":   s.point(i),
		}).Debug("mine hit")
		s.RevealAll(true)
		return
	}

	todo := newCelltodo(len(s.cells))
	s.uncover(i, todo)

	/*
	 * Every queued cell is blank, so all its neighbours are safe. Open
	 * the covered ones and queue those that are blank as well.
	 */
	for {
		j, ok := todo.pop()
		if !ok {
			break
		}
		p := s.point(j)
		for k := range s.neighbours(p.X, p.Y) {
			n := &s.cells[k]
			if n.Revealed || n.Flagged || n.Mine {
				continue
			}
			s.uncover(k, todo)
		}
	}
}

// uncover marks a safe cell revealed before queueing it, so no index is
// ever queued twice.
func (s *GameState) uncover(i int, todo *celltodo) {
	s.cells[i].Revealed = true
	s.safeLeft--
	if s.cells[i].Adjacent == 0 {
		todo.add(i)
	}
}

// ToggleFlag flips the flag on a covered cell. Revealed cells keep no flag.
func (s *GameState) ToggleFlag(x, y int) error {
	if err := s.checkMove(x, y); err != nil {
		return err
	}
	c := &s.cells[s.index(x, y)]
	if c.Revealed {
		return nil
	}
	c.Flagged = !c.Flagged
	return nil
}

// Chord opens every unflagged covered neighbour of a revealed cell once the
// player has placed as many flags around it as it has mined neighbours.
func (s *GameState) Chord(x, y int) error {
	if err := s.checkMove(x, y); err != nil {
		return err
	}
	c := s.cells[s.index(x, y)]
	if !c.Revealed || c.Adjacent == 0 {
		return nil
	}

	var flags int8
	js := make([]int, 0, 8)
	for j := range s.neighbours(x, y) {
		if s.cells[j].Flagged {
			flags++
		} else if !s.cells[j].Revealed {
			js = append(js, j)
		}
	}
	if flags != c.Adjacent {
		return nil
	}

	for _, j := range js {
		s.open(j)
		if s.Status() != Playing {
			break
		}
	}
	return nil
}

// CheckWin reports whether every safe cell is open. A won field is then
// revealed in full.
func (s *GameState) CheckWin() bool {
	if !s.Won() {
		return false
	}
	s.RevealAll(false)
	return true
}

// RevealAll exposes every mine, and every remaining cell too unless
// minesOnly is set. A game still running at that point counts as lost.
func (s *GameState) RevealAll(minesOnly bool) {
	if s.Status() == Playing {
		s.lost = true
	}
	for i := range s.cells {
		c := &s.cells[i]
		if c.Revealed {
			continue
		}
		if c.Mine {
			c.Revealed = true
		} else if !minesOnly {
			c.Revealed = true
			s.safeLeft--
		}
	}
}

func (s *GameState) Forfeit() {
	s.RevealAll(false)
}

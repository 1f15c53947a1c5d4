package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/minefield/internal/mines"
)

// Snapshot is a full copy of what a front end needs to redraw the field.
type Snapshot struct {
	mines.GameParams
	FlagCount int
	SafeLeft  int
	Status    mines.Status
	Grid      mines.Grid
}

// Session owns the field of one player. The field itself is not safe for
// concurrent use, so every access goes through mu.
type Session struct {
	mu       sync.Mutex
	game     *mines.GameState
	geometry Geometry
	rnd      *rand.Rand
	lastSeen time.Time
}

func New(params mines.GameParams, geometry Geometry, rnd *rand.Rand) (*Session, error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	game, err := mines.NewGame(params, rnd)
	if err != nil {
		return nil, err
	}
	s := &Session{
		game:     game,
		geometry: geometry,
		rnd:      rnd,
		lastSeen: time.Now(),
	}
	return s, nil
}

func (s *Session) Geometry() Geometry {
	return s.geometry
}

func (s *Session) Params() mines.GameParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GameParams
}

// Reset throws the current field away and starts a new one. The old field
// stays in play if params are invalid.
func (s *Session) Reset(params mines.GameParams) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := mines.NewGame(params, s.rnd)
	if err != nil {
		return s.snapshot(), err
	}
	s.game = game
	return s.snapshot(), nil
}

func (s *Session) Open(x, y int) (Snapshot, error) {
	return s.move(x, y, (*mines.GameState).Reveal)
}

func (s *Session) Flag(x, y int) (Snapshot, error) {
	return s.move(x, y, (*mines.GameState).ToggleFlag)
}

func (s *Session) Chord(x, y int) (Snapshot, error) {
	return s.move(x, y, (*mines.GameState).Chord)
}

// Click dispatches a mouse click at canvas pixel px:py.
func (s *Session) Click(px, py int, b Button) (Snapshot, error) {
	x, y := s.geometry.PixelToCell(px, py)
	switch b {
	case RightButton:
		return s.Flag(x, y)
	case MiddleButton:
		return s.Chord(x, y)
	default:
		return s.Open(x, y)
	}
}

func (s *Session) Forfeit() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.Status() == mines.Playing {
		s.game.Forfeit()
	}
	return s.snapshot()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

type moveFunc func(game *mines.GameState, x, y int) error

func (s *Session) move(x, y int, fn moveFunc) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.game, x, y)
	s.game.CheckWin()
	return s.snapshot(), err
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		GameParams: s.game.GameParams,
		FlagCount:  s.game.FlagCount(),
		SafeLeft:   s.game.SafeLeft(),
		Status:     s.game.Status(),
		Grid:       s.game.PlayerGrid(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

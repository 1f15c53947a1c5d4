package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vancomm/minefield/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Store keeps the sessions of a running server in memory. Nothing outlives
// the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	geometry Geometry
	newRand  func() *rand.Rand
	now      func() time.Time
}

func NewStore(geometry Geometry, newRand func() *rand.Rand) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		geometry: geometry,
		newRand:  newRand,
		now:      time.Now,
	}
}

func (st *Store) Create(params mines.GameParams) (uuid.UUID, *Session, error) {
	s, err := New(params, st.geometry, st.newRand())
	if err != nil {
		return uuid.Nil, nil, err
	}
	s.touch(st.now())

	id := uuid.New()
	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()

	return id, s, nil
}

func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(st.now())
	return s, nil
}

func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops every session not used within ttl and returns how many went.
func (st *Store) Sweep(ttl time.Duration) int {
	deadline := st.now().Add(-ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(deadline) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(
	ctx context.Context, interval, ttl time.Duration, swept func(n int),
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Sweep(ttl); n > 0 && swept != nil {
				swept(n)
			}
		}
	}
}

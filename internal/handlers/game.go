package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

type GameHandler struct {
	logger   *slog.Logger
	store    *session.Store
	ws       *config.WebSocket
	defaults mines.GameParams
	maxCells int
	geometry session.Geometry
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	ws *config.WebSocket,
	defaults mines.GameParams,
	maxCells int,
	geometry session.Geometry,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		store:    store,
		ws:       ws,
		defaults: defaults,
		maxCells: maxCells,
		geometry: geometry,
	}

	return handler
}

func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (uuid.UUID, *session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.logger, fmt.Errorf("invalid game session id: %w", err))
		return uuid.Nil, nil, false
	}
	s, err := g.store.Get(id)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return uuid.Nil, nil, false
	}
	return id, s, true
}

func (g GameHandler) sendSnapshot(
	w http.ResponseWriter, id uuid.UUID, snap session.Snapshot, err error,
) {
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(id, g.geometry, snap))
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseGameParams(r.URL.Query(), g.defaults, g.maxCells)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	id, s, err := g.store.Create(params)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	g.logger.Debug("created game session",
		slog.String("id", id.String()),
		slog.String("params", params.Seed()),
	)

	g.sendSnapshot(w, id, s.Snapshot(), nil)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, s, ok := g.session(w, r)
	if !ok {
		return
	}
	g.sendSnapshot(w, id, s.Snapshot(), nil)
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	id, s, ok := g.session(w, r)
	if !ok {
		return
	}

	var snap session.Snapshot
	switch move {
	case Open:
		snap, err = s.Open(pos.X, pos.Y)
	case Flag:
		snap, err = s.Flag(pos.X, pos.Y)
	case Chord:
		snap, err = s.Chord(pos.X, pos.Y)
	}

	g.sendSnapshot(w, id, snap, err)
}

func (g GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	click, button, err := ParseClick(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	id, s, ok := g.session(w, r)
	if !ok {
		return
	}

	snap, err := s.Click(click.PX, click.PY, button)
	g.sendSnapshot(w, id, snap, err)
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, s, ok := g.session(w, r)
	if !ok {
		return
	}

	params, err := ParseGameParams(r.URL.Query(), s.Params(), g.maxCells)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	snap, err := s.Reset(params)
	g.sendSnapshot(w, id, snap, err)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	id, s, ok := g.session(w, r)
	if !ok {
		return
	}
	g.sendSnapshot(w, id, s.Forfeit(), nil)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.logger, fmt.Errorf("invalid game session id: %w", err))
		return
	}
	if err := g.store.Delete(id); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

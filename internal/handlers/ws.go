package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsChord   wsCommand = "c"
	wsForfeit wsCommand = "r"
	wsNew     wsCommand = "n"
)

func parseXY(args []string) (x, y int, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected 2 coordinates, got %d", len(args))
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate: %w", err)
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate: %w", err)
	}
	return x, y, nil
}

type gameExecutor struct {
	*session.Session
	maxCells int
}

func (game gameExecutor) move(
	args []string, fn func(x, y int) (session.Snapshot, error),
) (session.Snapshot, error) {
	x, y, err := parseXY(args)
	if err != nil {
		return game.Snapshot(), err
	}
	return fn(x, y)
}

func (game gameExecutor) execute(query string) (session.Snapshot, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return game.Snapshot(), nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsNoop:
		return game.Snapshot(), nil
	case wsOpen:
		return game.move(args, game.Open)
	case wsFlag:
		return game.move(args, game.Flag)
	case wsChord:
		return game.move(args, game.Chord)
	case wsForfeit:
		return game.Forfeit(), nil
	case wsNew:
		if len(args) != 1 {
			return game.Snapshot(), fmt.Errorf("expected a game seed")
		}
		params, err := mines.ParseSeed(args[0], game.maxCells)
		if err != nil {
			return game.Snapshot(), err
		}
		return game.Reset(*params)
	default:
		return game.Snapshot(), fmt.Errorf("unknown command %q", cmd)
	}
}

type wsReply struct {
	*GameSessionDTO
	Error string `json:"error,omitempty"`
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, s, ok := g.session(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	game := gameExecutor{s, g.maxCells}
	if err := g.wsReply(conn, id, game.Snapshot(), nil); err != nil {
		g.logger.Debug("websocket closed", slog.Any("error", err))
		return
	}

	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Debug("websocket read failed", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		message := strings.TrimSpace(string(buf))
		for _, line := range strings.Split(message, "\n") {
			snap, moveErr := game.execute(line)
			if err := g.wsReply(conn, id, snap, moveErr); err != nil {
				g.logger.Error("unable to write to websocket", slog.Any("error", err))
				return
			}
		}
	}
}

func (g GameHandler) wsReply(
	conn *websocket.Conn, id uuid.UUID, snap session.Snapshot, moveErr error,
) error {
	reply := wsReply{GameSessionDTO: NewGameSessionDTO(id, g.geometry, snap)}
	if moveErr != nil {
		reply.Error = moveErr.Error()
	}
	payload, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

func testConfig() *config.Config {
	return &config.Config{
		Addr:          "127.0.0.1:0",
		Game:          mines.GameParams{Width: 4, Height: 3, MineCount: 0},
		MaxCells:      100,
		Geometry:      session.Geometry{CellWidth: 10, CellHeight: 10},
		SessionTTL:    time.Hour,
		SweepInterval: time.Minute,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type reply struct {
	GameSessionId string     `json:"game_session_id"`
	Grid          mines.Grid `json:"grid"`
	Width         int        `json:"width"`
	Status        string     `json:"status"`
	Error         string     `json:"error"`
}

func readReply(t *testing.T, conn *websocket.Conn) reply {
	t.Helper()
	var r reply
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, buf, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(buf, &r))
	return r
}

func TestWebSocketGame(t *testing.T) {
	a := New(testLogger(), testConfig())
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/game", "", nil)
	require.NoError(t, err)
	var created reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + created.GameSessionId + "/connect"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	r := readReply(t, conn)
	assert.Equal(t, created.GameSessionId, r.GameSessionId)
	assert.Equal(t, "playing", r.Status)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 0 0\nf 0 0")))
	r = readReply(t, conn)
	assert.Equal(t, mines.Flag, r.Grid[0])
	r = readReply(t, conn)
	assert.Equal(t, mines.Unknown, r.Grid[0])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 7 7")))
	r = readReply(t, conn)
	assert.NotEmpty(t, r.Error)
	assert.Equal(t, "playing", r.Status)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 3 2")))
	r = readReply(t, conn)
	assert.Equal(t, "won", r.Status)
	assert.Empty(t, r.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("n 6:2:1")))
	r = readReply(t, conn)
	assert.Equal(t, "playing", r.Status)
	assert.Equal(t, 6, r.Width)
}

func TestWebSocketUnknownSession(t *testing.T) {
	a := New(testLogger(), testConfig())
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/00000000-0000-0000-0000-000000000000/connect"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBasePath(t *testing.T) {
	cfg := testConfig()
	cfg.BasePath = "/api"
	a := New(testLogger(), cfg)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/game", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOversizedGame(t *testing.T) {
	a := New(testLogger(), testConfig())
	for _, query := range []string{
		"width=100000&height=100000&mine_count=10",
		"width=4611686018427387905&height=4&mine_count=0",
	} {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/game?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
	assert.Zero(t, a.store.Len())
}

func TestStartShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := testConfig()
	cfg.Addr = addr
	a := New(testLogger(), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(20 * time.Second):
		t.Fatal("server did not shut down")
	}
}

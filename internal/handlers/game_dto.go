package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type GameParamsDTO struct {
	Width     int `schema:"width"`
	Height    int `schema:"height"`
	MineCount int `schema:"mine_count"`
}

// ParseGameParams fills in the keys missing from src with defaults and
// rejects fields larger than maxCells.
func ParseGameParams(
	src map[string][]string, defaults mines.GameParams, maxCells int,
) (mines.GameParams, error) {
	dto := GameParamsDTO(defaults)
	if err := decoder.Decode(&dto, src); err != nil {
		return mines.GameParams{}, err
	}
	params := mines.GameParams(dto)
	return params, params.ValidateArea(maxCells)
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type ClickDTO struct {
	PX     int    `schema:"px,required"`
	PY     int    `schema:"py,required"`
	Button string `schema:"button"`
}

func ParseClick(src map[string][]string) (ClickDTO, session.Button, error) {
	var dto ClickDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, 0, err
	}
	if dto.Button == "" {
		return dto, session.LeftButton, nil
	}
	b, err := session.ParseButton(dto.Button)
	return dto, b, err
}

type GameMove string

const (
	Open  GameMove = "open"
	Flag  GameMove = "flag"
	Chord GameMove = "chord"
)

func ParseGameMove(s string) (GameMove, error) {
	switch m := GameMove(s); m {
	case Open, Flag, Chord:
		return m, nil
	}
	return "", fmt.Errorf("unknown move %q", s)
}

type GameSessionDTO struct {
	GameSessionId string     `json:"game_session_id"`
	Grid          mines.Grid `json:"grid"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	MineCount     int        `json:"mine_count"`
	FlagCount     int        `json:"flag_count"`
	SafeLeft      int        `json:"safe_left"`
	Status        string     `json:"status"`
	Dead          bool       `json:"dead"`
	Won           bool       `json:"won"`
	CellWidth     int        `json:"cell_width"`
	CellHeight    int        `json:"cell_height"`
}

func NewGameSessionDTO(
	id uuid.UUID, geometry session.Geometry, snap session.Snapshot,
) *GameSessionDTO {
	dto := &GameSessionDTO{
		GameSessionId: id.String(),
		Grid:          snap.Grid,
		Width:         snap.Width,
		Height:        snap.Height,
		MineCount:     snap.MineCount,
		FlagCount:     snap.FlagCount,
		SafeLeft:      snap.SafeLeft,
		Status:        snap.Status.String(),
		Dead:          snap.Status == mines.Lost,
		Won:           snap.Status == mines.Won,
		CellWidth:     geometry.CellWidth,
		CellHeight:    geometry.CellHeight,
	}
	return dto
}

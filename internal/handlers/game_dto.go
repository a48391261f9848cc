package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-board/internal/config"
	"github.com/vancomm/minesweeper-board/internal/session"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

// NewGameDTO holds the query of a new game request. Missing values fall back
// to the configured defaults.
type NewGameDTO struct {
	Height    int `schema:"height"`
	Width     int `schema:"width"`
	MineCount int `schema:"mine_count"`
}

func ParseNewGameDTO(src map[string][]string, defaults config.GameConfig) (session.Params, error) {
	dto := NewGameDTO{
		Height:    defaults.DefaultHeight,
		Width:     defaults.DefaultWidth,
		MineCount: defaults.DefaultMineCount,
	}
	if err := decoder.Decode(&dto, src); err != nil {
		return session.Params{}, err
	}
	return session.Params(dto), nil
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid game id %q", errBadRequest, s)
	}
	return id, nil
}

type GameDTO struct {
	ID string `json:"id"`
	session.View
}

type MoveDTO struct {
	ID string `json:"id"`
	session.Result
}

type errorDTO struct {
	Error string `json:"error"`
}

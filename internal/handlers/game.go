package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-board/internal/config"
	"github.com/vancomm/minesweeper-board/internal/session"
)

type GameHandler struct {
	log      logrus.FieldLogger
	registry *session.Registry
	ws       *config.WebSocket
	defaults config.GameConfig
}

func NewGameHandler(
	log logrus.FieldLogger,
	registry *session.Registry,
	ws *config.WebSocket,
	defaults config.GameConfig,
) *GameHandler {
	return &GameHandler{
		log:      log,
		registry: registry,
		ws:       ws,
		defaults: defaults,
	}
}

func (g GameHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/game", g.NewGame)
	mux.HandleFunc("GET /v1/game/{id}", g.Fetch)
	mux.HandleFunc("DELETE /v1/game/{id}", g.Delete)
	mux.HandleFunc("POST /v1/game/{id}/{move}", g.MakeAMove)
	mux.HandleFunc("GET /v1/game/{id}/connect", g.ConnectWS)
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewGameDTO(r.URL.Query(), g.defaults)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	id, s, err := g.registry.Create(params)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	view, err := s.View(r.Context())
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.log, GameDTO{ID: id.String(), View: view})
}

func (g GameHandler) session(r *http.Request) (*session.Session, string, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return nil, "", err
	}
	s, err := g.registry.Get(id)
	return s, id.String(), err
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, id, err := g.session(r)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	view, err := s.View(r.Context())
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	sendJSONOrLog(w, g.log, GameDTO{ID: id, View: view})
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	kind, err := session.ParseKind(r.PathValue("move"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	s, id, err := g.session(r)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	res, err := s.Submit(r.Context(), session.Event{
		Kind: kind, Row: pos.Row, Col: pos.Col,
	})
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	sendJSONOrLog(w, g.log, MoveDTO{ID: id, Result: res})
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	if err := g.registry.Delete(id); err != nil {
		sendError(w, g.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

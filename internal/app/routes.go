package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/minesweeper-board/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.registry, a.ws, a.config.Game,
	)
	game.Register(a.router)

	a.router.HandleFunc("GET /v1/status", a.status)
}

func (a *App) status(w http.ResponseWriter, r *http.Request) {
	handlers.SendJSON(w, map[string]any{
		"mode":  a.config.Mode,
		"games": a.registry.Len(),
	})
}

package app

import (
	"net/http"

	"github.com/vancomm/minefield/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.store, a.ws, a.config.Game, a.config.MaxCells, a.config.Geometry,
	)

	base := a.config.BasePath
	a.router.HandleFunc("POST "+base+"/game", game.NewGame)
	a.router.HandleFunc("GET "+base+"/game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE "+base+"/game/{id}", game.Delete)
	a.router.HandleFunc("POST "+base+"/game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST "+base+"/game/{id}/click", game.Click)
	a.router.HandleFunc("POST "+base+"/game/{id}/reset", game.Reset)
	a.router.HandleFunc("POST "+base+"/game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc(base+"/game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET "+base+"/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

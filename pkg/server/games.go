package server

import (
	"errors"
	"net/http"

	"gamestore/pkg/catalog"
	"gamestore/pkg/log"

	"github.com/labstack/echo/v4"
)

// listGames handles GET /games requests.
func (s *Server) listGames(ctx echo.Context) error {
	games, err := s.catalog.ListPublic()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list games")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list games",
		})
	}
	return ctx.JSON(http.StatusOK, games)
}

// getGame handles GET /games/:name requests.
func (s *Server) getGame(ctx echo.Context) error {
	name := ctx.Param("name")

	game, err := s.catalog.GetPublic(name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, map[string]string{
				"error": "game not found",
			})
		}
		log.Error().Err(err).Str("name", name).Msg("Failed to look up game")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to look up game",
		})
	}
	return ctx.JSON(http.StatusOK, game)
}

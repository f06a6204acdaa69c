package server

import (
	"errors"
	"net/http"

	"gamestore/pkg/catalog"
	"gamestore/pkg/log"
	"gamestore/pkg/session"

	"github.com/labstack/echo/v4"
)

type addGameRequest struct {
	Name           string   `json:"name"`
	URL            string   `json:"URL"`
	ScreenshotsURL string   `json:"screenshots_url"`
	Description    string   `json:"description"`
	Rating         string   `json:"rating"`
	Platform       string   `json:"platform"`
	Genres         []string `json:"genres"`
	InPackMan      bool     `json:"in_pack_man"`
}

type removeGamesRequest struct {
	SourceEncoded []string `json:"base64_vals"`
}

// addGame handles POST /admin/games requests.
func (s *Server) addGame(ctx echo.Context) error {
	var req addGameRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	game, err := catalog.NewEntry(req.Name, req.URL, req.ScreenshotsURL, req.Description,
		req.Rating, req.Platform, req.Genres, req.InPackMan)
	if err != nil {
		if errors.Is(err, catalog.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}
		log.Error().Err(err).Msg("Failed to build catalog entry")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to add game",
		})
	}

	if s.checker != nil {
		if err := s.checker.Check(ctx.Request().Context(), game.URL); err != nil {
			log.Warn().Err(err).Str("url", game.URL).Msg("Download URL check failed")
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"error": "download url is not reachable",
			})
		}
	}

	if err := s.catalog.Insert(game); err != nil {
		if errors.Is(err, catalog.ErrNameExists) {
			return ctx.JSON(http.StatusConflict, map[string]string{
				"error": "a game with that name already exists",
			})
		}
		log.Error().Err(err).Str("name", game.Name).Msg("Failed to insert game")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to add game",
		})
	}

	log.Info().
		Str("name", game.Name).
		Str("added_by", session.Username(ctx)).
		Msg("Game added")
	return ctx.JSON(http.StatusCreated, game)
}

// removeGames handles POST /admin/games/remove requests. Entries are
// keyed by their encoded source values, typically collected from a
// prior internal search.
func (s *Server) removeGames(ctx echo.Context) error {
	var req removeGamesRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	deleted, err := s.catalog.DeleteBySource(req.SourceEncoded)
	if err != nil {
		log.Error().Err(err).Msg("Failed to remove games")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to remove games",
		})
	}

	log.Info().
		Strs("deleted", deleted).
		Str("removed_by", session.Username(ctx)).
		Msg("Games removed")
	return ctx.JSON(http.StatusOK, map[string][]string{
		"deleted": deleted,
	})
}

// removeGameByName handles DELETE /admin/games/:name requests, the
// stable name-keyed deletion path for programmatic callers.
func (s *Server) removeGameByName(ctx echo.Context) error {
	name := ctx.Param("name")

	if err := s.catalog.DeleteByName(name); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, map[string]string{
				"error": "game not found",
			})
		}
		log.Error().Err(err).Str("name", name).Msg("Failed to remove game")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to remove game",
		})
	}

	log.Info().
		Str("name", name).
		Str("removed_by", session.Username(ctx)).
		Msg("Game removed")
	return ctx.JSON(http.StatusOK, map[string]string{
		"deleted": name,
	})
}

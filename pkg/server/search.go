package server

import (
	"net/http"

	"gamestore/pkg/catalog"
	"gamestore/pkg/log"
	"gamestore/pkg/models"

	"github.com/labstack/echo/v4"
)

// searchGames handles GET /search/:term requests. The term is either
// "tags=a,b" or "free-text=x"; anything else yields an empty result.
func (s *Server) searchGames(ctx echo.Context) error {
	term := ctx.Param("term")

	kind, query, ok := catalog.ParseQuery(term)
	if !ok {
		return ctx.JSON(http.StatusOK, []models.PublicGame{})
	}

	results, err := s.catalog.SearchPublic(kind, query)
	if err != nil {
		log.Error().Err(err).Str("term", term).Msg("Search failed")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "search failed",
		})
	}
	return ctx.JSON(http.StatusOK, results)
}

// searchInternal handles GET /admin/search/:term requests. The results
// carry the encoded source keys the removal flow deletes by.
func (s *Server) searchInternal(ctx echo.Context) error {
	term := ctx.Param("term")

	kind, query, ok := catalog.ParseQuery(term)
	if !ok {
		return ctx.JSON(http.StatusOK, []models.InternalGame{})
	}

	results, err := s.catalog.SearchInternal(kind, query)
	if err != nil {
		log.Error().Err(err).Str("term", term).Msg("Internal search failed")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "search failed",
		})
	}
	return ctx.JSON(http.StatusOK, results)
}

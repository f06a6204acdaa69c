package server

import (
	"net/http"

	"gamestore/pkg/log"

	"github.com/labstack/echo/v4"
)

// listTags handles GET /tags requests.
func (s *Server) listTags(ctx echo.Context) error {
	facets, err := s.catalog.TagFacets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to aggregate tags")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to aggregate tags",
		})
	}
	return ctx.JSON(http.StatusOK, facets)
}

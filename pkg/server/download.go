package server

import (
	"errors"
	"net/http"

	"gamestore/pkg/catalog"
	"gamestore/pkg/log"

	"github.com/labstack/echo/v4"
)

// downloadGame handles GET /games/:name/download requests. Dispensing
// the URL bumps the download counter by exactly one.
func (s *Server) downloadGame(ctx echo.Context) error {
	name := ctx.Param("name")
	log.Info().Str("name", name).Msg("Download request")

	grant, err := s.catalog.RecordDownload(name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, map[string]string{
				"error": "game not found",
			})
		}
		log.Error().Err(err).Str("name", name).Msg("Failed to record download")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to record download",
		})
	}

	return ctx.JSON(http.StatusOK, grant)
}

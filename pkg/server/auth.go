package server

import (
	"errors"
	"net/http"

	"gamestore/pkg/accounts"
	"gamestore/pkg/log"
	"gamestore/pkg/session"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// login verifies credentials and issues a session cookie. The route is
// mounted at the configurable login path.
func (s *Server) login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid login request",
		})
	}

	account, err := s.accounts.Verify(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrUnauthorized) {
			log.Warn().Str("username", req.Username).Msg("Login rejected")
			return ctx.JSON(http.StatusUnauthorized, map[string]string{
				"error": "please check your login details and try again",
			})
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Login failed")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "login failed",
		})
	}

	token := s.sessions.Create(account.Username)
	ctx.SetCookie(s.sessions.Cookie(token))

	log.Info().Str("username", account.Username).Msg("Login succeeded")
	return ctx.JSON(http.StatusOK, map[string]string{
		"username": account.Username,
	})
}

// logout destroys the caller's session.
func (s *Server) logout(ctx echo.Context) error {
	if cookie, err := ctx.Cookie(session.CookieName); err == nil {
		s.sessions.Destroy(cookie.Value)
	}
	ctx.SetCookie(session.ClearCookie())
	return ctx.JSON(http.StatusOK, map[string]string{
		"message": "logged out",
	})
}

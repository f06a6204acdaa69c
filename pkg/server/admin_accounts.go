package server

import (
	"errors"
	"net/http"

	"gamestore/pkg/accounts"
	"gamestore/pkg/log"
	"gamestore/pkg/session"

	"github.com/labstack/echo/v4"
)

type addAccountRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	PasswordCheck string `json:"password_check"`
	HashAlgorithm string `json:"hash_algo"`
	RehashCount   int    `json:"rehash_count"`
	Removable     bool   `json:"removable"`
}

type editAccountRequest struct {
	Password      string `json:"password"`
	PasswordCheck string `json:"password_check"`
	HashAlgorithm string `json:"hash_algo"`
	RehashCount   int    `json:"rehash_count"`
}

// listAlgorithms handles GET /admin/algorithms requests and feeds
// account forms the supported digest names.
func (s *Server) listAlgorithms(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string][]string{
		"algorithms": accounts.Algorithms(),
	})
}

// addAccount handles POST /admin/accounts requests.
func (s *Server) addAccount(ctx echo.Context) error {
	var req addAccountRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	account, err := s.accounts.Provision(req.Username, req.Password, req.PasswordCheck,
		req.HashAlgorithm, req.RehashCount, req.Removable)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrPasswordMismatch):
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"error": "passwords do not match",
			})
		case errors.Is(err, accounts.ErrUsernameTaken):
			return ctx.JSON(http.StatusConflict, map[string]string{
				"error": "that username is taken",
			})
		case errors.Is(err, accounts.ErrUnknownAlgorithm),
			errors.Is(err, accounts.ErrInvalidRehashCount),
			errors.Is(err, accounts.ErrInvalidUsername):
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to provision account")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to create account",
		})
	}

	log.Info().
		Str("username", account.Username).
		Str("created_by", session.Username(ctx)).
		Msg("Account created")
	return ctx.JSON(http.StatusCreated, account)
}

// editAccount handles PUT /admin/accounts/:username requests.
// Rotating the hash scheme without a new password is refused.
func (s *Server) editAccount(ctx echo.Context) error {
	username := ctx.Param("username")

	var req editAccountRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	account, err := s.accounts.Rotate(username, req.Password, req.PasswordCheck,
		req.HashAlgorithm, req.RehashCount)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrNotFound):
			return ctx.JSON(http.StatusNotFound, map[string]string{
				"error": "account not found",
			})
		case errors.Is(err, accounts.ErrPasswordMismatch):
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"error": "passwords do not match",
			})
		case errors.Is(err, accounts.ErrNewPasswordRequired):
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"error": "in order to change hashing settings, you must reset or change your password",
			})
		case errors.Is(err, accounts.ErrUnknownAlgorithm),
			errors.Is(err, accounts.ErrInvalidRehashCount):
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to rotate account")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to edit account",
		})
	}

	// Stale sessions must not outlive a credential change.
	s.sessions.DestroyUser(username)

	log.Info().
		Str("username", username).
		Str("edited_by", session.Username(ctx)).
		Msg("Account credentials rotated")
	return ctx.JSON(http.StatusOK, account)
}

// removeAccount handles DELETE /admin/accounts/:username requests.
// Accounts marked non-removable are refused.
func (s *Server) removeAccount(ctx echo.Context) error {
	username := ctx.Param("username")

	if err := s.accounts.Remove(username); err != nil {
		switch {
		case errors.Is(err, accounts.ErrNotFound):
			return ctx.JSON(http.StatusNotFound, map[string]string{
				"error": "account not found",
			})
		case errors.Is(err, accounts.ErrNotRemovable):
			return ctx.JSON(http.StatusForbidden, map[string]string{
				"error": "account is not removable",
			})
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to remove account")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to remove account",
		})
	}

	s.sessions.DestroyUser(username)

	log.Info().
		Str("username", username).
		Str("removed_by", session.Username(ctx)).
		Msg("Account removed")
	return ctx.JSON(http.StatusOK, map[string]string{
		"removed": username,
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wishlistapp/accounts/internal/core/ports"
)

// SessionHandler handles login, persistent login and logout.
type SessionHandler struct {
	service ports.AccountService
}

func NewSessionHandler(service ports.AccountService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Login authenticates with email and password.
//
// @Summary      Log in
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /sessions [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Resume logs back in with a remember token.
//
// @Summary      Resume session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      resumeRequest  true  "Remember token"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /sessions/remember [post]
func (h *SessionHandler) Resume(c echo.Context) error {
	var req resumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.service.ResumeSession(c.Request().Context(), req.UserID, req.RememberToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout forgets the caller's persistent login.
//
// @Summary      Log out
// @Tags         sessions
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /sessions [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.Logout(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

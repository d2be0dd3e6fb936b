package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docukit/approval-system/internal/core/ports"
	"github.com/docukit/approval-system/internal/pkg/metrics"
)

type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type indexResponse struct {
	Service       string `json:"service"`
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	LinkedID      string `json:"linkedId,omitempty"`
	// From echoes the location a guard redirect preserved, if any.
	From string `json:"from,omitempty"`
}

// Index is the public landing view (the login page's data contract).
//
// @Summary      Service and session info
// @Tags         auth
// @Produce      json
// @Success      200  {object}  indexResponse
// @Router       / [get]
func (h *AuthHandler) Index(c echo.Context) error {
	res := indexResponse{Service: "approval-system", From: c.QueryParam("from")}
	if cred, ok := h.identity.CurrentUser(); ok {
		res.Authenticated = true
		res.Role = string(cred.Role)
		res.LinkedID = cred.LinkedID
	}
	return c.JSON(http.StatusOK, res)
}

// Login authenticates against the credential table and points the session at
// the matched credential.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.LoginResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  ports.LoginResult
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.identity.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if !res.OK {
		metrics.LoginsTotal.WithLabelValues("fail").Inc()
		return c.JSON(http.StatusUnauthorized, res)
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, res)
}

// Logout clears the session. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.identity.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

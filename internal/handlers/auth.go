package handlers

import (
	"errors"
	"io"
	"net/http"

	"authgate"

	"github.com/gin-gonic/gin"
)

// bindCredentials reads {username, password}. An empty body counts as empty fields so the
// service reports which one is missing; malformed JSON is rejected here.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindCredentials(c *gin.Context, dst *authgate.Credentials) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		h.log.Infow("auth_bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, authgate.ErrorResponse{Message: msgInvalidBody})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Description  Creates a user and returns its id together with a token valid for one hour.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authgate.Credentials       true  "Credentials"
// @Success      201   {object}  authgate.RegisterResponse
// @Failure      400   {object}  authgate.ErrorResponse
// @Failure      500   {object}  authgate.ErrorResponse
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authgate.Credentials
	if ok := h.bindCredentials(c, &input); !ok {
		return
	}

	res, err := h.services.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, "auth_register_failed", err, "username", input.Username)
		return
	}

	h.log.Infow("auth_register_ok", "user_id", res.UserID, "username", input.Username)
	c.JSON(http.StatusCreated, authgate.RegisterResponse{
		Message: msgRegistered,
		UserID:  res.UserID,
		Token:   res.Token,
	})
}

// @Summary      Log in
// @Description  Verifies credentials and returns a token valid for one hour.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authgate.Credentials    true  "Credentials"
// @Success      200   {object}  authgate.LoginResponse
// @Failure      400   {object}  authgate.ErrorResponse
// @Failure      500   {object}  authgate.ErrorResponse
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authgate.Credentials
	if ok := h.bindCredentials(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, "auth_login_failed", err, "username", input.Username)
		return
	}

	h.log.Infow("auth_login_ok", "username", input.Username)
	c.JSON(http.StatusOK, authgate.LoginResponse{Token: token})
}

// @Summary      Current user
// @Description  Returns the identity carried by the bearer token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authgate.MeResponse
// @Failure      401  {object}  authgate.ErrorResponse
// @Router       /api/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, authgate.MeResponse{
		UserID:   c.GetString(ctxUserID),
		Username: c.GetString(ctxUsername),
	})
}

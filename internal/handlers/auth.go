package handlers

import (
	"errors"
	"net/http"

	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginRequest accepts a JSON body or an OAuth2 password form.
type loginRequest struct {
	Name     string `json:"name" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// bindOrBadRequest binds the request body into dst and writes a 400 on failure.
// Returns false if the request was already handled.
func (h *Handler) bindOrBadRequest(c *gin.Context, dst any, event string) bool {
	if err := c.ShouldBind(dst); err != nil {
		h.log.Infow(event, "err", err, "request_id", requestID(c))
		abortWithDetail(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "credentials"
// @Success 200 {object} models.PublicUser
// @Failure 400 {object} errorResponse
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindOrBadRequest(c, &input, "auth_bad_request_body"); !ok {
		return
	}

	user, err := h.services.Register(c.Request.Context(), input.Name, input.Password)
	if err != nil {
		h.respondError(c, "auth_register_failed", err, "name", input.Name)
		return
	}

	h.log.Infow("auth_registered", "user_id", user.ID)
	c.JSON(http.StatusOK, user)
}

// @Summary Log in and obtain a bearer token
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param input body loginRequest true "credentials"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} errorResponse
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindOrBadRequest(c, &input, "auth_bad_request_body"); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Name, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Infow("auth_login_failed", "name", input.Name)
		}
		h.respondError(c, "auth_login_error", err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: service.TokenType})
}

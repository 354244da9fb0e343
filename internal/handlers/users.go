package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type messageResponse struct {
	Message string `json:"message"`
}

// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.PublicUser
// @Router /users [get]
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, "users_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} models.PublicUser
// @Failure 404 {object} errorResponse
// @Router /users/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		abortWithDetail(c, http.StatusNotFound, msgUserNotFound)
		return
	}

	user, err := h.services.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "users_get_failed", err, "user_id", id)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Deleting a user removes their habits and logs as well.
//
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorResponse
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		abortWithDetail(c, http.StatusNotFound, msgUserNotFound)
		return
	}

	if err := h.services.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondError(c, "users_delete_failed", err, "user_id", id)
		return
	}

	h.log.Infow("user_deleted", "user_id", id)
	c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

package handlers

import (
	"net/http"

	"habit_tracker/internal/models"
	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type createHabitRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// @Summary Create a habit
// @Tags habits
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body createHabitRequest true "habit"
// @Success 200 {object} models.Habit
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /habits [post]
func (h *Handler) createHabit(c *gin.Context) {
	user, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var input createHabitRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Infow("habit_bad_request_body", "err", err, "request_id", requestID(c))
		abortWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	habit, err := h.services.CreateHabit(c.Request.Context(), user, service.HabitInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		h.respondError(c, "habit_create_failed", err, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// @Summary List own habits
// @Tags habits
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Habit
// @Failure 401 {object} errorResponse
// @Router /habits [get]
func (h *Handler) listHabits(c *gin.Context) {
	user, ok := mustPrincipal(c)
	if !ok {
		return
	}

	habits, err := h.services.ListHabits(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, "habit_list_failed", err, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, habits)
}

// habitTarget resolves the principal and the {id} path value shared by the
// per-habit routes.
func (h *Handler) habitTarget(c *gin.Context) (models.User, int, bool) {
	user, ok := mustPrincipal(c)
	if !ok {
		return user, 0, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		abortWithDetail(c, http.StatusNotFound, msgHabitNotFound)
		return user, 0, false
	}
	return user, id, true
}

// @Summary Get a habit
// @Tags habits
// @Security BearerAuth
// @Produce json
// @Param id path int true "habit id"
// @Success 200 {object} models.Habit
// @Failure 404 {object} errorResponse
// @Router /habits/{id} [get]
func (h *Handler) getHabit(c *gin.Context) {
	user, id, ok := h.habitTarget(c)
	if !ok {
		return
	}

	habit, err := h.services.GetHabit(c.Request.Context(), user, id)
	if err != nil {
		h.respondError(c, "habit_get_failed", err, "habit_id", id)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// @Summary Delete a habit
// @Tags habits
// @Security BearerAuth
// @Produce json
// @Param id path int true "habit id"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorResponse
// @Router /habits/{id} [delete]
func (h *Handler) deleteHabit(c *gin.Context) {
	user, id, ok := h.habitTarget(c)
	if !ok {
		return
	}

	if err := h.services.DeleteHabit(c.Request.Context(), user, id); err != nil {
		h.respondError(c, "habit_delete_failed", err, "habit_id", id)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Habit deleted successfully"})
}

// @Summary Record a completion
// @Tags habits
// @Security BearerAuth
// @Produce json
// @Param id path int true "habit id"
// @Success 200 {object} models.HabitLog
// @Failure 404 {object} errorResponse
// @Router /habits/{id}/log [post]
func (h *Handler) logHabit(c *gin.Context) {
	user, id, ok := h.habitTarget(c)
	if !ok {
		return
	}

	entry, err := h.services.LogHabit(c.Request.Context(), user, id)
	if err != nil {
		h.respondError(c, "habit_log_failed", err, "habit_id", id)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// @Summary List completions of a habit
// @Tags habits
// @Security BearerAuth
// @Produce json
// @Param id path int true "habit id"
// @Success 200 {array} models.HabitLog
// @Failure 404 {object} errorResponse
// @Router /habits/{id}/log [get]
func (h *Handler) listHabitLogs(c *gin.Context) {
	user, id, ok := h.habitTarget(c)
	if !ok {
		return
	}

	logs, err := h.services.ListHabitLogs(c.Request.Context(), user, id)
	if err != nil {
		h.respondError(c, "habit_log_list_failed", err, "habit_id", id)
		return
	}
	c.JSON(http.StatusOK, logs)
}

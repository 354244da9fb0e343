package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgHabitNotFound      = "Habit not found"
	msgUserNotFound       = "User not found"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgInternal           = "internal server error"
)

// errorResponse is the body of every non-2xx JSON reply.
type errorResponse struct {
	Detail string `json:"detail"`
}

func abortWithDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, errorResponse{Detail: detail})
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged under event and reported as a bare 500.
func (h *Handler) respondError(c *gin.Context, event string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrHabitNotFound):
		abortWithDetail(c, http.StatusNotFound, msgHabitNotFound)
	case errors.Is(err, service.ErrUserNotFound):
		abortWithDetail(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrUserExists):
		abortWithDetail(c, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, service.ErrInvalidCredentials):
		abortWithDetail(c, http.StatusBadRequest, msgInvalidCredentials)
	case errors.Is(err, service.ErrInvalidInput):
		abortWithDetail(c, http.StatusBadRequest, err.Error())
	default:
		h.log.Errorw(event, append(kv, "err", err, "request_id", requestID(c))...)
		abortWithDetail(c, http.StatusInternalServerError, msgInternal)
	}
}

// pathID reads a positive integer path parameter. Anything else cannot name a
// stored row, so the caller answers 404.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

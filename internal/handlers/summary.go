package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"habit_tracker/internal/models"
	"habit_tracker/internal/report"

	"github.com/gin-gonic/gin"
)

const dateLayout = models.DateLayout

// parseQueryDate reads an optional YYYY-MM-DD query value. An absent value
// yields the zero time, which the summary service treats as today.
func parseQueryDate(c *gin.Context, key string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid '%s' (expected YYYY-MM-DD): %q", key, raw)
	}
	return t, nil
}

// loadSummary resolves the principal and ?date and computes the summary. It
// writes the error response itself and reports false in that case.
func (h *Handler) loadSummary(c *gin.Context) (models.User, models.Summary, bool) {
	user, ok := mustPrincipal(c)
	if !ok {
		return user, models.Summary{}, false
	}

	day, err := parseQueryDate(c, "date")
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, err.Error())
		return user, models.Summary{}, false
	}

	summary, err := h.services.DailySummary(c.Request.Context(), user.ID, day)
	if err != nil {
		h.respondError(c, "summary_failed", err, "user_id", user.ID)
		return user, models.Summary{}, false
	}
	return user, summary, true
}

// @Summary End-of-day summary
// @Tags summary
// @Security BearerAuth
// @Produce json
// @Param date query string false "day as YYYY-MM-DD, defaults to today"
// @Success 200 {object} models.Summary
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /summary/daily-summary [get]
func (h *Handler) dailySummary(c *gin.Context) {
	_, summary, ok := h.loadSummary(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary End-of-day summary card
// @Tags summary
// @Security BearerAuth
// @Produce png
// @Param date query string false "day as YYYY-MM-DD, defaults to today"
// @Success 200 {file} binary
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /summary/daily-summary/image [get]
func (h *Handler) dailySummaryImage(c *gin.Context) {
	user, summary, ok := h.loadSummary(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, summary); err != nil {
		h.respondError(c, "summary_render_failed", err, "user_id", user.ID)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, report.Filename(user.ID)))
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

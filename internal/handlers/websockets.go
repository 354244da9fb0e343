package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

const wsTypeSummary = "summary"

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Clients authenticate with a bearer header before the upgrade, so any
// origin may connect.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Live summary stream
// @Description Pushes {"type":"summary","data":Summary} now and on every tick.
// @Tags summary
// @Security BearerAuth
// @Param interval query string false "tick as a Go duration, max 10s"
// @Param interval_ms query int false "tick in milliseconds, max 10000"
// @Param date query string false "day as YYYY-MM-DD, defaults to today"
// @Failure 401 {object} errorResponse
// @Router /summary/ws [get]
func (h *Handler) wsSummary(c *gin.Context) {
	user, ok := mustPrincipal(c)
	if !ok {
		return
	}
	day, err := parseQueryDate(c, "date")
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err, "request_id", requestID(c))
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendSummary(ctx, conn, user.ID, day); err != nil {
		h.log.Infow("ws_write_failed_initial", "user_id", user.ID, "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "user_id", user.ID, "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendSummary(ctx, conn, user.ID, day); err != nil {
				h.log.Infow("ws_write_failed", "user_id", user.ID, "err", err)
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendSummary recomputes the summary and writes it with a write deadline.
// A failed computation is reported to the client as an error frame.
func (h *Handler) sendSummary(ctx context.Context, conn *websocket.Conn, userID int, day time.Time) error {
	summary, err := h.services.DailySummary(ctx, userID, day)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		h.log.Errorw("ws_summary_failed", "user_id", userID, "err", err)
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: msgInternal})
		return err
	}
	return conn.WriteJSON(wsEnvelope{Type: wsTypeSummary, Data: summary})
}

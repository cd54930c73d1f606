package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-editor/internal/service"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
	"github.com/noah-isme/sma-schedule-editor/pkg/middleware/cors"
	"github.com/noah-isme/sma-schedule-editor/pkg/realtime"
	"github.com/noah-isme/sma-schedule-editor/pkg/response"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

type scheduleHub interface {
	Subscribe(topic string) *realtime.Subscriber
	Unsubscribe(sub *realtime.Subscriber)
}

// ScheduleStreamHandler pushes schedule change events of a workspace over a websocket.
type ScheduleStreamHandler struct {
	hub      scheduleHub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewScheduleStreamHandler builds the handler. An empty origin list accepts every origin.
func NewScheduleStreamHandler(hub scheduleHub, allowedOrigins []string, logger *zap.Logger) *ScheduleStreamHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := cors.NewOriginPolicy(allowedOrigins)
	return &ScheduleStreamHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || policy.Allows(origin)
			},
		},
	}
}

// Stream godoc
// @Summary Subscribe to schedule changes
// @Description Upgrades to a websocket that receives a schedule.updated event after every saved change.
// @Tags Schedule
// @Param workspace path string true "Workspace ID"
// @Success 101 {string} string "Switching Protocols"
// @Router /workspaces/{workspace}/schedule/stream [get]
func (h *ScheduleStreamHandler) Stream(c *gin.Context) {
	workspaceID := c.Param("workspace")
	if workspaceID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "workspace is required"))
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("workspace", workspaceID), zap.Error(err))
		return
	}

	sub := h.hub.Subscribe(service.ScheduleTopic(workspaceID))
	go h.writeLoop(conn, sub)
	h.readLoop(conn, sub)
}

// readLoop discards client frames and detaches the subscriber once the peer goes away.
func (h *ScheduleStreamHandler) readLoop(conn *websocket.Conn, sub *realtime.Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("unexpected websocket close", zap.String("topic", sub.Topic()), zap.Error(err))
			}
			return
		}
	}
}

func (h *ScheduleStreamHandler) writeLoop(conn *websocket.Conn, sub *realtime.Subscriber) {
	ticker := time.NewTicker(streamPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case msg, ok := <-sub.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Warn("websocket write failed", zap.String("topic", sub.Topic()), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
